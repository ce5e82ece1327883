// Copyright 2024 Phus Lu. All rights reserved.

package spinmutex

// Mutex pairs a SpinLock with the value it protects. The value is
// reachable only through the critical-section methods, so every access is
// covered by the flag protocol.
//
// A Mutex must not be copied after first use.
type Mutex[T any] struct {
	_     noCopy
	lock  SpinLock
	value T
}

// New creates an unlocked Mutex holding value.
//
// The returned pointer may be shared freely across goroutines; the mutex
// lives as long as the longest holder of the pointer.
func New[T any](value T) *Mutex[T] {
	return &Mutex[T]{value: value}
}

// Do acquires the lock, calls fn exactly once with a pointer to the
// protected value, and releases the lock.
//
// Do must not be called recursively on the same Mutex from the same
// goroutine: the inner call polls a flag the outer call will never clear.
// If fn panics the lock is left held and every later acquisition deadlocks;
// there is no poisoning.
func (m *Mutex[T]) Do(fn func(value *T)) {
	m.lock.Lock()
	fn(&m.value)
	m.lock.Unlock()
}

// TryDo calls fn with the protected value if the lock can be acquired
// without waiting, and reports whether fn ran.
func (m *Mutex[T]) TryDo(fn func(value *T)) bool {
	if !m.lock.TryLock() {
		return false
	}
	fn(&m.value)
	m.lock.Unlock()
	return true
}

// Load acquires the lock and returns a shallow copy of the protected value.
func (m *Mutex[T]) Load() T {
	m.lock.Lock()
	value := m.value
	m.lock.Unlock()
	return value
}

// WithLock acquires m, calls fn exactly once with a pointer to the
// protected value, releases m and returns fn's result. It is Do with a
// result; the result type lives on a package function because methods
// cannot add type parameters.
func WithLock[T, R any](m *Mutex[T], fn func(value *T) R) R {
	m.lock.Lock()
	ret := fn(&m.value)
	m.lock.Unlock()
	return ret
}

// TryWithLock is WithLock without waiting: if the lock is free it runs fn
// and returns its result with ok true, otherwise it returns the zero R and
// ok false.
func TryWithLock[T, R any](m *Mutex[T], fn func(value *T) R) (ret R, ok bool) {
	if !m.lock.TryLock() {
		return
	}
	ret = fn(&m.value)
	m.lock.Unlock()
	return ret, true
}
