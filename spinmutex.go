// Copyright 2024 Phus Lu. All rights reserved.

// Package spinmutex implements a polling mutual exclusion lock and a
// generic value mutex built on top of it.
//
// The lock never parks the calling goroutine in the runtime; all waiting
// is done by polling the flag. It is intended for very short critical
// sections under moderate contention, where the cost of goroutine
// parking/unparking exceeds the cost of a few wasted reads. For long
// critical sections use sync.Mutex instead.
package spinmutex

import (
	"runtime"
	"sync/atomic"
)

const (
	unlocked = 0
	locked   = 1

	// maxspins is the number of hot flag reads a waiter performs before
	// yielding its processor to the scheduler.
	maxspins = 16
)

// SpinLock is a polling mutual exclusion lock. The zero value is an
// unlocked lock. It implements sync.Locker.
//
// A SpinLock must not be copied after first use.
type SpinLock struct {
	_     noCopy
	state uint32
}

// Lock acquires the lock, polling until it is available.
//
// The exclusive compare-and-swap runs only when a read of the flag last
// observed it unlocked. While the lock is held, waiters issue plain loads,
// which keeps the flag's cache line shared between the contending cores
// instead of bouncing it through the exclusive state on every attempt.
func (l *SpinLock) Lock() {
	for !atomic.CompareAndSwapUint32(&l.state, unlocked, locked) {
		spins := 0
		for atomic.LoadUint32(&l.state) == locked {
			spins++
			if spins > maxspins {
				spins = 0
				runtime.Gosched()
			}
		}
	}
}

// TryLock attempts to acquire the lock with a single compare-and-swap and
// reports whether it succeeded. It never spins.
func (l *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&l.state, unlocked, locked)
}

// Unlock releases the lock.
//
// The releasing store makes every write performed inside the critical
// section visible to the goroutine whose Lock succeeds next. A SpinLock is
// not tied to a particular goroutine: one goroutine may lock it and another
// unlock it.
func (l *SpinLock) Unlock() {
	atomic.StoreUint32(&l.state, unlocked)
}

// noCopy triggers `go vet -copylocks` on values embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
