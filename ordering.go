// Copyright 2024 Phus Lu. All rights reserved.

package spinmutex

import (
	"sync"
	"sync/atomic"
)

// This file holds two self-contained memory ordering experiments. They are
// not building blocks of the lock; they exercise the same atomic primitives
// the lock is made of and pin down what those primitives do and do not
// guarantee. Each returns its observation so tests can re-run it many times.

// VisibilityCounter runs the classic two-flag visibility experiment and
// returns the final counter value.
//
// Two producers each set one flag. Two observers each spin until "their"
// flag is set, then check the other flag and increment a shared counter if
// it is set too. Go's sync/atomic operations are sequentially consistent,
// so one total order over the four goroutines' atomic operations exists and
// the result is always 1 or 2:
//
//   - 2 when both flags are set before either observer's cross-check.
//   - 1 when one observer's cross-check runs before the other producer's
//     store. Whichever flag is stored second was stored after the first, so
//     the observer spinning on it must also see the first flag: at least one
//     increment always happens.
//
// Under a weaker model whose stores are only release and loads only acquire
// (the lock needs nothing more), 0 is possible as well: the two observers
// may see the two independent stores in opposite orders, each finding the
// other flag still clear. Sequential consistency is precisely the guarantee
// that rules that interleaving out.
func VisibilityCounter() int {
	var x, y atomic.Bool
	var counter atomic.Int64

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		x.Store(true)
	}()
	go func() {
		y.Store(true)
	}()
	go func() {
		defer wg.Done()
		for !x.Load() {
		}
		if y.Load() {
			counter.Add(1)
		}
	}()
	go func() {
		defer wg.Done()
		for !y.Load() {
		}
		if x.Load() {
			counter.Add(1)
		}
	}()
	wg.Wait()

	return int(counter.Load())
}

// CoherencePair runs the two-location coherence experiment and returns the
// two observed values.
//
// Goroutine one reads y and copies what it read into x, returning the read.
// Goroutine two reads x and stores 42 into y, returning the read. Every
// location's writes form a single total modification order, so each returned
// value is one actually written to its location: 0 or 42.
//
// r2 == 42 requires goroutine one to have copied 42 into x, which it can
// only have read from y after goroutine two stored it — and goroutine two
// reads x before that store. Under Go's sequentially consistent atomics the
// read therefore cannot observe the copy, and r2 == 42 never happens without
// r1 == 42. A fully relaxed model permits (42, 42): relaxed loads may read
// any write to the location regardless of cross-location ordering, only the
// per-location modification order survives.
func CoherencePair() (r1, r2 uint64) {
	var x, y atomic.Uint64

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r1 = y.Load()
		x.Store(r1)
	}()
	go func() {
		defer wg.Done()
		r2 = x.Load()
		y.Store(42)
	}()
	wg.Wait()

	return r1, r2
}
