package spinmutex_test

import (
	"github.com/phuslu/spinmutex"
)

func ExampleNew() {
	counter := spinmutex.New(0)

	counter.Do(func(v *int) {
		*v += 10
	})

	println(counter.Load())
}

func ExampleWithLock() {
	balance := spinmutex.New(100)

	withdrawn := spinmutex.WithLock(balance, func(v *int) bool {
		if *v < 40 {
			return false
		}
		*v -= 40
		return true
	})

	println(withdrawn, balance.Load())
}

func ExampleMutex_TryDo() {
	state := spinmutex.New(map[string]int{})

	ok := state.TryDo(func(v *map[string]int) {
		(*v)["requests"]++
	})

	println(ok)
}

func ExampleSpinLock() {
	var lock spinmutex.SpinLock

	lock.Lock()
	// critical section
	lock.Unlock()

	if lock.TryLock() {
		lock.Unlock()
	}
}
