package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/phuslu/spinmutex"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("127.0.0.1:6060", nil))
	}()

	counter := spinmutex.New(int64(0))

	for i := 0; i < runtime.NumCPU(); i++ {
		go func() {
			for {
				counter.Do(func(v *int64) {
					*v++
				})
			}
		}()
	}

	select {}
}
