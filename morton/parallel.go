package morton

import (
	"runtime"
	"sync"
)

// parallelThreshold is the batch size at or above which EncodeMorton3Batch and
// DecodeMorton3Batch dispatch to a worker pool instead of a single
// goroutine. Below it, pool setup overhead would dominate the actual work.
const parallelThreshold = 4096

// encodeBatchParallel fills out[i] = EncodeMorton3(xs[i], ys[i], zs[i]) using
// a fixed worker pool, modeled on the teacher's LoadCellsParallel: each
// worker claims indices from a shared channel and writes its result
// directly into the index it was given, so completion order never affects
// output order (§5's observational-equivalence requirement for batched
// acceleration paths).
func encodeBatchParallel(xs, ys, zs []uint16, out []uint64) {
	n := len(xs)
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = EncodeMorton3(xs[i], ys[i], zs[i])
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func decodeBatchParallel(codes []uint64, xs, ys, zs []uint16) {
	n := len(codes)
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				xs[i], ys[i], zs[i] = DecodeMorton3(codes[i])
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
