package broadphase

import "sync"

// task splits data in contiguous chunks, one per worker.
// fn receives the worker id, so each worker can write to its own output slot.
func task[T any](workersCount int, data []T, fn func(worker int, data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(worker, data[i])
			}
		}(workerID, start, end)
	}
	wg.Wait()
}
