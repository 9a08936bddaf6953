package polysat

import "golang.org/x/sync/errgroup"

// task runs fn over data in contiguous chunks, one goroutine per chunk, at most workersCount chunks.
// It returns the first error reported by any chunk, after all chunks are done.
func task[T any](workersCount int, data []T, fn func(i int, item T) error) error {
	workersCount = max(1, workersCount)
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var g errgroup.Group
	for start := 0; start < dataSize; start += chunkSize {
		start, end := start, min(start+chunkSize, dataSize)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i, data[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// forEach is task for work that cannot fail
func forEach[T any](workersCount int, data []T, fn func(i int, item T)) {
	_ = task(workersCount, data, func(i int, item T) error {
		fn(i, item)
		return nil
	})
}
