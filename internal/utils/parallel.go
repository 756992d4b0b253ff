package utils

import (
	"sync"
)

// ParallelTask represents a generic task that can be executed in parallel
type ParallelTask func() error

// RunParallelTasks executes multiple tasks in parallel and returns the first
// error encountered, if any.
func RunParallelTasks(tasks ...ParallelTask) error {
	var wg sync.WaitGroup
	errors := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t ParallelTask) {
			defer wg.Done()
			errors[index] = t()
		}(i, task)
	}

	wg.Wait()
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}
