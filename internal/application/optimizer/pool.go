package optimizer

import (
	"runtime"
	"sync"
)

// evaluateAll simulates and scores every individual in the population,
// fanning the work out across a bounded worker pool. Results land in
// the caller's slices by index, so output is independent of worker
// scheduling.
func (o *Optimizer) evaluateAll(population [][]int, fitness []float64, evaluations []*SimulationResult) {
	workers := o.params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(population) {
		workers = len(population)
	}
	if workers <= 1 {
		for i, genes := range population {
			evaluations[i] = o.simulator.Run(genes)
			fitness[i] = fitnessOf(evaluations[i])
		}
		return
	}

	jobs := make(chan int, len(population))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				evaluations[i] = o.simulator.Run(population[i])
				fitness[i] = fitnessOf(evaluations[i])
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
