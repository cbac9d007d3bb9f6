/*
PURPOSE:
  The two concurrency strategies under test.
  Executor: a fixed pool of workers with the work pre-split evenly.
  ForkJoin: recursive halving onto a bounded pool, caller runs the right half.
  A goroutine blocked on a forked half frees its pool slot until the half joins.

REQUIREMENTS:
  User-specified:
  - Same workload (N SIR simulations) for both strategies.
  - Thread count is the pool size.

  Implementation-discovered:
  - Work is done in batches so a cancelled context stops the run quickly.
  - Random streams are keyed by work offset, so results are reproducible
    for a given seed regardless of scheduling.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Uses: internal/sim

ERROR HANDLING:
  - Returns ctx.Err() when cancelled. Partial stats are discarded.

IMPLEMENTATION RULES:
  - All goroutines are joined before returning.

USAGE:
  stats, err := engine.RunExecutor(ctx, params, 1_000_000, 8, seed)

SELF-HEALING INSTRUCTIONS:
  - If fork-join underperforms at high thread counts, raise fork_threshold.

RELATED FILES:
  - internal/sim/sir.go

MAINTENANCE:
  - None.
*/

package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/daryltucker/sirbench/internal/sim"
)

// batchSize is how many simulations run between cancellation checks.
const batchSize = 1000

// runRange simulates n outbreaks for the work starting at offset.
func runRange(ctx context.Context, p sim.Params, seed uint64, offset, n int) (sim.Stats, error) {
	s := sim.New(p, rand.New(rand.NewPCG(seed, uint64(offset))))

	var total sim.Stats
	for done := 0; done < n; done += batchSize {
		if err := ctx.Err(); err != nil {
			return sim.Stats{}, err
		}
		total.Add(s.RunBatch(min(batchSize, n-done)))
	}
	return total, nil
}

// RunSequential is the single-goroutine baseline.
func RunSequential(ctx context.Context, p sim.Params, n int, seed uint64) (sim.Stats, error) {
	return runRange(ctx, p, seed, 0, n)
}

// RunExecutor splits n simulations across a fixed pool of threads workers.
// The last worker also takes the remainder.
func RunExecutor(ctx context.Context, p sim.Params, n, threads int, seed uint64) (sim.Stats, error) {
	if threads < 1 {
		return sim.Stats{}, fmt.Errorf("invalid thread count %d", threads)
	}

	per := n / threads
	results := make([]sim.Stats, threads)
	errs := make([]error, threads)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		count := per
		if i == threads-1 {
			count = n - per*i
		}
		wg.Add(1)
		go func(i, offset, count int) {
			defer wg.Done()
			results[i], errs[i] = runRange(ctx, p, seed, offset, count)
		}(i, per*i, count)
	}
	wg.Wait()

	var total sim.Stats
	for i := range results {
		if errs[i] != nil {
			return sim.Stats{}, errs[i]
		}
		total.Add(results[i])
	}
	return total, nil
}

// RunForkJoin halves n until a piece is at most threshold simulations.
// Every goroutine doing simulation work holds one of threads slots, the
// caller included. A goroutine gives its slot back while it waits for a
// forked half, so up to threads goroutines stay busy. When no slot is free
// the left half runs inline.
func RunForkJoin(ctx context.Context, p sim.Params, n, threads, threshold int, seed uint64) (sim.Stats, error) {
	if threads < 1 {
		return sim.Stats{}, fmt.Errorf("invalid thread count %d", threads)
	}
	if threshold < 1 {
		return sim.Stats{}, fmt.Errorf("invalid fork threshold %d", threshold)
	}

	fj := &forkJoin{
		ctx:       ctx,
		params:    p,
		seed:      seed,
		threshold: threshold,
		slots:     make(chan struct{}, threads),
	}
	fj.slots <- struct{}{}
	defer func() { <-fj.slots }()

	return fj.compute(0, n)
}

type forkJoin struct {
	ctx       context.Context
	params    sim.Params
	seed      uint64
	threshold int
	slots     chan struct{}
}

// compute must be called while holding a slot.
func (f *forkJoin) compute(offset, n int) (sim.Stats, error) {
	if n <= f.threshold {
		return runRange(f.ctx, f.params, f.seed, offset, n)
	}

	mid := n / 2

	select {
	case f.slots <- struct{}{}:
	default:
		left, err := f.compute(offset, mid)
		if err != nil {
			return sim.Stats{}, err
		}
		right, err := f.compute(offset+mid, n-mid)
		if err != nil {
			return sim.Stats{}, err
		}
		left.Add(right)
		return left, nil
	}

	var (
		left    sim.Stats
		leftErr error
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		defer func() { <-f.slots }()
		left, leftErr = f.compute(offset, mid)
	}()

	right, err := f.compute(offset+mid, n-mid)

	<-f.slots
	<-done
	f.slots <- struct{}{}

	if leftErr != nil {
		return sim.Stats{}, leftErr
	}
	if err != nil {
		return sim.Stats{}, err
	}
	left.Add(right)
	return left, nil
}
