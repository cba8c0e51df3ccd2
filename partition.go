// Package partition splits a multiset of integers into two subsets whose
// sums are as close as possible, using a genetic algorithm over byte-packed
// bit-string chromosomes.
//
// Bit i of a chromosome places item i in the second subset when set. The
// population evolves by tournament selection, uniform crossover and
// per-bit mutation until a perfect split is found or the generation limit is
// reached.
//
// Example:
//
//	res, err := partition.Solve(ctx, []int64{4, 3, 2, 1}, partition.WithSeed(1))
//	// res.Set0 = [4 1], res.Set1 = [3 2], res.Fitness = 0
package partition

import (
	"context"

	"github.com/neatniets/number-partitioning-genetic-algorithm/ga"
	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

// Result is the best partition found by a run.
type Result struct {
	// Generations is the number of generations evaluated, the initial
	// population included.
	Generations int
	// Fitness is the absolute difference between the subset sums.
	Fitness int64
	// Seed reproduces the run with WithSeed, unless a custom source was
	// supplied.
	Seed uint64
	// Set0 and Set1 hold the items of each subset in input order. Set0
	// always holds the first item.
	Set0 []int64
	Set1 []int64
}

// Solve searches for a balanced 2-way partition of items.
//
// The magnitudes of items must sum to at most math.MaxInt64, otherwise
// ErrArithmeticOverflow is returned. Empty items give ErrInvalidArgument.
func Solve(ctx context.Context, items []int64, opts ...Option) (*Result, error) {
	o := options{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.WithItems(len(items))
	res, err := solve(ctx, items, o, logger)
	logger.LogResult(ctx, res, err)
	return res, err
}

func solve(ctx context.Context, items []int64, o options, logger *Logger) (*Result, error) {
	set, err := problem.NewSet(items)
	if err != nil {
		return nil, translateError(err)
	}

	src := o.source
	var seed uint64
	if src == nil {
		var r *rng.Rand
		if o.seeded {
			r = rng.New(o.seed)
		} else {
			r, _ = rng.NewFromTime()
		}
		seed = r.InitialSeed()
		src = r
		logger = logger.WithSeed(seed)
	}

	engine, err := ga.NewEngine(set, src, ga.Options{
		PopulationSize:   o.populationSize,
		PopulationFactor: o.populationFactor,
		MaxGenerations:   o.maxGenerations,
		MemoryLimit:      o.memoryLimit,
		Logger:           logger.Logger,
		OnGeneration:     o.observer,
	})
	if err != nil {
		return nil, translateError(err)
	}
	defer engine.Close()

	if err := engine.Run(ctx); err != nil {
		return nil, translateError(err)
	}

	return decode(engine.Best(), set, engine.Generation(), seed)
}

// decode turns the best chromosome of a run into a Result.
func decode(best *ga.Chromosome, set *problem.Set, generations int, seed uint64) (*Result, error) {
	set0, set1, err := set.Split(best.Bits)
	if err != nil {
		return nil, translateError(err)
	}
	fitness, ok := best.Fitness()
	if !ok {
		fitness = best.Evaluate(set)
	}
	return &Result{
		Generations: generations,
		Fitness:     fitness,
		Seed:        seed,
		Set0:        set0,
		Set1:        set1,
	}, nil
}
