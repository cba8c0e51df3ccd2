package ga

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/neatniets/number-partitioning-genetic-algorithm/bitset"
	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

const (
	// DefaultMaxGenerations bounds a run when Options.MaxGenerations is 0.
	DefaultMaxGenerations = 100
	// DefaultPopulationFactor scales the problem size into the population
	// size when Options.PopulationSize is 0.
	DefaultPopulationFactor = 1
	// DefaultMemoryLimit bounds the chromosome storage of a run, in bytes,
	// when Options.MemoryLimit is 0.
	DefaultMemoryLimit = 1 << 30
)

// State is the lifecycle stage of an Engine.
type State int

const (
	StateInitial State = iota
	StateEvolving
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateEvolving:
		return "evolving"
	case StateTerminal:
		return "terminal"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Stats summarizes one generation.
type Stats struct {
	Generation int
	Best       int64
	Mean       float64
	Diversity  float64
	// Loci counts, per bit position, the chromosomes that have it set.
	Loci []int
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// PopulationSize is the number of chromosomes per generation. When 0 it
	// is the problem size times PopulationFactor.
	PopulationSize   int
	PopulationFactor int
	// MaxGenerations is the generation count, the initial population
	// included, at which the run stops.
	MaxGenerations int
	// MemoryLimit bounds the bytes of chromosome storage alive at once.
	MemoryLimit int64
	Logger      *slog.Logger
	// OnGeneration, if set, is called after the initial population and
	// after every generation.
	OnGeneration func(Stats)
}

func (o Options) withDefaults(problemSize int) Options {
	if o.PopulationFactor == 0 {
		o.PopulationFactor = DefaultPopulationFactor
	}
	if o.PopulationSize == 0 {
		o.PopulationSize = problemSize * o.PopulationFactor
	}
	if o.MaxGenerations == 0 {
		o.MaxGenerations = DefaultMaxGenerations
	}
	if o.MemoryLimit == 0 {
		o.MemoryLimit = DefaultMemoryLimit
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Engine evolves a population of chromosomes towards a perfectly balanced
// partition of a problem, tracking the best chromosome ever seen.
//
// A run goes through Init, then Step until the engine is terminal: the
// generation limit is reached or a chromosome of fitness 0 is found.
// Engine is not safe for concurrent use.
type Engine struct {
	opts    Options
	problem problem.Problem
	rng     rng.Source

	pop        *Population
	best       *Chromosome
	generation int
	state      State
	history    []Stats
}

// NewEngine returns an engine for p drawing all randomness from r.
func NewEngine(p problem.Problem, r rng.Source, opts Options) (*Engine, error) {
	if p.Len() <= 0 {
		return nil, fmt.Errorf("%w: problem of %d items", ErrInvalidArgument, p.Len())
	}
	if opts.PopulationSize < 0 || opts.PopulationFactor < 0 || opts.MaxGenerations < 0 || opts.MemoryLimit < 0 {
		return nil, fmt.Errorf("%w: negative option", ErrInvalidArgument)
	}
	if p.Len() > MaxBits {
		return nil, fmt.Errorf("%w: chromosome of %d bits exceeds %d", ErrOutOfMemory, p.Len(), MaxBits)
	}
	if opts.PopulationSize == 0 && opts.PopulationFactor > math.MaxInt/p.Len() {
		return nil, fmt.Errorf("%w: population factor %d for %d items", ErrOutOfMemory, opts.PopulationFactor, p.Len())
	}
	opts = opts.withDefaults(p.Len())
	if opts.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w: population of %d chromosomes", ErrInvalidArgument, opts.PopulationSize)
	}

	// Two populations are alive while a generation is bred, plus the
	// best-ever copy: (2*size+1)*bytes must not exceed the limit.
	bytes := int64(bitset.ByteLen(p.Len()))
	if int64(opts.PopulationSize) > (opts.MemoryLimit/bytes-1)/2 {
		return nil, fmt.Errorf("%w: %d chromosomes of %d bytes exceed limit of %d",
			ErrOutOfMemory, opts.PopulationSize, bytes, opts.MemoryLimit)
	}

	return &Engine{
		opts:    opts,
		problem: p,
		rng:     r,
	}, nil
}

// Init creates and evaluates the initial population, which counts as the
// first generation.
func (e *Engine) Init() error {
	if e.state != StateInitial {
		return ErrInitialized
	}

	pop, err := RandomPopulation(e.rng, e.opts.PopulationSize, e.problem.Len())
	if err != nil {
		return err
	}
	pop.Evaluate(e.problem)

	e.pop = pop
	e.best = pop.At(pop.Fittest()).Clone()
	e.generation = 1
	e.state = StateEvolving

	e.opts.Logger.Info("initial population",
		"population", e.opts.PopulationSize,
		"items", e.problem.Len(),
		"max_generations", e.opts.MaxGenerations,
		"best", e.bestFitness(),
	)
	e.report()
	e.checkTermination()
	return nil
}

// Step evolves one generation: tournament selection into a mating pool,
// uniform crossover and mutation into a new population, and the best-ever
// update.
func (e *Engine) Step() error {
	switch {
	case e.state == StateInitial:
		return ErrNotInitialized
	case e.state == StateTerminal, e.pop == nil:
		return ErrTerminal
	}

	pool, err := e.tournament()
	if err != nil {
		return err
	}

	next, err := e.reproduce(pool)
	if err != nil {
		return errors.Join(err, pool.Release())
	}

	if fittest := next.At(next.Fittest()); fitter(fittest, e.best) {
		e.best.Bits.CopyFrom(fittest.Bits)
		e.best.SetFitness(fittest.fitness)
	}

	if err := pool.Release(); err != nil {
		return err
	}
	if err := e.pop.Release(); err != nil {
		return err
	}
	e.pop = next
	e.generation++

	e.report()
	e.checkTermination()
	return nil
}

// Run initializes the engine if needed and steps it until it is terminal
// or ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if e.state == StateInitial {
		if err := e.Init(); err != nil {
			return err
		}
	}
	for e.state != StateTerminal {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// tournament fills a mating pool, each slot holding the fitter of two
// chromosomes drawn with replacement. The first drawn wins ties.
func (e *Engine) tournament() (*MatingPool, error) {
	pool, err := e.pop.Borrow(e.pop.Size())
	if err != nil {
		return nil, err
	}
	n := e.pop.Size()
	for i := 0; i < pool.Size(); i++ {
		i1 := e.rng.Intn(n)
		i2 := e.rng.Intn(n)
		if fitter(e.pop.At(i2), e.pop.At(i1)) {
			pool.Select(i, i2)
		} else {
			pool.Select(i, i1)
		}
	}
	return pool, nil
}

// reproduce breeds a new evaluated population from random pairs of the
// pool.
func (e *Engine) reproduce(pool *MatingPool) (*Population, error) {
	next, err := NewPopulation(pool.Size())
	if err != nil {
		return nil, err
	}
	for i := 0; i < next.Size(); i++ {
		p1 := pool.At(e.rng.Intn(pool.Size()))
		p2 := pool.At(e.rng.Intn(pool.Size()))
		child, err := Crossover(e.rng, p1, p2)
		if err != nil {
			return nil, err
		}
		child.Mutate(e.rng)
		child.Evaluate(e.problem)
		next.Put(i, child)
	}
	return next, nil
}

func (e *Engine) checkTermination() {
	if e.generation >= e.opts.MaxGenerations || e.bestFitness() == 0 {
		e.state = StateTerminal
		e.opts.Logger.Info("evolution finished",
			"generations", e.generation,
			"best", e.bestFitness(),
			"optimal", e.bestFitness() == 0,
		)
	}
}

func (e *Engine) report() {
	loci := LocusFrequencies(e.pop)
	stats := Stats{
		Generation: e.generation,
		Best:       e.bestFitness(),
		Mean:       e.pop.MeanFitness(),
		Diversity:  diversity(loci, e.pop.Size()),
		Loci:       loci,
	}
	e.history = append(e.history, stats)
	e.opts.Logger.Debug("generation",
		"generation", stats.Generation,
		"best", stats.Best,
		"mean", stats.Mean,
		"diversity", stats.Diversity,
		"loci", stats.Loci,
	)
	if e.opts.OnGeneration != nil {
		e.opts.OnGeneration(stats)
	}
}

func (e *Engine) bestFitness() int64 {
	f, _ := e.best.Fitness()
	return f
}

// Best returns a copy of the best chromosome found so far, or nil before
// Init.
func (e *Engine) Best() *Chromosome {
	if e.best == nil {
		return nil
	}
	return e.best.Clone()
}

// Generation returns the number of generations evaluated, the initial
// population included.
func (e *Engine) Generation() int {
	return e.generation
}

// History returns the statistics of every generation evaluated so far.
func (e *Engine) History() []Stats {
	return e.history
}

func (e *Engine) State() State {
	return e.state
}

// Population returns the current population. It is owned by the engine and
// released by the next Step.
func (e *Engine) Population() *Population {
	return e.pop
}

// Close releases the current population. The best chromosome stays
// available.
func (e *Engine) Close() error {
	if e.pop == nil {
		return nil
	}
	err := e.pop.Release()
	e.pop = nil
	return err
}

// Options returns the effective options, defaults applied.
func (e *Engine) Options() Options {
	return e.opts
}
