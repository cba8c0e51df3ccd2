package ga

import (
	"fmt"

	"github.com/neatniets/number-partitioning-genetic-algorithm/bitset"
	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

// MaxBits is the largest chromosome that can be allocated.
const MaxBits = 1 << 30

// Chromosome is a bit-string solution to a 2-way partitioning problem
// together with its cached fitness.
//
// Bit 0 of a chromosome built by Random, Crossover or Mutate is always
// clear: a partition and its complement score the same, so only the form
// with item 0 in subset 0 is kept.
//
// The fitness is only valid immediately after Evaluate or SetFitness;
// Crossover and Mutate leave it invalid until it is recomputed.
type Chromosome struct {
	Bits bitset.BitSet

	fitness   int64
	evaluated bool
}

func (c *Chromosome) String() string {
	if !c.evaluated {
		return fmt.Sprintf("%v ?", c.Bits)
	}
	return fmt.Sprintf("%v %v", c.Bits, c.fitness)
}

// Allocate returns a chromosome of n cleared bits with invalid fitness.
func Allocate(n int) (*Chromosome, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: chromosome of %d bits", ErrInvalidArgument, n)
	}
	if n > MaxBits {
		return nil, fmt.Errorf("%w: chromosome of %d bits exceeds %d", ErrOutOfMemory, n, MaxBits)
	}
	return &Chromosome{Bits: bitset.New(n)}, nil
}

// Random returns a chromosome of n independent uniformly random bits.
func Random(r rng.Source, n int) (*Chromosome, error) {
	c, err := Allocate(n)
	if err != nil {
		return nil, err
	}
	c.Bits.Write(r.Bit)
	c.canonicalize()
	return c, nil
}

// Crossover performs uniform crossover: every bit of the child is copied
// from parent1 or parent2 with equal probability, chosen independently per
// bit. The child has the length of parent1 and no valid fitness.
func Crossover(r rng.Source, parent1, parent2 *Chromosome) (*Chromosome, error) {
	child, err := uniformCrossover(r, parent1, parent2)
	if err != nil {
		return nil, err
	}
	child.canonicalize()
	return child, nil
}

func uniformCrossover(r rng.Source, parent1, parent2 *Chromosome) (*Chromosome, error) {
	if parent1.Len() != parent2.Len() {
		return nil, fmt.Errorf("%w: crossover of %d and %d bits", ErrInvalidArgument, parent1.Len(), parent2.Len())
	}
	child, err := Allocate(parent1.Len())
	if err != nil {
		return nil, err
	}
	i := 0
	child.Bits.Write(func() bool {
		src := parent2
		if r.Bit() {
			src = parent1
		}
		bit := src.Bits.Has(i)
		i++
		return bit
	})
	return child, nil
}

// Mutate flips every bit independently with probability 1/Len, so one bit
// flips per call on average. The fitness is invalidated.
func (c *Chromosome) Mutate(r rng.Source) {
	c.mutate(r)
	c.canonicalize()
	c.evaluated = false
}

// mutate performs the flips of Mutate, leaving bit 0 as it falls.
func (c *Chromosome) mutate(r rng.Source) {
	n := c.Len()
	c.Bits.Modify(func(bit bool) bool {
		if r.Intn(n) == 0 {
			return !bit
		}
		return bit
	})
}

// Invert complements every bit. The fitness is unchanged since the two
// subsets merely swap.
func (c *Chromosome) Invert() {
	c.Bits.Invert()
}

func (c *Chromosome) canonicalize() {
	if c.Bits.Has(0) {
		c.Invert()
	}
}

// Len returns the number of bits.
func (c *Chromosome) Len() int {
	return c.Bits.Len()
}

// Fitness returns the cached fitness and whether it is valid.
func (c *Chromosome) Fitness() (int64, bool) {
	return c.fitness, c.evaluated
}

// SetFitness stores an externally computed fitness.
func (c *Chromosome) SetFitness(fitness int64) {
	c.fitness = fitness
	c.evaluated = true
}

// Evaluate computes and caches the fitness of c under p.
func (c *Chromosome) Evaluate(p problem.Problem) int64 {
	fitness, _ := p.Evaluate(c.Bits)
	c.SetFitness(fitness)
	return fitness
}

// Clone returns a deep copy of c, fitness included.
func (c *Chromosome) Clone() *Chromosome {
	return &Chromosome{
		Bits:      c.Bits.Clone(),
		fitness:   c.fitness,
		evaluated: c.evaluated,
	}
}

// fitter reports whether a has strictly lower fitness than b. Unevaluated
// chromosomes are never fitter.
func fitter(a, b *Chromosome) bool {
	if !a.evaluated {
		return false
	}
	if !b.evaluated {
		return true
	}
	return a.fitness < b.fitness
}

// release drops the storage of c; any later use panics.
func (c *Chromosome) release() {
	c.Bits = nil
	c.evaluated = false
}
