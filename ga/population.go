package ga

import (
	"fmt"

	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

// Population is a fixed-size collection of chromosomes that it owns:
// releasing the population releases every chromosome in it.
type Population struct {
	Solutions []*Chromosome

	borrows  int
	released bool
}

// NewPopulation returns a population of size empty slots.
func NewPopulation(size int) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: population of %d chromosomes", ErrInvalidArgument, size)
	}
	return &Population{Solutions: make([]*Chromosome, size)}, nil
}

// RandomPopulation returns an unevaluated population of size random
// chromosomes, each length bits long.
func RandomPopulation(r rng.Source, size, length int) (*Population, error) {
	pop, err := NewPopulation(size)
	if err != nil {
		return nil, err
	}
	for i := range pop.Solutions {
		if pop.Solutions[i], err = Random(r, length); err != nil {
			return nil, err
		}
	}
	return pop, nil
}

func (pop *Population) Size() int {
	return len(pop.Solutions)
}

func (pop *Population) Length() int {
	return pop.Solutions[0].Len()
}

// At returns the chromosome in slot i.
func (pop *Population) At(i int) *Chromosome {
	return pop.Solutions[i]
}

// Put stores c in slot i; the population takes ownership of c.
func (pop *Population) Put(i int, c *Chromosome) {
	pop.Solutions[i] = c
}

// Evaluate computes the fitness of every chromosome.
func (pop *Population) Evaluate(p problem.Problem) {
	for _, c := range pop.Solutions {
		c.Evaluate(p)
	}
}

// Fittest returns the index of the chromosome with the lowest fitness. The
// earliest index wins ties.
func (pop *Population) Fittest() int {
	fittest := 0
	for i := 1; i < len(pop.Solutions); i++ {
		if fitter(pop.Solutions[i], pop.Solutions[fittest]) {
			fittest = i
		}
	}
	return fittest
}

// MeanFitness returns the average fitness of the evaluated chromosomes.
func (pop *Population) MeanFitness() float64 {
	var sum float64
	n := 0
	for _, c := range pop.Solutions {
		if f, ok := c.Fitness(); ok {
			sum += float64(f)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Borrow returns an empty mating pool of size slots that may refer to the
// chromosomes of pop. The population cannot be released until the pool is.
func (pop *Population) Borrow(size int) (*MatingPool, error) {
	if pop.released {
		return nil, ErrReleased
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: mating pool of %d chromosomes", ErrInvalidArgument, size)
	}
	pop.borrows++
	return &MatingPool{owner: pop, refs: make([]*Chromosome, size)}, nil
}

// Release releases the population and every chromosome in it.
func (pop *Population) Release() error {
	if pop.released {
		return ErrReleased
	}
	if pop.borrows > 0 {
		return fmt.Errorf("%w: %d pools outstanding", ErrBorrowed, pop.borrows)
	}
	for i, c := range pop.Solutions {
		if c != nil {
			c.release()
		}
		pop.Solutions[i] = nil
	}
	pop.Solutions = nil
	pop.released = true
	return nil
}

func (pop *Population) String() string {
	return fmt.Sprintf("%v", pop.Solutions)
}

// MatingPool is a fixed-size selection of chromosomes borrowed from a
// Population. Releasing the pool never releases the chromosomes it refers
// to; they stay owned by the population they were selected from.
type MatingPool struct {
	owner *Population
	refs  []*Chromosome
}

func (mp *MatingPool) Size() int {
	return len(mp.refs)
}

// At returns the chromosome referred to by slot i.
func (mp *MatingPool) At(i int) *Chromosome {
	return mp.refs[i]
}

// Select makes slot i refer to chromosome j of the owning population.
func (mp *MatingPool) Select(i, j int) {
	mp.refs[i] = mp.owner.Solutions[j]
}

// Release drops the references held by the pool and returns the
// population to its owner.
func (mp *MatingPool) Release() error {
	if mp.owner == nil {
		return ErrReleased
	}
	mp.owner.borrows--
	mp.owner = nil
	mp.refs = nil
	return nil
}
