package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

func TestNewPopulation(t *testing.T) {
	pop, err := NewPopulation(3)
	require.NoError(t, err)
	assert.Equal(t, 3, pop.Size())
	for i := 0; i < pop.Size(); i++ {
		assert.Nil(t, pop.At(i))
	}

	_, err = NewPopulation(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRandomPopulation(t *testing.T) {
	pop, err := RandomPopulation(rng.New(1), 8, 21)
	require.NoError(t, err)
	assert.Equal(t, 8, pop.Size())
	assert.Equal(t, 21, pop.Length())
	for _, c := range pop.Solutions {
		assert.False(t, c.Bits.Has(0))
		_, ok := c.Fitness()
		assert.False(t, ok)
	}

	_, err = RandomPopulation(rng.New(1), 8, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFittestPrefersEarliest(t *testing.T) {
	set, err := problem.NewSet([]int64{4, 3, 2, 1})
	require.NoError(t, err)

	pop, err := NewPopulation(4)
	require.NoError(t, err)
	pop.Put(0, chromosome("0010")) // 4
	pop.Put(1, chromosome("0110")) // 0
	pop.Put(2, chromosome("1010")) // 2
	pop.Put(3, chromosome("0110")) // 0
	pop.Evaluate(set)

	assert.Equal(t, 1, pop.Fittest())
	assert.InDelta(t, 1.5, pop.MeanFitness(), 1e-9)
}

func TestReleaseIsDeep(t *testing.T) {
	pop, err := RandomPopulation(rng.New(2), 4, 10)
	require.NoError(t, err)
	c := pop.At(2)

	require.NoError(t, pop.Release())
	assert.Nil(t, c.Bits, "owned chromosomes are released with the population")
	assert.ErrorIs(t, pop.Release(), ErrReleased)
}

func TestMatingPoolBorrows(t *testing.T) {
	pop, err := RandomPopulation(rng.New(3), 4, 10)
	require.NoError(t, err)

	pool, err := pop.Borrow(6)
	require.NoError(t, err)
	for i := 0; i < pool.Size(); i++ {
		pool.Select(i, i%pop.Size())
	}
	assert.Same(t, pop.At(1), pool.At(5))

	assert.ErrorIs(t, pop.Release(), ErrBorrowed)

	require.NoError(t, pool.Release())
	assert.NotNil(t, pop.At(1).Bits, "releasing a pool leaves chromosomes alive")
	assert.ErrorIs(t, pool.Release(), ErrReleased)

	require.NoError(t, pop.Release())
	_, err = pop.Borrow(1)
	assert.ErrorIs(t, err, ErrReleased)
}
