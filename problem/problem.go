// Package problem defines the number partitioning instance solved by the
// genetic algorithm and the fitness it is scored by.
package problem

import (
	"github.com/neatniets/number-partitioning-genetic-algorithm/bitset"
)

// Problem scores bit-string solutions of a minimization problem. Lower
// fitness is better and optimal reports that no solution can score lower.
type Problem interface {
	// Len is the number of bits of every solution.
	Len() int
	Evaluate(bits bitset.BitSet) (fitness int64, optimal bool)
}
