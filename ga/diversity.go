package ga

import (
	"math"
)

// Count the frequencies of bits for every permutation of the problem
// variables indicated by indices.
func frequency(pop *Population, indices []int) []int {
	numPerms := 1 << uint(len(indices))
	perms := make([]int, numPerms)

	for i := 0; i < pop.Size(); i++ {
		index := 0

		for j := len(indices) - 1; j >= 0; j-- {
			if pop.Solutions[i].Bits.Has(indices[j]) {
				index += 1 << uint(j)
			}
		}
		perms[index]++
	}

	return perms
}

// Compute the Entropy information measure, in bits, from an array of
// problem variable frequencies.
func entropy(freqs []int, size int) float64 {
	p := 0.0
	for _, f := range freqs {
		if f > 0 {
			q := float64(f) / float64(size)
			p -= q * math.Log2(q)
		}
	}
	return p
}

// Diversity returns the mean entropy of the bit positions of a population,
// between 0 (every chromosome is identical) and 1 (every position is split
// evenly). Bit 0 is skipped since it is always clear.
func Diversity(pop *Population) float64 {
	return diversity(LocusFrequencies(pop), pop.Size())
}

func diversity(loci []int, size int) float64 {
	if size == 0 || len(loci) < 2 {
		return 0
	}
	sum := 0.0
	for _, f := range loci[1:] {
		sum += entropy([]int{size - f, f}, size)
	}
	return sum / float64(len(loci)-1)
}

// LocusFrequencies returns, for every bit position, how many chromosomes of
// the population have it set.
func LocusFrequencies(pop *Population) []int {
	if pop.Size() == 0 {
		return nil
	}
	freqs := make([]int, pop.Length())
	indices := make([]int, 1)
	for i := range freqs {
		indices[0] = i
		freqs[i] = frequency(pop, indices)[1]
	}
	return freqs
}
