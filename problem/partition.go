package problem

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/neatniets/number-partitioning-genetic-algorithm/bitset"
)

var (
	// ErrEmpty is returned for a set without items.
	ErrEmpty = errors.New("problem: set has no items")
	// ErrOverflow is returned when the item values could overflow the
	// running subset sums.
	ErrOverflow = errors.New("problem: item values overflow int64 sums")
	// ErrLengthMismatch is returned when a bit-string does not have one bit
	// per item.
	ErrLengthMismatch = errors.New("problem: bit-string length does not match item count")
)

// ErrInvalidItem reports an item whose magnitude cannot be represented.
type ErrInvalidItem struct {
	Index int
	Value int64
}

func (e *ErrInvalidItem) Error() string {
	return fmt.Sprintf("problem: item %d has unrepresentable magnitude %d", e.Index, e.Value)
}

func (e *ErrInvalidItem) Unwrap() error { return ErrOverflow }

// Set is an immutable 2-way number partitioning instance. Bit i of a
// solution places item i in subset 0 when clear and in subset 1 when set.
type Set struct {
	values []int64
}

// NewSet copies values into a new Set. Every partial sum of the values is
// guaranteed to fit in an int64: the sum of their magnitudes must.
func NewSet(values []int64) (*Set, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}

	var total uint64
	for i, v := range values {
		if v == math.MinInt64 {
			return nil, &ErrInvalidItem{Index: i, Value: v}
		}
		mag := uint64(v)
		if v < 0 {
			mag = uint64(-v)
		}
		var carry uint64
		total, carry = bits.Add64(total, mag, 0)
		if carry != 0 || total > math.MaxInt64 {
			return nil, fmt.Errorf("%w: magnitudes exceed %d at item %d", ErrOverflow, int64(math.MaxInt64), i)
		}
	}

	return &Set{values: append([]int64(nil), values...)}, nil
}

// Len returns the number of items.
func (s *Set) Len() int {
	return len(s.values)
}

// Value returns the value of item i.
func (s *Set) Value(i int) int64 {
	return s.values[i]
}

// Values returns a copy of the item values.
func (s *Set) Values() []int64 {
	return append([]int64(nil), s.values...)
}

// Check verifies that bits can be scored against the set.
func (s *Set) Check(bits bitset.BitSet) error {
	if bits.Len() != len(s.values) {
		return fmt.Errorf("%w: %d bits, %d items", ErrLengthMismatch, bits.Len(), len(s.values))
	}
	return nil
}

// Evaluate returns the absolute difference between the sums of the two
// subsets encoded by bits, which must have one bit per item. The difference
// is accumulated in a single pass: items on a clear bit are added, items on
// a set bit subtracted.
func (s *Set) Evaluate(bits bitset.BitSet) (fitness int64, optimal bool) {
	var diff int64
	i := 0
	bits.Read(func(bit bool) {
		if bit {
			diff -= s.values[i]
		} else {
			diff += s.values[i]
		}
		i++
	})
	if diff < 0 {
		diff = -diff
	}
	return diff, diff == 0
}

// Split decodes bits into the two subsets it encodes. Items keep their
// relative order within each subset.
func (s *Set) Split(bits bitset.BitSet) (set0, set1 []int64, err error) {
	if err := s.Check(bits); err != nil {
		return nil, nil, err
	}

	ones := bits.Count()
	set0 = make([]int64, 0, len(s.values)-ones)
	set1 = make([]int64, 0, ones)

	i := 0
	bits.Read(func(bit bool) {
		if bit {
			set1 = append(set1, s.values[i])
		} else {
			set0 = append(set0, s.values[i])
		}
		i++
	})
	return set0, set1, nil
}

// Sum returns the sum of values. Sums of subsets of a Set never overflow.
func Sum(values []int64) (sum int64) {
	for _, v := range values {
		sum += v
	}
	return
}
