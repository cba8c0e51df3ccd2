// Package bitset provides an interface for bit-string data-structures and
// also provides a byte-packed bit-string implementation whose bits can be
// traversed in order with arbitrary per-bit transformations.
package bitset

import (
	"bytes"
	"fmt"
)

// BitsPerByte is the number of bits packed into each byte.
const BitsPerByte = 8

const pow uint = 3
const mod uint = 7

type bitSet struct {
	len   int
	array []byte
}

// BitSet provides an interface for manipulating bit-strings by accessing individual
// bits, traversing them in order and recombining partial bit-sets.
type BitSet interface {
	// Has tests whether the bit at pos has been set.
	Has(pos int) bool
	// Set sets the bit at pos to one.
	Set(pos int)
	// Clear sets the bit at pos to zero.
	Clear(pos int)
	// Len returns the length of the bit-string.
	Len() int

	// Read passes every bit to fn, from bit 0 upwards.
	Read(fn func(bit bool))
	// Write assigns every bit, from bit 0 upwards, the value returned by fn.
	// The previous content is never read.
	Write(fn func() bool)
	// Modify replaces every bit, from bit 0 upwards, with fn of its value.
	Modify(fn func(bit bool) bool)

	// Invert complements every bit.
	Invert()
	// Count returns the number of bits set to one.
	Count() int
	// Clone returns an independent copy of the bit-string.
	Clone() BitSet
	// CopyFrom overwrites the bit-string with the bits of src, which must
	// have the same length.
	CopyFrom(src BitSet)
	// Equal reports whether both bit-strings hold the same bits.
	Equal(other BitSet) bool
}

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + BitsPerByte - 1) / BitsPerByte
}

func (bs *bitSet) Len() int {
	return bs.len
}

func (bs *bitSet) Set(pos int) {
	bs.array[pos>>pow] |= (1 << (uint(pos) & mod))
}

func (bs *bitSet) Clear(pos int) {
	bs.array[pos>>pow] &^= (1 << (uint(pos) & mod))
}

func (bs *bitSet) Has(pos int) bool {
	return (bs.array[pos>>pow]&(1<<(uint(pos)&mod)) != 0)
}

func (bs *bitSet) Read(fn func(bit bool)) {
	remaining := bs.len
	bs.bytewise(func(b *byte) {
		n := tail(remaining)
		ReadBits(*b, n, fn)
		remaining -= int(n)
	})
}

func (bs *bitSet) Write(fn func() bool) {
	remaining := bs.len
	bs.bytewise(func(b *byte) {
		n := tail(remaining)
		WriteBits(b, n, fn)
		remaining -= int(n)
	})
}

func (bs *bitSet) Modify(fn func(bit bool) bool) {
	remaining := bs.len
	bs.bytewise(func(b *byte) {
		n := tail(remaining)
		ModifyBits(b, n, fn)
		remaining -= int(n)
	})
}

func (bs *bitSet) Invert() {
	bs.bytewise(func(b *byte) {
		*b = ^*b
	})
	bs.clearPadding()
}

func (bs *bitSet) Count() (n int) {
	bs.Read(func(bit bool) {
		if bit {
			n++
		}
	})
	return
}

func (bs *bitSet) Clone() BitSet {
	c := &bitSet{bs.len, make([]byte, len(bs.array))}
	copy(c.array, bs.array)
	return c
}

func (bs *bitSet) CopyFrom(src BitSet) {
	if src.Len() != bs.len {
		panic(fmt.Sprintf("bitset: copy of %d bits into %d bits", src.Len(), bs.len))
	}
	if s, ok := src.(*bitSet); ok {
		copy(bs.array, s.array)
		return
	}
	i := 0
	bs.Write(func() bool {
		bit := src.Has(i)
		i++
		return bit
	})
}

func (bs *bitSet) Equal(other BitSet) bool {
	if other == nil || other.Len() != bs.len {
		return false
	}
	if o, ok := other.(*bitSet); ok {
		return bytes.Equal(bs.array, o.array)
	}
	for i := 0; i < bs.len; i++ {
		if bs.Has(i) != other.Has(i) {
			return false
		}
	}
	return true
}

func (bs *bitSet) String() string {
	var buffer bytes.Buffer
	buffer.Grow(bs.len)
	for i := bs.len - 1; i >= 0; i-- {
		if bs.Has(i) {
			buffer.WriteByte('1')
		} else {
			buffer.WriteByte('0')
		}
	}
	return buffer.String()
}

// bytewise hands every byte of the storage to fn in index order. The bytes
// are not read here, so fn may treat them as uninitialized.
func (bs *bitSet) bytewise(fn func(b *byte)) {
	for i := range bs.array {
		fn(&bs.array[i])
	}
}

// clearPadding zeroes the unused high bits of the trailing byte.
func (bs *bitSet) clearPadding() {
	if r := uint(bs.len) & mod; r != 0 {
		bs.array[len(bs.array)-1] &= byte(1<<r) - 1
	}
}

// tail returns how many bits of the next byte are still part of the
// bit-string when remaining bits are left.
func tail(remaining int) uint {
	if remaining >= BitsPerByte {
		return BitsPerByte
	}
	return uint(remaining)
}

// New returns an interface to the byte-packed bit-string implementation.
// All bits start cleared.
func New(len int) BitSet {
	return &bitSet{len, make([]byte, ByteLen(len))}
}

// FromString converts a string in big-endian notation to a new bit-set.
func FromString(s string) (BitSet, error) {
	b := New(len(s))
	for i, c := range s {
		if c == '1' {
			b.Set(len(s) - 1 - i)
		} else if c != '0' {
			format := "bitset: invalid character %v in string encoding"
			return nil, fmt.Errorf(format, c)
		}
	}
	return b, nil
}
