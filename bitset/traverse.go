package bitset

// The per-byte traversals below visit the low numBits positions of a byte,
// least significant bit first. numBits is normally 8; a smaller value is used
// for the trailing byte of a bit-string whose length is not a multiple of 8.
// Values above 8 are treated as 8.

const initialBit byte = 0x01

func clamp(numBits uint) uint {
	if numBits > BitsPerByte {
		return BitsPerByte
	}
	return numBits
}

// ReadBits passes each of the low numBits bits of b to fn.
func ReadBits(b byte, numBits uint, fn func(bit bool)) {
	mask := initialBit
	for i := uint(0); i < clamp(numBits); i, mask = i+1, mask<<1 {
		fn(b&mask != 0)
	}
}

// WriteBits sets each of the low numBits bits of *b to the value returned by
// fn. The prior content of *b is discarded without being read, so it may be
// uninitialized; bits above numBits end up cleared.
func WriteBits(b *byte, numBits uint, fn func() bool) {
	mask := initialBit
	*b = 0
	for i := uint(0); i < clamp(numBits); i, mask = i+1, mask<<1 {
		if fn() {
			*b |= mask
		}
	}
}

// ModifyBits replaces each of the low numBits bits of *b with the value fn
// returns for it. Bits above numBits are left untouched.
func ModifyBits(b *byte, numBits uint, fn func(bit bool) bool) {
	mask := initialBit
	for i := uint(0); i < clamp(numBits); i, mask = i+1, mask<<1 {
		if fn(*b&mask != 0) {
			*b |= mask
		} else {
			*b &^= mask
		}
	}
}
