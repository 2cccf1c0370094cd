// Package bitfit answers whether an integer fits in a given number of bits.
//
// Every format's compatibility check is composed from these predicates.
// Values are taken as int64 so that register indices, literal bits and
// branch offsets share one vocabulary.
package bitfit

// UnsignedFits reports whether 0 <= v < 2^n.
func UnsignedFits(v int64, n uint) bool {
	if v < 0 {
		return false
	}
	if n >= 63 {
		return true
	}
	return v < int64(1)<<n
}

// SignedFits reports whether -2^(n-1) <= v <= 2^(n-1)-1.
// No value fits in zero bits.
func SignedFits(v int64, n uint) bool {
	if n == 0 {
		return false
	}
	if n >= 64 {
		return true
	}
	limit := int64(1) << (n - 1)
	return v >= -limit && v < limit
}

// UnsignedFitsInNibble reports whether v fits in 4 unsigned bits.
func UnsignedFitsInNibble(v int64) bool { return UnsignedFits(v, 4) }

// UnsignedFitsInByte reports whether v fits in 8 unsigned bits.
func UnsignedFitsInByte(v int64) bool { return UnsignedFits(v, 8) }

// UnsignedFitsInShort reports whether v fits in 16 unsigned bits.
func UnsignedFitsInShort(v int64) bool { return UnsignedFits(v, 16) }

// SignedFitsInNibble reports whether v fits in 4 signed bits.
func SignedFitsInNibble(v int64) bool { return SignedFits(v, 4) }

// SignedFitsInByte reports whether v fits in 8 signed bits.
func SignedFitsInByte(v int64) bool { return SignedFits(v, 8) }

// SignedFitsInShort reports whether v fits in 16 signed bits.
func SignedFitsInShort(v int64) bool { return SignedFits(v, 16) }

// SignedFitsInInt reports whether v fits in 32 signed bits.
func SignedFitsInInt(v int64) bool { return SignedFits(v, 32) }

// Truncate returns the low n bits of v's two's-complement representation.
// It never reduces by arithmetic modulo of the signed value.
func Truncate(v int64, n uint) uint64 {
	if n >= 64 {
		return uint64(v)
	}
	return uint64(v) & (uint64(1)<<n - 1)
}

// SignExtend interprets the low n bits of bits as a signed value.
func SignExtend(bits uint64, n uint) int64 {
	if n == 0 {
		return 0
	}
	if n >= 64 {
		return int64(bits)
	}
	shift := 64 - n
	return int64(bits<<shift) >> shift
}
