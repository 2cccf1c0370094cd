package bitfit

import (
	"math"
	"testing"
)

func TestUnsignedFits(t *testing.T) {
	tests := []struct {
		v    int64
		n    uint
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{0, 4, true},
		{15, 4, true},
		{16, 4, false},
		{-1, 4, false},
		{255, 8, true},
		{256, 8, false},
		{65535, 16, true},
		{65536, 16, false},
		{math.MaxUint32, 32, true},
		{math.MaxUint32 + 1, 32, false},
		{math.MaxInt64, 63, true},
		{math.MaxInt64, 64, true},
		{math.MinInt64, 64, false},
	}

	for _, tt := range tests {
		if got := UnsignedFits(tt.v, tt.n); got != tt.want {
			t.Errorf("UnsignedFits(%d, %d) = %v, want %v", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestSignedFits(t *testing.T) {
	tests := []struct {
		v    int64
		n    uint
		want bool
	}{
		{0, 0, false},
		{0, 1, true},
		{-1, 1, true},
		{1, 1, false},
		{7, 4, true},
		{8, 4, false},
		{-8, 4, true},
		{-9, 4, false},
		{127, 8, true},
		{128, 8, false},
		{-128, 8, true},
		{-129, 8, false},
		{32767, 16, true},
		{32768, 16, false},
		{-32768, 16, true},
		{-32769, 16, false},
		{math.MaxInt32, 32, true},
		{math.MaxInt32 + 1, 32, false},
		{math.MinInt32, 32, true},
		{math.MinInt32 - 1, 32, false},
		{math.MaxInt64, 64, true},
		{math.MinInt64, 64, true},
	}

	for _, tt := range tests {
		if got := SignedFits(tt.v, tt.n); got != tt.want {
			t.Errorf("SignedFits(%d, %d) = %v, want %v", tt.v, tt.n, got, tt.want)
		}
	}
}

// Both predicates must agree with the closed-form interval for every width.
func TestFitsMatchesInterval(t *testing.T) {
	samples := []int64{math.MinInt64, -1 << 40, -65537, -32769, -32768, -129, -128, -9, -8, -1,
		0, 1, 7, 8, 15, 16, 127, 128, 255, 256, 32767, 32768, 65535, 65536, 1 << 40, math.MaxInt64}

	for n := uint(1); n < 63; n++ {
		lo := -(int64(1) << (n - 1))
		hi := int64(1)<<(n-1) - 1
		umax := int64(1)<<n - 1
		for _, v := range samples {
			if got, want := SignedFits(v, n), v >= lo && v <= hi; got != want {
				t.Fatalf("SignedFits(%d, %d) = %v, want %v", v, n, got, want)
			}
			if got, want := UnsignedFits(v, n), v >= 0 && v <= umax; got != want {
				t.Fatalf("UnsignedFits(%d, %d) = %v, want %v", v, n, got, want)
			}
		}
	}
}

func TestNamedHelpers(t *testing.T) {
	if !UnsignedFitsInNibble(15) || UnsignedFitsInNibble(16) {
		t.Error("UnsignedFitsInNibble boundary")
	}
	if !UnsignedFitsInByte(255) || UnsignedFitsInByte(256) {
		t.Error("UnsignedFitsInByte boundary")
	}
	if !UnsignedFitsInShort(65535) || UnsignedFitsInShort(65536) {
		t.Error("UnsignedFitsInShort boundary")
	}
	if !SignedFitsInNibble(-8) || SignedFitsInNibble(8) {
		t.Error("SignedFitsInNibble boundary")
	}
	if !SignedFitsInByte(-128) || SignedFitsInByte(128) {
		t.Error("SignedFitsInByte boundary")
	}
	if !SignedFitsInShort(32767) || SignedFitsInShort(32768) {
		t.Error("SignedFitsInShort boundary")
	}
	if !SignedFitsInInt(math.MinInt32) || SignedFitsInInt(math.MaxInt32+1) {
		t.Error("SignedFitsInInt boundary")
	}
}

func TestTruncateSignExtend(t *testing.T) {
	tests := []struct {
		v    int64
		n    uint
		bits uint64
	}{
		{-1, 4, 0xf},
		{-8, 4, 0x8},
		{7, 4, 0x7},
		{-1, 16, 0xffff},
		{100, 16, 0x0064},
		{-32768, 16, 0x8000},
		{0x12345678, 16, 0x5678},
		{-2, 64, 0xfffffffffffffffe},
	}

	for _, tt := range tests {
		if got := Truncate(tt.v, tt.n); got != tt.bits {
			t.Errorf("Truncate(%d, %d) = %#x, want %#x", tt.v, tt.n, got, tt.bits)
		}
		if SignedFits(tt.v, tt.n) {
			if got := SignExtend(tt.bits, tt.n); got != tt.v {
				t.Errorf("SignExtend(%#x, %d) = %d, want %d", tt.bits, tt.n, got, tt.v)
			}
		}
	}
}
