package insn

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/dexasm/bitfit"
)

// ConstKind classifies a constant operand.
type ConstKind uint8

const (
	// Literal is a 32-bit literal (int or float bits), sign-extended into the container.
	Literal ConstKind = iota
	// Wide is a 64-bit literal (long or double bits).
	Wide
	// Reference is an index into one of the constant pools.
	Reference
	// Offset is a branch displacement in code units, relative to the branch.
	Offset
)

func (k ConstKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Wide:
		return "wide"
	case Reference:
		return "reference"
	case Offset:
		return "offset"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// RefKind names the pool a Reference constant indexes.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefString
	RefType
	RefField
	RefMethod
)

func (k RefKind) String() string {
	switch k {
	case RefNone:
		return "none"
	case RefString:
		return "string"
	case RefType:
		return "type"
	case RefField:
		return "field"
	case RefMethod:
		return "method"
	}
	return "ref(" + strconv.Itoa(int(k)) + ")"
}

// ParseRefKind maps a pool name back to its RefKind.
func ParseRefKind(s string) (RefKind, bool) {
	switch s {
	case "string":
		return RefString, true
	case "type":
		return RefType, true
	case "field":
		return RefField, true
	case "method":
		return RefMethod, true
	}
	return RefNone, false
}

// Constant is an immutable constant operand.
type Constant struct {
	name string
	bits int64
	kind ConstKind
	ref  RefKind
}

// Int returns a 32-bit integer literal.
func Int(v int32) Constant {
	return Constant{kind: Literal, bits: int64(v)}
}

// Long returns a 64-bit integer literal.
func Long(v int64) Constant {
	return Constant{kind: Wide, bits: v}
}

// Float32 returns a literal carrying the bit pattern of f.
func Float32(f float32) Constant {
	return Constant{kind: Literal, bits: int64(int32(math.Float32bits(f)))}
}

// Float64 returns a wide literal carrying the bit pattern of f.
func Float64(f float64) Constant {
	return Constant{kind: Wide, bits: int64(math.Float64bits(f))}
}

// Ref returns a reference to entry index of the given pool. name is only
// used in listings and may be empty.
func Ref(kind RefKind, index uint32, name string) Constant {
	return Constant{kind: Reference, ref: kind, bits: int64(index), name: name}
}

// Branch returns a branch offset in code units.
func Branch(offset int32) Constant {
	return Constant{kind: Offset, bits: int64(offset)}
}

// Kind returns the constant kind.
func (c Constant) Kind() ConstKind { return c.kind }

// RefKind returns the referenced pool, RefNone for non-references.
func (c Constant) RefKind() RefKind { return c.ref }

// Name returns the symbolic name of a reference, if any.
func (c Constant) Name() string { return c.name }

// Bits returns the raw two's-complement container.
func (c Constant) Bits() int64 { return c.bits }

// HasLiteralBits reports whether the constant is a literal value that can be
// placed directly into an instruction.
func (c Constant) HasLiteralBits() bool {
	return c.kind == Literal || c.kind == Wide
}

// FitsInInt reports whether the value survives narrowing to 32 bits.
func (c Constant) FitsInInt() bool {
	return bitfit.SignedFitsInInt(c.bits)
}

// IntBits returns the low 32 bits as a signed value.
func (c Constant) IntBits() int32 {
	return int32(c.bits)
}

// LongBits returns the full 64-bit pattern.
func (c Constant) LongBits() int64 {
	return c.bits
}

// BitsAt returns the low width bits of the two's-complement pattern.
func (c Constant) BitsAt(width uint) uint64 {
	return bitfit.Truncate(c.bits, width)
}

// String renders the constant for listings.
func (c Constant) String() string {
	switch c.kind {
	case Reference:
		if c.name != "" {
			return fmt.Sprintf("%s@%d %s", c.ref, c.bits, c.name)
		}
		return fmt.Sprintf("%s@%d", c.ref, c.bits)
	case Offset:
		return fmt.Sprintf("%+d", c.bits)
	case Wide:
		return "#" + strconv.FormatInt(c.bits, 10) + "L"
	}
	return "#" + strconv.FormatInt(c.bits, 10)
}
