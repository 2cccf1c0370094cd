package format

import (
	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// SlotKind is the kind of payload a format's constant slot holds.
type SlotKind uint8

const (
	SlotNone SlotKind = iota
	SlotLiteral
	SlotReference
	SlotOffset
)

func (k SlotKind) String() string {
	switch k {
	case SlotLiteral:
		return "literal"
	case SlotReference:
		return "reference"
	case SlotOffset:
		return "offset"
	}
	return "none"
}

// Slot describes a format's constant slot.
type Slot struct {
	Kind   SlotKind
	Bits   uint
	Signed bool
}

// Shape describes the operand fields of a format.
type Shape struct {
	// Regs holds the bit width of each register slot. For variable arity
	// formats it holds the width shared by every slot.
	Regs []uint
	// MaxRegs is the largest register count of a variable arity format, 0 otherwise.
	MaxRegs int
	Const   Slot
}

// Format is one physical instruction encoding. The set of implementations is
// closed; see All.
type Format interface {
	// Name returns the format identifier, e.g. "22s".
	Name() string
	// CodeSize returns the number of 16-bit code units the format occupies.
	CodeSize() int
	// RegCount returns the exact register count, or -1 for variable arity.
	RegCount() int
	// Shape describes the operand fields.
	Shape() Shape
	// IsCompatible reports whether ins can be encoded without losing any operand bits.
	IsCompatible(ins *insn.Instruction) bool
	// CompatibleRegs reports, per register of ins, whether it fits its slot.
	CompatibleRegs(ins *insn.Instruction) []bool
	// ArgString renders the operands for listings.
	ArgString(ins *insn.Instruction) string
	// CommentString renders a listing comment, usually the raw field bits.
	CommentString(ins *insn.Instruction) string

	write(w *units.Writer, op byte, ins *insn.Instruction)
	read(us []uint16, wide bool) (Fields, error)
}

// Fields are the operand values recovered from an encoding.
type Fields struct {
	Regs     []int
	Bits     int64
	HasConst bool
}

// base carries the shape shared by every format.
type base struct {
	name    string
	regs    []uint
	slot    Slot
	size    int
	maxRegs int
}

func (b base) Name() string  { return b.name }
func (b base) CodeSize() int { return b.size }

func (b base) RegCount() int {
	if b.maxRegs > 0 {
		return -1
	}
	return len(b.regs)
}

func (b base) Shape() Shape {
	return Shape{
		Regs:    append([]uint(nil), b.regs...),
		MaxRegs: b.maxRegs,
		Const:   b.slot,
	}
}

// CompatibleRegs checks each register against its slot width. Registers
// beyond the format's arity never fit.
func (b base) CompatibleRegs(ins *insn.Instruction) []bool {
	out := make([]bool, ins.RegCount())
	for i := range out {
		if i < len(b.regs) {
			out[i] = regFits(ins.Reg(i), b.regs[i])
		}
	}
	return out
}

// regsFit reports whether ins has exactly the format's register count and
// every register fits its slot.
func (b base) regsFit(ins *insn.Instruction) bool {
	if ins.RegCount() != len(b.regs) {
		return false
	}
	for i, width := range b.regs {
		if !regFits(ins.Reg(i), width) {
			return false
		}
	}
	return true
}

// Witness proves that an instruction is compatible with a format. The zero
// value is not a valid witness.
type Witness struct {
	f   Format
	ins *insn.Instruction
	op  byte
}

// Check returns a witness for writing ins with opcode op in f, or false when
// f cannot represent ins. wide reports whether op writes a 64-bit literal: an
// int literal is then sign-extended to a wide one, and a wide literal is
// refused by a 32-bit op. The witness holds the instruction as written.
func Check(f Format, op byte, wide bool, ins *insn.Instruction) (Witness, bool) {
	if f == nil || ins == nil {
		return Witness{}, false
	}
	ins, ok := sizeLiteral(f, wide, ins)
	if !ok || !f.IsCompatible(ins) {
		return Witness{}, false
	}
	return Witness{f: f, op: op, ins: ins}, true
}

// Format returns the checked format.
func (w Witness) Format() Format { return w.f }

// Opcode returns the physical opcode the instruction will be written with.
func (w Witness) Opcode() byte { return w.op }

// Instruction returns the checked instruction.
func (w Witness) Instruction() *insn.Instruction { return w.ins }

// Valid reports whether w was produced by a successful Check.
func (w Witness) Valid() bool { return w.f != nil }

// WriteTo appends exactly CodeSize code units to out and returns that count.
func (w Witness) WriteTo(out *units.Writer) int {
	if w.f == nil {
		panic("format: WriteTo on a zero Witness")
	}
	start := out.Len()
	w.f.write(out, w.op, w.ins)
	if n := out.Len() - start; n != w.f.CodeSize() {
		panic("format: " + w.f.Name() + " wrote the wrong number of code units")
	}
	return w.f.CodeSize()
}

// Decode recovers the operand fields of one instruction encoded in f from
// the start of us. wide selects the 64-bit reading of formats whose literal
// position depends on the value width (21h).
func Decode(f Format, us []uint16, wide bool) (Fields, error) {
	if len(us) < f.CodeSize() {
		return Fields{}, errors.Truncated(errors.PhaseDecode, f.CodeSize(), len(us))
	}
	return f.read(us[:f.CodeSize()], wide)
}

// All returns every format, ordered by code size then name.
func All() []Format {
	return append([]Format(nil), all...)
}

// ByName looks a format up by its identifier.
func ByName(name string) (Format, bool) {
	for _, f := range all {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

var all = []Format{
	Form10t, Form10x, Form11n, Form11x, Form12x,
	Form20t, Form21c, Form21h, Form21s, Form21t, Form22b, Form22c, Form22s, Form22t, Form22x, Form23x,
	Form30t, Form31c, Form31i, Form31t, Form32x, Form35c, Form3rc,
	Form51l,
}
