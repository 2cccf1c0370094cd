package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/dexasm/bitfit"
	"github.com/wippyai/dexasm/insn"
)

// opcodeUnit builds the first code unit: opcode low, arg high.
func opcodeUnit(op byte, arg byte) uint16 {
	return uint16(op) | uint16(arg)<<8
}

// codeUnit packs two bytes, low first.
func codeUnit(low, high byte) uint16 {
	return uint16(low) | uint16(high)<<8
}

// makeByte packs two nibbles, low first.
func makeByte(low, high int) byte {
	return byte(low&0x0f) | byte(high&0x0f)<<4
}

// nibbles splits a unit's high byte into its low and high nibble.
func nibbles(u uint16) (int, int) {
	b := byte(u >> 8)
	return int(b & 0x0f), int(b >> 4)
}

func highByte(u uint16) int {
	return int(u >> 8)
}

func regFits(r insn.Reg, width uint) bool {
	return bitfit.UnsignedFits(int64(r.Index), width)
}

// literal returns the instruction's constant if it carries literal bits.
func literal(ins *insn.Instruction) (insn.Constant, bool) {
	c, ok := ins.Constant()
	if !ok || !c.HasLiteralBits() {
		return insn.Constant{}, false
	}
	return c, true
}

func reference(ins *insn.Instruction) (insn.Constant, bool) {
	c, ok := ins.Constant()
	if !ok || c.Kind() != insn.Reference {
		return insn.Constant{}, false
	}
	return c, true
}

func offset(ins *insn.Instruction) (insn.Constant, bool) {
	c, ok := ins.Constant()
	if !ok || c.Kind() != insn.Offset {
		return insn.Constant{}, false
	}
	return c, true
}

func hasConstant(ins *insn.Instruction) bool {
	_, ok := ins.Constant()
	return ok
}

// constBits returns the constant's raw bits, 0 without a constant.
func constBits(ins *insn.Instruction) int64 {
	c, _ := ins.Constant()
	return c.Bits()
}

func regList(ins *insn.Instruction) string {
	parts := make([]string, ins.RegCount())
	for i := range parts {
		parts[i] = ins.Reg(i).String()
	}
	return strings.Join(parts, ", ")
}

func regRange(ins *insn.Instruction) string {
	switch n := ins.RegCount(); n {
	case 0:
		return "{}"
	case 1:
		return "{" + ins.Reg(0).String() + "}"
	default:
		return "{" + ins.Reg(0).String() + " .. " + ins.Reg(n-1).String() + "}"
	}
}

// literalString renders a literal operand, e.g. "#int 100".
func literalString(ins *insn.Instruction) string {
	c, ok := literal(ins)
	if !ok {
		return "#?"
	}
	if c.Kind() == insn.Wide {
		return "#long " + strconv.FormatInt(c.LongBits(), 10)
	}
	return "#int " + strconv.FormatInt(int64(c.IntBits()), 10)
}

// literalComment renders the literal's bit pattern at width, e.g. "#0064".
func literalComment(ins *insn.Instruction, width uint) string {
	c, ok := literal(ins)
	if !ok {
		return ""
	}
	return "#" + hexDigits(c.BitsAt(width), width)
}

func referenceString(ins *insn.Instruction) string {
	c, ok := reference(ins)
	if !ok {
		return "?@?"
	}
	s := c.RefKind().String() + "@" + strconv.FormatInt(c.Bits(), 10)
	if c.Name() != "" {
		s += " " + c.Name()
	}
	return s
}

func referenceComment(ins *insn.Instruction, width uint) string {
	c, ok := reference(ins)
	if !ok {
		return ""
	}
	return c.RefKind().String() + "@" + hexDigits(c.BitsAt(width), width)
}

func branchString(ins *insn.Instruction) string {
	c, ok := offset(ins)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%+d", c.Bits())
}

// branchComment renders the offset as signed hex, four digits when it fits
// a short.
func branchComment(ins *insn.Instruction) string {
	c, ok := offset(ins)
	if !ok {
		return ""
	}
	v := c.Bits()
	sign := "+"
	if v < 0 {
		sign = "-"
		v = -v
	}
	width := uint(32)
	if bitfit.SignedFitsInShort(c.Bits()) {
		width = 16
	}
	return sign + hexDigits(uint64(v), width)
}

func hexDigits(v uint64, width uint) string {
	digits := int((width + 3) / 4)
	return fmt.Sprintf("%0*x", digits, v)
}

// sizeLiteral matches the width of a literal operand to the op's result
// width.
func sizeLiteral(f Format, wide bool, ins *insn.Instruction) (*insn.Instruction, bool) {
	c, ok := ins.Constant()
	if !ok || !c.HasLiteralBits() || f.Shape().Const.Kind != SlotLiteral {
		return ins, true
	}
	switch {
	case wide && c.Kind() == insn.Literal:
		cst := insn.Long(c.LongBits())
		return insn.New(ins.Family(), ins.Regs(), &cst), true
	case !wide && c.Kind() == insn.Wide:
		return nil, false
	}
	return ins, true
}
