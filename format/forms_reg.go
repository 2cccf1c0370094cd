package format

import (
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// Register-only formats.

// Form10x is "op": no operands, one unit. nop, return-void.
var Form10x Format = form10x{base{name: "10x", size: 1}}

// Form12x is "B|A|op": two nibble registers. move, neg-int, add-int/2addr.
var Form12x Format = form12x{base{name: "12x", size: 1, regs: []uint{4, 4}}}

// Form11x is "AA|op": one byte register. move-result, return, throw.
var Form11x Format = form11x{base{name: "11x", size: 1, regs: []uint{8}}}

// Form22x is "AA|op BBBB". move/from16.
var Form22x Format = form22x{base{name: "22x", size: 2, regs: []uint{8, 16}}}

// Form23x is "AA|op CC|BB". add-int, aget, cmp-long.
var Form23x Format = form23x{base{name: "23x", size: 2, regs: []uint{8, 8, 8}}}

// Form32x is "ØØ|op AAAA BBBB". move/16.
var Form32x Format = form32x{base{name: "32x", size: 3, regs: []uint{16, 16}}}

type form10x struct{ base }

func (f form10x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form10x) ArgString(*insn.Instruction) string     { return "" }
func (form10x) CommentString(*insn.Instruction) string { return "" }

func (form10x) write(w *units.Writer, op byte, _ *insn.Instruction) {
	w.Unit(opcodeUnit(op, 0))
}

func (form10x) read([]uint16, bool) (Fields, error) {
	return Fields{}, nil
}

type form12x struct{ base }

func (f form12x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form12x) ArgString(ins *insn.Instruction) string { return regList(ins) }
func (form12x) CommentString(*insn.Instruction) string { return "" }

func (form12x) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, makeByte(ins.Reg(0).Index, ins.Reg(1).Index)))
}

func (form12x) read(us []uint16, _ bool) (Fields, error) {
	a, b := nibbles(us[0])
	return Fields{Regs: []int{a, b}}, nil
}

type form11x struct{ base }

func (f form11x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form11x) ArgString(ins *insn.Instruction) string { return regList(ins) }
func (form11x) CommentString(*insn.Instruction) string { return "" }

func (form11x) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
}

func (form11x) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0])}}, nil
}

type form22x struct{ base }

func (f form22x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form22x) ArgString(ins *insn.Instruction) string { return regList(ins) }
func (form22x) CommentString(*insn.Instruction) string { return "" }

func (form22x) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(uint16(ins.Reg(1).Index))
}

func (form22x) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0]), int(us[1])}}, nil
}

type form23x struct{ base }

func (f form23x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form23x) ArgString(ins *insn.Instruction) string { return regList(ins) }
func (form23x) CommentString(*insn.Instruction) string { return "" }

func (form23x) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(codeUnit(byte(ins.Reg(1).Index), byte(ins.Reg(2).Index)))
}

func (form23x) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0]), int(us[1] & 0xff), int(us[1] >> 8)}}, nil
}

type form32x struct{ base }

func (f form32x) IsCompatible(ins *insn.Instruction) bool {
	return !hasConstant(ins) && f.regsFit(ins)
}

func (form32x) ArgString(ins *insn.Instruction) string { return regList(ins) }
func (form32x) CommentString(*insn.Instruction) string { return "" }

func (form32x) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, 0))
	w.Unit(uint16(ins.Reg(0).Index))
	w.Unit(uint16(ins.Reg(1).Index))
}

func (form32x) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{int(us[1]), int(us[2])}}, nil
}
