package format

import (
	"github.com/wippyai/dexasm/bitfit"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// Branch formats. Offsets are in code units relative to the branch itself.
// The short forms reject a zero offset: a branch to itself must use goto/32.

// Form10t is "AA|op": signed byte offset. goto.
var Form10t Format = form10t{base{name: "10t", size: 1, slot: Slot{SlotOffset, 8, true}}}

// Form20t is "ØØ|op AAAA": signed 16-bit offset. goto/16.
var Form20t Format = form20t{base{name: "20t", size: 2, slot: Slot{SlotOffset, 16, true}}}

// Form30t is "ØØ|op AAAAlo AAAAhi": 32-bit offset. goto/32.
var Form30t Format = form30t{base{name: "30t", size: 3, slot: Slot{SlotOffset, 32, true}}}

// Form21t is "AA|op BBBB": one register, signed 16-bit offset. if-eqz.
var Form21t Format = form21t{base{name: "21t", size: 2, regs: []uint{8}, slot: Slot{SlotOffset, 16, true}}}

// Form22t is "B|A|op CCCC": two nibble registers, signed 16-bit offset. if-eq.
var Form22t Format = form22t{base{name: "22t", size: 2, regs: []uint{4, 4}, slot: Slot{SlotOffset, 16, true}}}

// Form31t is "AA|op BBBBlo BBBBhi": one register, 32-bit offset to a payload.
// packed-switch, sparse-switch, fill-array-data.
var Form31t Format = form31t{base{name: "31t", size: 3, regs: []uint{8}, slot: Slot{SlotOffset, 32, true}}}

// shortBranchFits reports whether the offset is non-zero and fits width signed bits.
func shortBranchFits(ins *insn.Instruction, width uint) bool {
	c, ok := offset(ins)
	return ok && c.Bits() != 0 && bitfit.SignedFits(c.Bits(), width)
}

func longBranchFits(ins *insn.Instruction) bool {
	c, ok := offset(ins)
	return ok && bitfit.SignedFitsInInt(c.Bits())
}

type form10t struct{ base }

func (f form10t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && shortBranchFits(ins, 8)
}

func (form10t) ArgString(ins *insn.Instruction) string     { return branchString(ins) }
func (form10t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form10t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(constBits(ins))))
}

func (form10t) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Bits: int64(int8(us[0] >> 8)), HasConst: true}, nil
}

type form20t struct{ base }

func (f form20t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && shortBranchFits(ins, 16)
}

func (form20t) ArgString(ins *insn.Instruction) string     { return branchString(ins) }
func (form20t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form20t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, 0))
	w.Unit(uint16(constBits(ins)))
}

func (form20t) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Bits: int64(int16(us[1])), HasConst: true}, nil
}

type form30t struct{ base }

func (f form30t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && longBranchFits(ins)
}

func (form30t) ArgString(ins *insn.Instruction) string     { return branchString(ins) }
func (form30t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form30t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, 0))
	w.Units32(uint32(constBits(ins)))
}

func (form30t) read(us []uint16, _ bool) (Fields, error) {
	v := uint32(us[1]) | uint32(us[2])<<16
	return Fields{Bits: int64(int32(v)), HasConst: true}, nil
}

type form21t struct{ base }

func (f form21t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && shortBranchFits(ins, 16)
}

func (form21t) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + branchString(ins)
}

func (form21t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form21t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form21t) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(int16(us[1])), HasConst: true}, nil
}

type form22t struct{ base }

func (f form22t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && shortBranchFits(ins, 16)
}

func (form22t) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + branchString(ins)
}

func (form22t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form22t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, makeByte(ins.Reg(0).Index, ins.Reg(1).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form22t) read(us []uint16, _ bool) (Fields, error) {
	a, b := nibbles(us[0])
	return Fields{Regs: []int{a, b}, Bits: int64(int16(us[1])), HasConst: true}, nil
}

type form31t struct{ base }

func (f form31t) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && longBranchFits(ins)
}

func (form31t) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + branchString(ins)
}

func (form31t) CommentString(ins *insn.Instruction) string { return branchComment(ins) }

func (form31t) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Units32(uint32(constBits(ins)))
}

func (form31t) read(us []uint16, _ bool) (Fields, error) {
	v := uint32(us[1]) | uint32(us[2])<<16
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(int32(v)), HasConst: true}, nil
}
