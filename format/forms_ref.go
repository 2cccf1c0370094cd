package format

import (
	"github.com/wippyai/dexasm/bitfit"
	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// Constant-pool reference formats.

// Form21c is "AA|op BBBB": 16-bit pool index. const-string, new-instance, sget.
var Form21c Format = form21c{base{name: "21c", size: 2, regs: []uint{8}, slot: Slot{SlotReference, 16, false}}}

// Form22c is "B|A|op CCCC": 16-bit pool index. iget, instance-of, new-array.
var Form22c Format = form22c{base{name: "22c", size: 2, regs: []uint{4, 4}, slot: Slot{SlotReference, 16, false}}}

// Form31c is "AA|op BBBBlo BBBBhi": 32-bit pool index. const-string/jumbo.
var Form31c Format = form31c{base{name: "31c", size: 3, regs: []uint{8}, slot: Slot{SlotReference, 32, false}}}

// Form35c is "A|G|op BBBB F|E|D|C": up to five nibble registers and a
// 16-bit pool index. invoke-kind, filled-new-array.
var Form35c Format = form35c{base{name: "35c", size: 3, regs: []uint{4}, maxRegs: 5, slot: Slot{SlotReference, 16, false}}}

// Form3rc is "AA|op BBBB CCCC": a run of AA consecutive registers starting
// at vCCCC and a 16-bit pool index. invoke-kind/range.
var Form3rc Format = form3rc{base{name: "3rc", size: 3, regs: []uint{16}, maxRegs: 255, slot: Slot{SlotReference, 16, false}}}

func referenceFits(ins *insn.Instruction, width uint) bool {
	c, ok := reference(ins)
	return ok && bitfit.UnsignedFits(c.Bits(), width)
}

type form21c struct{ base }

func (f form21c) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && referenceFits(ins, 16)
}

func (form21c) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + referenceString(ins)
}

func (form21c) CommentString(ins *insn.Instruction) string { return referenceComment(ins, 16) }

func (form21c) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form21c) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(us[1]), HasConst: true}, nil
}

type form22c struct{ base }

func (f form22c) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && referenceFits(ins, 16)
}

func (form22c) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + referenceString(ins)
}

func (form22c) CommentString(ins *insn.Instruction) string { return referenceComment(ins, 16) }

func (form22c) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, makeByte(ins.Reg(0).Index, ins.Reg(1).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form22c) read(us []uint16, _ bool) (Fields, error) {
	a, b := nibbles(us[0])
	return Fields{Regs: []int{a, b}, Bits: int64(us[1]), HasConst: true}, nil
}

type form31c struct{ base }

func (f form31c) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && referenceFits(ins, 32)
}

func (form31c) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + referenceString(ins)
}

func (form31c) CommentString(ins *insn.Instruction) string { return referenceComment(ins, 32) }

func (form31c) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Units32(uint32(constBits(ins)))
}

func (form31c) read(us []uint16, _ bool) (Fields, error) {
	v := uint32(us[1]) | uint32(us[2])<<16
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(v), HasConst: true}, nil
}

type form35c struct{ base }

func (f form35c) IsCompatible(ins *insn.Instruction) bool {
	if ins.RegCount() > f.maxRegs || !referenceFits(ins, 16) {
		return false
	}
	for i := 0; i < ins.RegCount(); i++ {
		if !regFits(ins.Reg(i), 4) {
			return false
		}
	}
	return true
}

// CompatibleRegs marks registers past the fifth as not fitting.
func (f form35c) CompatibleRegs(ins *insn.Instruction) []bool {
	out := make([]bool, ins.RegCount())
	for i := range out {
		out[i] = i < f.maxRegs && regFits(ins.Reg(i), 4)
	}
	return out
}

func (form35c) ArgString(ins *insn.Instruction) string {
	return "{" + regList(ins) + "}, " + referenceString(ins)
}

func (form35c) CommentString(ins *insn.Instruction) string { return referenceComment(ins, 16) }

func (form35c) write(w *units.Writer, op byte, ins *insn.Instruction) {
	n := ins.RegCount()
	var r [5]int
	for i := 0; i < n; i++ {
		r[i] = ins.Reg(i).Index
	}
	w.Unit(opcodeUnit(op, makeByte(r[4], n)))
	w.Unit(uint16(constBits(ins)))
	w.Unit(codeUnit(makeByte(r[0], r[1]), makeByte(r[2], r[3])))
}

func (form35c) read(us []uint16, _ bool) (Fields, error) {
	g, n := nibbles(us[0])
	if n > 5 {
		return Fields{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Format("35c").
			Value(n).
			Detail("register count %d exceeds 5", n).
			Build()
	}
	all := [5]int{
		int(us[2] & 0x0f),
		int(us[2] >> 4 & 0x0f),
		int(us[2] >> 8 & 0x0f),
		int(us[2] >> 12),
		g,
	}
	return Fields{Regs: append([]int(nil), all[:n]...), Bits: int64(us[1]), HasConst: true}, nil
}

type form3rc struct{ base }

// IsCompatible requires the registers to be consecutive, starting at a
// register that fits 16 bits, with the last one fitting as well.
func (f form3rc) IsCompatible(ins *insn.Instruction) bool {
	n := ins.RegCount()
	if n > f.maxRegs || !referenceFits(ins, 16) {
		return false
	}
	for _, ok := range f.CompatibleRegs(ins) {
		if !ok {
			return false
		}
	}
	return true
}

// CompatibleRegs marks slot i as fitting when it fits 16 bits and directly
// follows slot i-1.
func (f form3rc) CompatibleRegs(ins *insn.Instruction) []bool {
	out := make([]bool, ins.RegCount())
	if len(out) == 0 {
		return out
	}
	first := ins.Reg(0).Index
	for i := range out {
		r := ins.Reg(i).Index
		out[i] = i < f.maxRegs && regFits(ins.Reg(i), 16) && r == first+i
	}
	return out
}

func (form3rc) ArgString(ins *insn.Instruction) string {
	return regRange(ins) + ", " + referenceString(ins)
}

func (form3rc) CommentString(ins *insn.Instruction) string { return referenceComment(ins, 16) }

func (form3rc) write(w *units.Writer, op byte, ins *insn.Instruction) {
	first := 0
	if ins.RegCount() > 0 {
		first = ins.Reg(0).Index
	}
	w.Unit(opcodeUnit(op, byte(ins.RegCount())))
	w.Unit(uint16(constBits(ins)))
	w.Unit(uint16(first))
}

func (form3rc) read(us []uint16, _ bool) (Fields, error) {
	n := highByte(us[0])
	first := int(us[2])
	regs := make([]int, n)
	for i := range regs {
		regs[i] = first + i
	}
	return Fields{Regs: regs, Bits: int64(us[1]), HasConst: true}, nil
}
