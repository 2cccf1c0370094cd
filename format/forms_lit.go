package format

import (
	"github.com/wippyai/dexasm/bitfit"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// Literal formats.

// Form11n is "B|A|op": nibble register, signed nibble literal. const/4.
var Form11n Format = form11n{base{name: "11n", size: 1, regs: []uint{4}, slot: Slot{SlotLiteral, 4, true}}}

// Form21s is "AA|op BBBB": signed 16-bit literal. const/16, const-wide/16.
var Form21s Format = form21s{base{name: "21s", size: 2, regs: []uint{8}, slot: Slot{SlotLiteral, 16, true}}}

// Form21h is "AA|op BBBB": the high 16 bits of a 32-bit or 64-bit literal
// whose remaining bits are zero. const/high16, const-wide/high16.
var Form21h Format = form21h{base{name: "21h", size: 2, regs: []uint{8}, slot: Slot{SlotLiteral, 16, false}}}

// Form31i is "AA|op BBBBlo BBBBhi": signed 32-bit literal. const, const-wide/32.
var Form31i Format = form31i{base{name: "31i", size: 3, regs: []uint{8}, slot: Slot{SlotLiteral, 32, true}}}

// Form51l is "AA|op BBBB x4": 64-bit literal. const-wide.
var Form51l Format = form51l{base{name: "51l", size: 5, regs: []uint{8}, slot: Slot{SlotLiteral, 64, true}}}

// Form22b is "AA|op CC|BB": signed byte literal. add-int/lit8.
var Form22b Format = form22b{base{name: "22b", size: 2, regs: []uint{8, 8}, slot: Slot{SlotLiteral, 8, true}}}

// Form22s is "B|A|op CCCC": signed 16-bit literal. add-int/lit16.
var Form22s Format = form22s{base{name: "22s", size: 2, regs: []uint{4, 4}, slot: Slot{SlotLiteral, 16, true}}}

// intLiteralFits reports whether ins carries a literal that narrows to an
// int and then fits width signed bits.
func intLiteralFits(ins *insn.Instruction, width uint) bool {
	c, ok := literal(ins)
	return ok && c.FitsInInt() && bitfit.SignedFits(int64(c.IntBits()), width)
}

type form11n struct{ base }

func (f form11n) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && intLiteralFits(ins, 4)
}

func (form11n) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form11n) CommentString(ins *insn.Instruction) string { return literalComment(ins, 4) }

func (form11n) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, makeByte(ins.Reg(0).Index, int(constBits(ins)))))
}

func (form11n) read(us []uint16, _ bool) (Fields, error) {
	a, b := nibbles(us[0])
	return Fields{Regs: []int{a}, Bits: bitfit.SignExtend(uint64(b), 4), HasConst: true}, nil
}

type form21s struct{ base }

func (f form21s) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && intLiteralFits(ins, 16)
}

func (form21s) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form21s) CommentString(ins *insn.Instruction) string { return literalComment(ins, 16) }

func (form21s) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form21s) read(us []uint16, _ bool) (Fields, error) {
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(int16(us[1])), HasConst: true}, nil
}

type form21h struct{ base }

// IsCompatible requires every bit below the top 16 to be zero: bits 0-15 of
// an int literal, bits 0-47 of a wide literal. Check sizes the literal to the
// op first, so the constant kind always matches the op width on write.
func (f form21h) IsCompatible(ins *insn.Instruction) bool {
	if !f.regsFit(ins) {
		return false
	}
	c, ok := literal(ins)
	if !ok {
		return false
	}
	if c.Kind() == insn.Wide {
		return c.LongBits()&0xffffffffffff == 0
	}
	return c.FitsInInt() && c.IntBits()&0xffff == 0
}

func (form21h) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form21h) CommentString(ins *insn.Instruction) string {
	if c, ok := literal(ins); ok && c.Kind() == insn.Wide {
		return literalComment(ins, 64)
	}
	return literalComment(ins, 32)
}

func (form21h) write(w *units.Writer, op byte, ins *insn.Instruction) {
	c, _ := literal(ins)
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	if c.Kind() == insn.Wide {
		w.Unit(uint16(uint64(c.LongBits()) >> 48))
	} else {
		w.Unit(uint16(uint32(c.IntBits()) >> 16))
	}
}

func (form21h) read(us []uint16, wide bool) (Fields, error) {
	f := Fields{Regs: []int{highByte(us[0])}, HasConst: true}
	if wide {
		f.Bits = int64(uint64(us[1]) << 48)
	} else {
		f.Bits = int64(int32(uint32(us[1]) << 16))
	}
	return f, nil
}

type form31i struct{ base }

func (f form31i) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && intLiteralFits(ins, 32)
}

func (form31i) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form31i) CommentString(ins *insn.Instruction) string { return literalComment(ins, 32) }

func (form31i) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Units32(uint32(constBits(ins)))
}

func (form31i) read(us []uint16, _ bool) (Fields, error) {
	v := uint32(us[1]) | uint32(us[2])<<16
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(int32(v)), HasConst: true}, nil
}

type form51l struct{ base }

func (f form51l) IsCompatible(ins *insn.Instruction) bool {
	_, ok := literal(ins)
	return ok && f.regsFit(ins)
}

func (form51l) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form51l) CommentString(ins *insn.Instruction) string { return literalComment(ins, 64) }

func (form51l) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Units64(uint64(constBits(ins)))
}

func (form51l) read(us []uint16, _ bool) (Fields, error) {
	v := uint64(us[1]) | uint64(us[2])<<16 | uint64(us[3])<<32 | uint64(us[4])<<48
	return Fields{Regs: []int{highByte(us[0])}, Bits: int64(v), HasConst: true}, nil
}

type form22b struct{ base }

func (f form22b) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && intLiteralFits(ins, 8)
}

func (form22b) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form22b) CommentString(ins *insn.Instruction) string { return literalComment(ins, 8) }

func (form22b) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, byte(ins.Reg(0).Index)))
	w.Unit(codeUnit(byte(ins.Reg(1).Index), byte(constBits(ins))))
}

func (form22b) read(us []uint16, _ bool) (Fields, error) {
	return Fields{
		Regs:     []int{highByte(us[0]), int(us[1] & 0xff)},
		Bits:     int64(int8(us[1] >> 8)),
		HasConst: true,
	}, nil
}

type form22s struct{ base }

// IsCompatible: both registers fit a nibble and the literal narrows to a
// signed short.
func (f form22s) IsCompatible(ins *insn.Instruction) bool {
	return f.regsFit(ins) && intLiteralFits(ins, 16)
}

func (form22s) ArgString(ins *insn.Instruction) string {
	return regList(ins) + ", " + literalString(ins)
}

func (form22s) CommentString(ins *insn.Instruction) string { return literalComment(ins, 16) }

func (form22s) write(w *units.Writer, op byte, ins *insn.Instruction) {
	w.Unit(opcodeUnit(op, makeByte(ins.Reg(0).Index, ins.Reg(1).Index)))
	w.Unit(uint16(constBits(ins)))
}

func (form22s) read(us []uint16, _ bool) (Fields, error) {
	a, b := nibbles(us[0])
	return Fields{Regs: []int{a, b}, Bits: int64(int16(us[1])), HasConst: true}, nil
}
