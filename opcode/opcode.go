// Package opcode holds the dex opcode table and the opcode families the
// encoder selects formats from.
//
// A physical Op is one opcode byte bound to one format. A Family is what an
// abstract instruction names: an ordered list of physical ops that perform
// the same operation in formats of non-decreasing size. Every physical op is
// also a family of one under its own mnemonic, unless a grouped family of the
// same name replaces it (e.g. "move" covers move, move/from16 and move/16).
package opcode

import (
	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
)

// Op is a physical opcode.
type Op struct {
	Format format.Format
	Name   string
	Ref    insn.RefKind // pool referenced by the constant, for reference formats
	Code   byte
	Dest   bool // register slot 0 is written
	Wide   bool // the literal is 64 bits wide
}

// Family is an ordered list of physical ops, narrowest first.
type Family struct {
	Name string
	Ops  []Op
}

// RegCount returns the register count instructions of the family must
// carry, or -1 when it is variable.
func (f *Family) RegCount() int {
	for _, op := range f.Ops {
		if op.Format.RegCount() < 0 {
			return -1
		}
	}
	return f.Ops[0].Format.RegCount()
}

// Lookup returns the family with the given name.
func Lookup(name string) (*Family, bool) {
	f, ok := families[name]
	return f, ok
}

// ByCode returns the physical op for an opcode byte.
func ByCode(code byte) (Op, bool) {
	op := byCode[code]
	return op, op.Format != nil
}

// ByName returns the physical op with the given mnemonic.
func ByName(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// Ops returns every physical op in opcode order.
func Ops() []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range byCode {
		if op.Format != nil {
			out = append(out, op)
		}
	}
	return out
}

// Families returns every family name, sorted.
func Families() []string {
	return append([]string(nil), familyNames...)
}

// Instruction rebuilds the abstract instruction for fields decoded in the
// op's format. The family is the op's mnemonic.
func (op Op) Instruction(fields format.Fields) *insn.Instruction {
	regs := make([]insn.Reg, len(fields.Regs))
	for i, r := range fields.Regs {
		regs[i] = insn.Src(r)
		if i == 0 && op.Dest {
			regs[i] = insn.Dst(r)
		}
	}
	if !fields.HasConst {
		return insn.New(op.Name, regs, nil)
	}

	var c insn.Constant
	switch op.Format.Shape().Const.Kind {
	case format.SlotReference:
		c = insn.Ref(op.Ref, uint32(fields.Bits), "")
	case format.SlotOffset:
		c = insn.Branch(int32(fields.Bits))
	default:
		if op.Wide {
			c = insn.Long(fields.Bits)
		} else {
			c = insn.Int(int32(fields.Bits))
		}
	}
	return insn.New(op.Name, regs, &c)
}
