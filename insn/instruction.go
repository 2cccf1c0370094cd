package insn

import "strings"

// Instruction is an abstract instruction: an opcode family, its registers in
// slot order and an optional constant operand.
type Instruction struct {
	cst    *Constant
	family string
	regs   []Reg
}

// New builds an instruction. regs is copied; cst may be nil.
func New(family string, regs []Reg, cst *Constant) *Instruction {
	ins := &Instruction{family: family}
	if len(regs) > 0 {
		ins.regs = append([]Reg(nil), regs...)
	}
	if cst != nil {
		c := *cst
		ins.cst = &c
	}
	return ins
}

// With is shorthand for New with a constant value.
func With(family string, cst Constant, regs ...Reg) *Instruction {
	return New(family, regs, &cst)
}

// Plain is shorthand for New without a constant.
func Plain(family string, regs ...Reg) *Instruction {
	return New(family, regs, nil)
}

// Family returns the opcode family name.
func (i *Instruction) Family() string { return i.family }

// RegCount returns the number of register operands.
func (i *Instruction) RegCount() int { return len(i.regs) }

// Reg returns the register in slot n.
func (i *Instruction) Reg(n int) Reg { return i.regs[n] }

// Regs returns a copy of the register operands.
func (i *Instruction) Regs() []Reg {
	return append([]Reg(nil), i.regs...)
}

// Constant returns the constant operand and whether there is one.
func (i *Instruction) Constant() (Constant, bool) {
	if i.cst == nil {
		return Constant{}, false
	}
	return *i.cst, true
}

// String renders the instruction in assembly syntax, independent of format.
func (i *Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.family)
	for n, r := range i.regs {
		if n == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	if i.cst != nil {
		if len(i.regs) > 0 {
			b.WriteString(", ")
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(i.cst.String())
	}
	return b.String()
}
