package insn

import "strconv"

// Role tells whether an instruction reads or writes a register.
type Role uint8

const (
	Source Role = iota
	Destination
)

func (r Role) String() string {
	switch r {
	case Source:
		return "source"
	case Destination:
		return "destination"
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Reg is a resolved register operand.
type Reg struct {
	Index int
	Role  Role
}

// Dst returns a destination register operand.
func Dst(index int) Reg {
	return Reg{Index: index, Role: Destination}
}

// Src returns a source register operand.
func Src(index int) Reg {
	return Reg{Index: index, Role: Source}
}

// String renders the register the way listings do, e.g. "v3".
func (r Reg) String() string {
	return "v" + strconv.Itoa(r.Index)
}
