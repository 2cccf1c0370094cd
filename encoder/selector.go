package encoder

import (
	"go.uber.org/zap"

	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/opcode"
)

// Selection is the outcome of format selection: the physical op chosen from
// the instruction's family and the witness that it can be written.
type Selection struct {
	Op      opcode.Op
	Witness format.Witness
}

// Format returns the selected format.
func (s Selection) Format() format.Format { return s.Op.Format }

// Selector picks the most compact format for an instruction. It holds no
// state and is safe for concurrent use.
type Selector struct{}

// Select checks every candidate of the instruction's family in declared
// order and returns the compatible one with the fewest code units, the
// earliest declared on ties. When none fits, the error carries the widest
// candidate's register fit vector.
func (Selector) Select(ins *insn.Instruction) (Selection, error) {
	if ins == nil {
		return Selection{}, errors.InvalidInput(errors.PhaseSelect, "nil instruction")
	}

	fam, ok := opcode.Lookup(ins.Family())
	if !ok {
		return Selection{}, errors.UnknownOpcode(errors.PhaseSelect, ins.Family())
	}
	if n := fam.RegCount(); n >= 0 && ins.RegCount() != n {
		return Selection{}, errors.OperandCount(errors.PhaseSelect, ins.Family(), ins.RegCount(), n)
	}

	var (
		best  Selection
		found bool
	)
	for _, op := range fam.Ops {
		w, ok := format.Check(op.Format, op.Code, op.Wide, ins)
		if !ok {
			Logger().Debug("format rejected",
				zap.String("family", fam.Name),
				zap.String("op", op.Name),
				zap.String("format", op.Format.Name()),
				zap.Bools("regs", op.Format.CompatibleRegs(ins)))
			continue
		}
		if !found || op.Format.CodeSize() < best.Op.Format.CodeSize() {
			best = Selection{Op: op, Witness: w}
			found = true
		}
	}

	if !found {
		widest := fam.Ops[len(fam.Ops)-1].Format
		err := errors.NoCompatibleFormat(ins.Family(), widest.Name(), widest.CompatibleRegs(ins))
		err.Value = ins.String()
		return Selection{}, err
	}
	return best, nil
}
