// Package disasm decodes dex code units back into abstract instructions and
// renders listings.
package disasm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
	"github.com/wippyai/dexasm/opcode"
)

// Payload identifiers. A payload starts with a nop unit whose high byte is
// non-zero.
const (
	packedSwitchPayload uint16 = 0x0100
	sparseSwitchPayload uint16 = 0x0200
	fillArrayPayload    uint16 = 0x0300
)

// Line is one decoded instruction or data payload.
type Line struct {
	// Instruction is nil for payloads.
	Instruction *insn.Instruction
	Op          opcode.Op
	// Payload names the data table for payload lines.
	Payload string
	Units   []uint16
	Offset  int
}

// String renders the line, e.g.
//
//	0000: d053 0064 | add-int/lit16 v3, v5, #int 100 // #0064
func (l Line) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04x: %-24s | ", l.Offset, hexUnits(l.Units))

	if l.Instruction == nil {
		fmt.Fprintf(&b, "%s (%d units)", l.Payload, len(l.Units))
		return b.String()
	}

	b.WriteString(l.Op.Name)
	if args := l.Op.Format.ArgString(l.Instruction); args != "" {
		b.WriteByte(' ')
		b.WriteString(args)
	}
	if comment := l.Op.Format.CommentString(l.Instruction); comment != "" {
		b.WriteString(" // ")
		b.WriteString(comment)
	}
	return b.String()
}

// hexUnits renders the first unit opcode byte first and the rest as values.
// Long payloads are cut after five units.
func hexUnits(us []uint16) string {
	parts := make([]string, 0, 5)
	for i, u := range us {
		if i == 5 {
			parts = append(parts, "...")
			break
		}
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%02x%02x", byte(u), byte(u>>8)))
		} else {
			parts = append(parts, fmt.Sprintf("%04x", u))
		}
	}
	return strings.Join(parts, " ")
}

// Decode walks us and decodes every instruction and payload in it.
func Decode(us []uint16) ([]Line, error) {
	r := units.NewReader(us)
	lines := make([]Line, 0, len(us)/2)

	for r.Remaining() > 0 {
		pos := r.Position()
		first, _ := r.Peek()

		if byte(first) == 0x00 && first>>8 != 0 {
			line, err := decodePayload(r)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			continue
		}

		op, ok := opcode.ByCode(byte(first))
		if !ok {
			return nil, errors.New(errors.PhaseDecode, errors.KindUnknownOpcode).
				Opcode(fmt.Sprintf("0x%02x", byte(first))).
				Value(pos).
				Detail("unused opcode at offset %d", pos).
				Build()
		}

		raw, err := r.Next(op.Format.CodeSize())
		if err != nil {
			e := errors.Truncated(errors.PhaseDecode, op.Format.CodeSize(), r.Remaining())
			e.Opcode = op.Name
			e.Format = op.Format.Name()
			return nil, e
		}

		fields, err := format.Decode(op.Format, raw, op.Wide)
		if err != nil {
			return nil, err
		}

		lines = append(lines, Line{
			Offset:      pos,
			Units:       raw,
			Op:          op,
			Instruction: op.Instruction(fields),
		})
	}

	Logger().Debug("decoded",
		zap.Int("units", len(us)),
		zap.Int("lines", len(lines)))
	return lines, nil
}

// DecodeBytes splits data into code units in the given order and decodes them.
func DecodeBytes(data []byte, order binary.ByteOrder) ([]Line, error) {
	us, err := units.FromBytes(data, order)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Value(len(data)).
			Build()
	}
	return Decode(us)
}

// payloadSize returns the unit length of the payload starting with head.
func payloadSize(head []uint16) (string, int, error) {
	if len(head) < 2 {
		return "", 0, errors.Truncated(errors.PhaseDecode, 2, len(head))
	}
	n := int(head[1])
	switch head[0] {
	case packedSwitchPayload:
		return "packed-switch-payload", 4 + 2*n, nil
	case sparseSwitchPayload:
		return "sparse-switch-payload", 2 + 4*n, nil
	case fillArrayPayload:
		if len(head) < 4 {
			return "", 0, errors.Truncated(errors.PhaseDecode, 4, len(head))
		}
		count := int(uint32(head[2]) | uint32(head[3])<<16)
		return "fill-array-data-payload", 4 + (count*n+1)/2, nil
	}
	return "", 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Value(head[0]).
		Detail("unknown payload identifier %#04x", head[0]).
		Build()
}

func decodePayload(r *units.Reader) (Line, error) {
	pos := r.Position()
	name, size, err := payloadSize(r.Window(4))
	if err != nil {
		return Line{}, err
	}
	if size > r.Remaining() {
		e := errors.OutOfBounds(errors.PhaseDecode, pos+size, pos+r.Remaining())
		e.Opcode = name
		return Line{}, e
	}
	body, err := r.Next(size)
	if err != nil {
		return Line{}, err
	}
	return Line{Offset: pos, Payload: name, Units: body}, nil
}
