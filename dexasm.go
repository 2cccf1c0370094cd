package dexasm

import (
	"context"

	"github.com/wippyai/dexasm/asm"
	"github.com/wippyai/dexasm/disasm"
	"github.com/wippyai/dexasm/encoder"
)

// Assemble parses src and encodes every instruction in it.
func Assemble(ctx context.Context, src string, opts encoder.Options) (*encoder.Program, error) {
	instrs, err := asm.Parse(src)
	if err != nil {
		return nil, err
	}
	return encoder.EncodeAll(ctx, instrs, opts)
}

// Disassemble renders a code-unit stream as a listing, one line per
// instruction or payload.
func Disassemble(us []uint16) ([]string, error) {
	lines, err := disasm.Decode(us)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out, nil
}
