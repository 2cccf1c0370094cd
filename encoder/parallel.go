package encoder

import (
	"context"
	"encoding/binary"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
)

// Program is an encoded instruction list.
type Program struct {
	Instructions []Encoded
	Units        []uint16
}

// Bytes serializes the program in the given byte order.
func (p *Program) Bytes(order binary.ByteOrder) []byte {
	return units.ToBytes(p.Units, order)
}

// Offsets returns the code-unit offset of each instruction.
func (p *Program) Offsets() []int {
	out := make([]int, len(p.Instructions))
	pos := 0
	for i, e := range p.Instructions {
		out[i] = pos
		pos += len(e.Units)
	}
	return out
}

// EncodeAll encodes instrs on up to opts.Workers goroutines and joins the
// results in input order. When several instructions fail, the error of the
// earliest one is returned. No new work is started once one has failed.
func EncodeAll(ctx context.Context, instrs []*insn.Instruction, opts Options) (*Program, error) {
	opts = opts.normalized()

	results := make([]Encoded, len(instrs))
	errs := make([]error, len(instrs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var sel Selector
	for i, ins := range instrs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			enc, err := encodeOne(sel, opts.Metrics, ins)
			if err != nil {
				errs[i] = err
				return err
			}
			results[i] = enc
			return nil
		})
	}
	waitErr := g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r.Units)
	}
	out := units.NewWriter(total)
	for _, r := range results {
		out.WriteUnits(r.Units)
	}

	Logger().Debug("encoded program",
		zap.Int("instructions", len(instrs)),
		zap.Int("units", total),
		zap.Int("workers", opts.Workers))

	return &Program{Instructions: results, Units: out.Units()}, nil
}
