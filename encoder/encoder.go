package encoder

import (
	"encoding/binary"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/internal/units"
	"github.com/wippyai/dexasm/opcode"
)

// Options configures an Encoder.
type Options struct {
	// ByteOrder is used by Bytes. Defaults to little-endian.
	ByteOrder binary.ByteOrder
	// Metrics, when set, counts selections and emitted units.
	Metrics *Metrics
	// Workers bounds EncodeAll's parallelism. Values below 1 mean one per CPU.
	Workers int
}

// DefaultOptions returns the dex defaults.
func DefaultOptions() Options {
	return Options{
		ByteOrder: binary.LittleEndian,
		Workers:   runtime.NumCPU(),
	}
}

func (o Options) normalized() Options {
	if o.ByteOrder == nil {
		o.ByteOrder = binary.LittleEndian
	}
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Encoded is one instruction's encoding.
type Encoded struct {
	Instruction *insn.Instruction
	Format      format.Format
	Op          opcode.Op
	Units       []uint16
}

// Bytes serializes the encoding in the given byte order.
func (e Encoded) Bytes(order binary.ByteOrder) []byte {
	return units.ToBytes(e.Units, order)
}

// Encoder appends encoded instructions to a code-unit buffer. It is not
// safe for concurrent use.
type Encoder struct {
	opts Options
	out  *units.Writer
	sel  Selector
}

// New creates an Encoder.
func New(opts Options) *Encoder {
	return &Encoder{
		opts: opts.normalized(),
		out:  units.NewWriter(64),
	}
}

// Encode selects a format for ins and appends its code units. On failure
// nothing is written and the selection error is returned unchanged.
func (e *Encoder) Encode(ins *insn.Instruction) (Selection, error) {
	sel, err := e.sel.Select(ins)
	if err != nil {
		if ins != nil {
			e.opts.Metrics.fail(ins.Family())
		}
		return Selection{}, err
	}
	n := sel.Witness.WriteTo(e.out)
	e.opts.Metrics.observe(sel)
	Logger().Debug("encoded",
		zap.String("op", sel.Op.Name),
		zap.String("format", sel.Format().Name()),
		zap.Int("units", n))
	return sel, nil
}

// Encoded encodes ins into its own buffer without touching the Encoder's.
func (e *Encoder) Encoded(ins *insn.Instruction) (Encoded, error) {
	return encodeOne(e.sel, e.opts.Metrics, ins)
}

// Units returns a copy of the code units written so far.
func (e *Encoder) Units() []uint16 {
	return append([]uint16(nil), e.out.Units()...)
}

// Bytes serializes the code units written so far in the configured byte order.
func (e *Encoder) Bytes() []byte {
	return e.out.Bytes(e.opts.ByteOrder)
}

// Len returns the number of code units written so far.
func (e *Encoder) Len() int {
	return e.out.Len()
}

// Reset discards the written code units.
func (e *Encoder) Reset() {
	e.out.Reset()
}

func encodeOne(sel Selector, m *Metrics, ins *insn.Instruction) (Encoded, error) {
	s, err := sel.Select(ins)
	if err != nil {
		if ins != nil {
			m.fail(ins.Family())
		}
		return Encoded{}, err
	}
	w := units.NewWriter(s.Format().CodeSize())
	s.Witness.WriteTo(w)
	m.observe(s)
	return Encoded{
		Instruction: s.Witness.Instruction(),
		Format:      s.Format(),
		Op:          s.Op,
		Units:       w.Units(),
	}, nil
}
