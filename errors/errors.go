package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSelect Phase = "select" // format selection
	PhaseDecode Phase = "decode" // code units to instruction
	PhaseParse  Phase = "parse"  // assembly text parsing
	PhaseConfig Phase = "config" // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNoCompatibleFormat Kind = "no_compatible_format"
	KindUnknownOpcode      Kind = "unknown_opcode"
	KindOperandCount       Kind = "operand_count"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidData        Kind = "invalid_data"
	KindTruncated          Kind = "truncated"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindUnsupported        Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Opcode string
	Format string
	Detail string
	Regs   []bool // per-slot register fit, set for selection failures
	Line   int    // 1-based source line, 0 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
	}

	if e.Opcode != "" || e.Format != "" {
		b.WriteString(": ")
		if e.Opcode != "" && e.Format != "" {
			b.WriteString("opcode ")
			b.WriteString(e.Opcode)
			b.WriteString(", format ")
			b.WriteString(e.Format)
		} else if e.Opcode != "" {
			b.WriteString("opcode ")
			b.WriteString(e.Opcode)
		} else {
			b.WriteString("format ")
			b.WriteString(e.Format)
		}
	}

	if failing := e.FailingRegs(); len(failing) > 0 {
		b.WriteString(" (failing register slots ")
		for i, slot := range failing {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(slot))
		}
		b.WriteByte(')')
	}

	if e.Detail != "" {
		if e.Opcode != "" || e.Format != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// FailingRegs returns the register slots whose index does not fit,
// in slot order.
func (e *Error) FailingRegs() []int {
	var out []int
	for i, ok := range e.Regs {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Opcode sets the opcode family or mnemonic
func (b *Builder) Opcode(op string) *Builder {
	b.err.Opcode = op
	return b
}

// Format sets the instruction format name
func (b *Builder) Format(name string) *Builder {
	b.err.Format = name
	return b
}

// Regs sets the per-slot register fit vector. The slice is copied.
func (b *Builder) Regs(regs []bool) *Builder {
	b.err.Regs = append([]bool(nil), regs...)
	return b
}

// Line sets the source line
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoCompatibleFormat creates a selection exhaustion error. regs is the
// fit vector of the widest candidate format.
func NoCompatibleFormat(opcode, widest string, regs []bool) *Error {
	return New(PhaseSelect, KindNoCompatibleFormat).
		Opcode(opcode).
		Format(widest).
		Regs(regs).
		Detail("no candidate format can represent the instruction; reallocate registers or split it").
		Build()
}

// UnknownOpcode creates an unknown opcode family error
func UnknownOpcode(phase Phase, opcode string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownOpcode,
		Opcode: opcode,
		Detail: fmt.Sprintf("unknown opcode %q", opcode),
		Value:  opcode,
	}
}

// OperandCount creates a register count mismatch error
func OperandCount(phase Phase, opcode string, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOperandCount,
		Opcode: opcode,
		Detail: fmt.Sprintf("expected %d registers, got %d", want, got),
		Value:  got,
	}
}

// Truncated creates an error for a code-unit stream that ends mid-instruction
func Truncated(phase Phase, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("need %d code units, have %d", need, have),
		Value:  have,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidInput).Detail(detail, args...).Build()
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an error for a position past the end of a stream of
// the given length
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}
