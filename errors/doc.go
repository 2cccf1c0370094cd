// Package errors provides structured error types for the dexasm library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the instruction context: opcode family, format name,
// per-register fit vector, source line and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSelect, errors.KindNoCompatibleFormat).
//		Opcode("add-int/lit16").
//		Format("22s").
//		Regs([]bool{false, true}).
//		Detail("register v20 does not fit").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoCompatibleFormat("add-int/lit16", "22s", regs)
//	err := errors.Truncated(errors.PhaseDecode, 2, 1)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
