// Package dexasm selects and emits the binary encoding of Dalvik register
// bytecode instructions.
//
// An abstract instruction names an opcode family, its registers and an
// optional constant. Encoding checks which physical formats of the family
// can hold every operand without losing bits, picks the one with the fewest
// 16-bit code units and writes it.
//
// # Architecture Overview
//
//	dexasm/             Root package with Assemble and Disassemble
//	├── bitfit/         Signed and unsigned bit-width checks
//	├── insn/           Registers, constants and abstract instructions
//	├── format/         The instruction formats (10x .. 51l) and their codecs
//	├── opcode/         Physical opcodes and the families selected from
//	├── encoder/        Format selection, encoding and parallel EncodeAll
//	├── disasm/         Code units back to instructions and listings
//	├── asm/            Text assembly parser
//	├── config/         Settings from file, environment and flags
//	├── errors/         Structured error types
//	└── cmd/dexasm/     Command-line tool and interactive encoder
//
// # Quick Start
//
//	prog, err := dexasm.Assemble(ctx, "add-int/lit16 v3, v5, #100", encoder.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%04x\n", prog.Units) // [53d0 0064]
//
// Instructions can also be built directly:
//
//	ins := insn.With("const", insn.Int(7), insn.Dst(0))
//	enc := encoder.New(encoder.DefaultOptions())
//	sel, err := enc.Encode(ins) // sel.Op.Name == "const/4"
//
// # Selection Failures
//
// When no format fits, the error is an *errors.Error of kind
// no_compatible_format. Its Regs field tells, for the widest candidate,
// which register slots were too wide, so a register allocator can move
// those operands into low registers and retry.
//
// # Thread Safety
//
// Formats, opcode tables and the Selector are immutable and safe for
// concurrent use. An Encoder is not; EncodeAll gives each worker its own
// buffer.
package dexasm
