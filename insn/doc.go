// Package insn defines the abstract instructions consumed by the encoder.
//
// An Instruction names an opcode family, carries its resolved registers in
// slot order and at most one constant operand. Instructions are built once by
// New and never mutated afterwards, so a format that has checked an
// instruction can rely on the operands it checked.
//
// Constant operands hold their value as a 64-bit two's-complement bit
// pattern. Whether the pattern fits a narrower field is a query on the
// constant, not a stored property:
//
//	c := insn.Int(100)
//	c.FitsInInt()      // true
//	c.BitsAt(16)       // 0x0064
//
// Float literals are carried by their IEEE-754 bit pattern (Float32, Float64)
// and are fitted to a field exactly like integers with the same bits.
package insn
