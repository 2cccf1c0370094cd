// Package format implements the physical dex instruction formats.
//
// Each format is a stateless singleton describing one encoding shape: its
// size in 16-bit code units, the bit width of each register slot and an
// optional constant slot. A format answers three questions about an
// abstract instruction:
//
//	f.IsCompatible(ins)   // can ins be encoded losslessly in f?
//	f.CompatibleRegs(ins) // which register slots fit, individually?
//	f.CodeSize()          // how many code units does the encoding take?
//
// The set of formats is closed. Encoding goes through a Witness, which only
// Check can produce and only for a compatible instruction, so an
// instruction can never be written in a format whose fields would truncate
// one of its operands:
//
//	w, ok := format.Check(format.Form22s, 0xd0, false, ins)
//	if ok {
//	    w.WriteTo(out)
//	}
//
// # Layout
//
// The first code unit always holds the opcode in its low byte and a
// format-specific byte in its high byte. Two nibble-wide registers A and B
// pack as A | B<<4. Values wider than a code unit are stored low half first.
//
//	22s:  B|A|op  CCCC          add-int/lit16 vA, vB, #+CCCC
//	35c:  A|G|op  BBBB  F|E|D|C invoke-kind {vC, vD, vE, vF, vG}, meth@BBBB
//
// Decode is the inverse of WriteTo and is used by the disassembler.
package format
