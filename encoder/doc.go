// Package encoder turns abstract instructions into dex code units.
//
// Selection walks the instruction's opcode family and keeps the compatible
// candidate with the fewest code units. The Encoder appends the selected
// encoding to its buffer; EncodeAll encodes a whole instruction list on a
// bounded worker pool and joins the results in program order.
//
//	enc := encoder.New(encoder.DefaultOptions())
//	ins := insn.With("add-int/lit16", insn.Int(100), insn.Dst(3), insn.Src(5))
//	if _, err := enc.Encode(ins); err != nil {
//		return err
//	}
//	enc.Units() // [0x53d0 0x0064]
package encoder
