package disasm

import (
	"context"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/dexasm/encoder"
	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/insn"
)

func TestDecodeLit16(t *testing.T) {
	lines, err := Decode([]uint16{0x53d0, 0x0064})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	l := lines[0]
	if got := l.Instruction.String(); got != "add-int/lit16 v3, v5, #100" {
		t.Errorf("Instruction = %q", got)
	}
	if l.Instruction.Reg(0).Role != insn.Destination {
		t.Error("slot 0 should be a destination")
	}

	s := l.String()
	if !strings.HasPrefix(s, "0000: d053 0064") {
		t.Errorf("String() = %q, want unit prefix", s)
	}
	if !strings.HasSuffix(s, "| add-int/lit16 v3, v5, #int 100 // #0064") {
		t.Errorf("String() = %q, want listing suffix", s)
	}
}

func TestRoundTrip(t *testing.T) {
	ref := insn.Ref(insn.RefMethod, 12, "")
	instrs := []*insn.Instruction{
		insn.With("const", insn.Int(-1), insn.Dst(0)),
		insn.With("const", insn.Int(0x7fff0000), insn.Dst(1)),
		insn.With("const", insn.Int(123456), insn.Dst(2)),
		insn.With("const-wide", insn.Long(-5), insn.Dst(4)),
		insn.With("const-wide", insn.Float64(2.5), insn.Dst(6)),
		insn.With("const-wide", insn.Long(0x7fffffffffff), insn.Dst(8)),
		insn.With("const-string", insn.Ref(insn.RefString, 3, ""), insn.Dst(10)),
		insn.Plain("move", insn.Dst(1), insn.Src(2)),
		insn.Plain("move-object", insn.Dst(400), insn.Src(2)),
		insn.With("add-int/lit16", insn.Int(100), insn.Dst(3), insn.Src(5)),
		insn.With("add-int/lit", insn.Int(-7), insn.Dst(30), insn.Src(31)),
		insn.Plain("add-long", insn.Dst(0), insn.Src(2), insn.Src(4)),
		insn.Plain("int-to-byte", insn.Dst(1), insn.Src(1)),
		insn.With("if-nez", insn.Branch(-3), insn.Src(7)),
		insn.With("if-ge", insn.Branch(40), insn.Src(1), insn.Src(2)),
		insn.With("goto", insn.Branch(-10)),
		insn.With("goto", insn.Branch(0)),
		insn.With("iget-object", insn.Ref(insn.RefField, 5, ""), insn.Dst(0), insn.Src(1)),
		insn.With("sput-wide", insn.Ref(insn.RefField, 300, ""), insn.Src(2)),
		insn.With("invoke-virtual", ref, insn.Src(1), insn.Src(2), insn.Src(3)),
		insn.With("invoke-static", ref, insn.Src(10), insn.Src(11), insn.Src(12), insn.Src(13), insn.Src(14), insn.Src(15)),
		insn.With("filled-new-array", insn.Ref(insn.RefType, 2, ""), insn.Src(0), insn.Src(1)),
		insn.With("packed-switch", insn.Branch(8), insn.Src(0)),
		insn.Plain("return-void"),
	}

	prog, err := encoder.EncodeAll(context.Background(), instrs, encoder.DefaultOptions())
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	lines, err := Decode(prog.Units)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(lines) != len(instrs) {
		t.Fatalf("got %d lines, want %d", len(lines), len(instrs))
	}

	offsets := prog.Offsets()
	enc := encoder.New(encoder.DefaultOptions())
	for i, l := range lines {
		if l.Offset != offsets[i] {
			t.Errorf("line %d offset = %d, want %d", i, l.Offset, offsets[i])
		}
		if l.Op.Name != prog.Instructions[i].Op.Name {
			t.Errorf("line %d op = %s, want %s", i, l.Op.Name, prog.Instructions[i].Op.Name)
		}
		if _, err := enc.Encode(l.Instruction); err != nil {
			t.Fatalf("re-encode %v: %v", l.Instruction, err)
		}
	}
	if diff := cmp.Diff(prog.Units, enc.Units()); diff != "" {
		t.Errorf("re-encoding differs (-want +got):\n%s", diff)
	}
}

func regIndexes(ins *insn.Instruction) []int {
	var out []int
	for _, r := range ins.Regs() {
		out = append(out, r.Index)
	}
	return out
}

func TestRoundTripFamilies(t *testing.T) {
	method := insn.Ref(insn.RefMethod, 9, "")
	tests := []struct {
		name string
		ins  *insn.Instruction
		op   string
		bits int64
	}{
		{"const nibble", insn.With("const", insn.Int(-8), insn.Dst(3)), "const/4", -8},
		{"const short", insn.With("const", insn.Int(-32768), insn.Dst(200)), "const/16", -32768},
		{"const high16", insn.With("const", insn.Int(-65536), insn.Dst(1)), "const/high16", -65536},
		{"const float", insn.With("const", insn.Float32(2.0), insn.Dst(1)), "const/high16", 0x40000000},
		{"const full", insn.With("const", insn.Int(0x12345678), insn.Dst(1)), "const", 0x12345678},
		{"const-wide int short", insn.With("const-wide", insn.Int(-1), insn.Dst(2)), "const-wide/16", -1},
		{"const-wide int past high16", insn.With("const-wide", insn.Int(65536), insn.Dst(2)), "const-wide/32", 65536},
		{"const-wide int min", insn.With("const-wide", insn.Int(math.MinInt32), insn.Dst(2)), "const-wide/32", math.MinInt32},
		{"const-wide high16", insn.With("const-wide", insn.Long(-1<<48), insn.Dst(2)), "const-wide/high16", -1 << 48},
		{"const-wide double", insn.With("const-wide", insn.Float64(2.0), insn.Dst(2)), "const-wide/high16", 0x4000000000000000},
		{"const-wide full", insn.With("const-wide", insn.Long(1<<40), insn.Dst(2)), "const-wide", 1 << 40},
		{"move", insn.Plain("move", insn.Dst(1), insn.Src(2)), "move", 0},
		{"move-wide from16", insn.Plain("move-wide", insn.Dst(200), insn.Src(300)), "move-wide/from16", 0},
		{"move-object 16", insn.Plain("move-object", insn.Dst(300), insn.Src(2)), "move-object/16", 0},
		{"const-string", insn.With("const-string", insn.Ref(insn.RefString, 4, ""), insn.Dst(0)), "const-string", 4},
		{"const-string jumbo", insn.With("const-string", insn.Ref(insn.RefString, 70000, ""), insn.Dst(0)), "const-string/jumbo", 70000},
		{"goto byte", insn.With("goto", insn.Branch(-128)), "goto", -128},
		{"goto short", insn.With("goto", insn.Branch(200)), "goto/16", 200},
		{"goto self", insn.With("goto", insn.Branch(0)), "goto/32", 0},
		{"filled-new-array", insn.With("filled-new-array", insn.Ref(insn.RefType, 2, ""), insn.Src(1), insn.Src(2)), "filled-new-array", 2},
		{"filled-new-array range", insn.With("filled-new-array", insn.Ref(insn.RefType, 2, ""), insn.Src(40), insn.Src(41)), "filled-new-array/range", 2},
		{"invoke", insn.With("invoke-interface", method, insn.Src(1)), "invoke-interface", 9},
		{"invoke range", insn.With("invoke-super", method, insn.Src(16), insn.Src(17)), "invoke-super/range", 9},
		{"lit8", insn.With("rsub-int/lit", insn.Int(-128), insn.Dst(1), insn.Src(2)), "rsub-int/lit8", -128},
		{"lit16", insn.With("xor-int/lit", insn.Int(32767), insn.Dst(1), insn.Src(2)), "xor-int/lit16", 32767},
	}

	enc := encoder.New(encoder.DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := enc.Encoded(tt.ins)
			if err != nil {
				t.Fatalf("Encoded(%v): %v", tt.ins, err)
			}
			if e.Op.Name != tt.op {
				t.Errorf("op = %s, want %s", e.Op.Name, tt.op)
			}

			lines, err := Decode(e.Units)
			if err != nil {
				t.Fatalf("Decode(%04x): %v", e.Units, err)
			}
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			got := lines[0].Instruction
			if got.Family() != tt.op {
				t.Errorf("decoded op = %s, want %s", got.Family(), tt.op)
			}
			if diff := cmp.Diff(regIndexes(tt.ins), regIndexes(got)); diff != "" {
				t.Errorf("registers mismatch (-want +got):\n%s", diff)
			}
			c, _ := got.Constant()
			if diff := cmp.Diff(tt.bits, c.Bits()); diff != "" {
				t.Errorf("constant bits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodePayloads(t *testing.T) {
	us := []uint16{
		0x002b, 0x0003, 0x0000, // packed-switch v0, +3
		0x000e,                 // return-void
		0x0100, 0x0002, 0x0000, 0x0000, 0x0005, 0x0000, 0x0007, 0x0000,
		0x0300, 0x0001, 0x0003, 0x0000, 0x0201, 0x0003, // fill-array-data, 3 bytes
		0x0200, 0x0001, 0x0001, 0x0000, 0x0009, 0x0000,
		0x0000, // nop
	}

	lines, err := Decode(us)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var got []string
	for _, l := range lines {
		if l.Instruction == nil {
			got = append(got, l.Payload)
		} else {
			got = append(got, l.Op.Name)
		}
	}
	want := []string{"packed-switch", "return-void", "packed-switch-payload", "fill-array-data-payload", "sparse-switch-payload", "nop"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(lines[2].String(), "packed-switch-payload (8 units)") {
		t.Errorf("payload line = %q", lines[2].String())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		us   []uint16
		kind errors.Kind
	}{
		{"unused opcode", []uint16{0x003e}, errors.KindUnknownOpcode},
		{"truncated", []uint16{0x0018, 0x0001, 0x0002}, errors.KindTruncated},
		{"truncated payload header", []uint16{0x0300, 0x0001, 0x0003}, errors.KindTruncated},
		{"payload past end", []uint16{0x0100, 0x0004, 0x0000}, errors.KindOutOfBounds},
		{"payload after code past end", []uint16{0x000e, 0x0200, 0x0002, 0x0000}, errors.KindOutOfBounds},
		{"unknown payload", []uint16{0x0700, 0x0000}, errors.KindInvalidData},
		{"bad 35c count", []uint16{0x706e, 0x0000, 0x0000}, errors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.us)
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error = %v, want *errors.Error", err)
			}
			if e.Phase != errors.PhaseDecode || e.Kind != tt.kind {
				t.Errorf("error = %s/%s, want decode/%s", e.Phase, e.Kind, tt.kind)
			}
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	lines, err := DecodeBytes([]byte{0xd0, 0x53, 0x64, 0x00}, binary.LittleEndian)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if len(lines) != 1 || lines[0].Op.Name != "add-int/lit16" {
		t.Errorf("lines = %v", lines)
	}

	if _, err := DecodeBytes([]byte{0x00, 0x00, 0x0e}, binary.LittleEndian); err == nil {
		t.Error("expected error for odd length")
	}
}
