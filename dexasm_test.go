package dexasm

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/dexasm/encoder"
	"github.com/wippyai/dexasm/errors"
)

func TestAssemble(t *testing.T) {
	src := `
const v0, #7
const v1, #100000
add-int/lit16 v3, v5, #100
invoke-static {v0 .. v5}, method@2
return-void
`
	prog, err := Assemble(context.Background(), src, encoder.DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []uint16{
		0x7012,                 // const/4 v0, #7
		0x0114, 0x86a0, 0x0001, // const v1, #100000
		0x53d0, 0x0064, // add-int/lit16 v3, v5, #100
		0x0677, 0x0002, 0x0000, // invoke-static/range {v0 .. v5}
		0x000e, // return-void
	}
	if diff := cmp.Diff(want, prog.Units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}

	listing, err := Disassemble(prog.Units)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if len(listing) != 5 {
		t.Fatalf("listing has %d lines, want 5", len(listing))
	}
	if !strings.Contains(listing[3], "invoke-static/range {v0 .. v5}, method@2") {
		t.Errorf("listing[3] = %q", listing[3])
	}
}

func TestAssembleLiteralWidth(t *testing.T) {
	tests := []struct {
		src  string
		want []uint16
	}{
		{"const-wide v0, #65536", []uint16{0x0017, 0x0000, 0x0001}},
		{"const-wide v0, #-1", []uint16{0x0016, 0xffff}},
		{"const-wide v0, #281474976710656", []uint16{0x0019, 0x0001}},
		{"const v0, #65536", []uint16{0x0015, 0x0001}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := Assemble(context.Background(), tt.src, encoder.DefaultOptions())
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if diff := cmp.Diff(tt.want, prog.Units); diff != "" {
				t.Errorf("units mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := Assemble(context.Background(), "const v0, #281474976710656", encoder.DefaultOptions()); err == nil {
		t.Error("a 64-bit literal in a 32-bit const should not encode")
	}
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(context.Background(), "nop\nadd-int/lit16 v20, v5, #100", encoder.DefaultOptions())
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if e.Kind != errors.KindNoCompatibleFormat {
		t.Errorf("Kind = %s", e.Kind)
	}
	if diff := cmp.Diff([]int{0}, e.FailingRegs()); diff != "" {
		t.Errorf("FailingRegs mismatch (-want +got):\n%s", diff)
	}

	if _, err := Assemble(context.Background(), "move v1 v2", encoder.DefaultOptions()); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Disassemble([]uint16{0x00ff}); err == nil {
		t.Error("expected decode error")
	}
}
