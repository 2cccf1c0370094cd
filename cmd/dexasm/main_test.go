package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/dexasm/asm"
	"github.com/wippyai/dexasm/encoder"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncodeListing(t *testing.T) {
	out, err := execute(t, "add-int/lit16 v3, v5, #100\nreturn-void\n", "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{
		"0000: d053 0064",
		"add-int/lit16 v3, v5, #int 100 // #0064",
		"0002: 0e00",
		"return-void",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeBinary(t *testing.T) {
	tests := []struct {
		order string
		want  []byte
	}{
		{"little", []byte{0xd0, 0x53, 0x64, 0x00}},
		{"big", []byte{0x53, 0xd0, 0x00, 0x64}},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			out, err := execute(t, "add-int/lit16 v3, v5, #100", "encode", "--format", "binary", "--byte-order", tt.order)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if diff := cmp.Diff(tt.want, []byte(out)); diff != "" {
				t.Errorf("bytes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.s")
	dst := filepath.Join(dir, "prog.bin")
	if err := os.WriteFile(src, []byte("const v0, #1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "encode", src, "--format", "binary", "-o", dst); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x12, 0x10}, data); diff != "" {
		t.Errorf("bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"parse", "move v1 v2", "line 1"},
		{"selection", "add-int/lit16 v20, v5, #100", "failing register slots 0"},
		{"unknown", "frobnicate", "frobnicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.src, "encode")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEncodeMetrics(t *testing.T) {
	out, err := execute(t, "add-int/lit16 v3, v5, #100\nconst/4 v0, #1\n", "encode", "--metrics")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{"dexasm_format_selected_total", "format=22s", "format=11n", "dexasm_code_units_total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisasm(t *testing.T) {
	out, err := execute(t, "d053 6400\n0e00", "disasm", "--hex")
	if err != nil {
		t.Fatalf("disasm: %v", err)
	}
	if !strings.Contains(out, "add-int/lit16 v3, v5, #int 100") || !strings.Contains(out, "return-void") {
		t.Errorf("unexpected listing:\n%s", out)
	}

	if _, err := execute(t, "zz", "disasm", "--hex"); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestFormatsAndOps(t *testing.T) {
	out, err := execute(t, "", "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"22s", "literal, signed 16", "0-5 x 4 bits", "51l"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "ops", "--family", "add-int/lit")
	if err != nil {
		t.Fatalf("ops: %v", err)
	}
	lit8 := strings.Index(out, "add-int/lit8")
	lit16 := strings.Index(out, "add-int/lit16")
	if lit8 < 0 || lit16 < 0 || lit8 > lit16 {
		t.Errorf("family candidates missing or out of order:\n%s", out)
	}

	if _, err := execute(t, "", "ops", "--family", "frobnicate"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "", "config", "--byte-order", "big", "--workers", "3")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"byte_order: big", "workers: 3", "format: hex"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "", "config", "--byte-order", "middle"); err == nil {
		t.Error("expected validation error")
	}
}

func TestInteractiveEncode(t *testing.T) {
	m := newInteractiveModel(encoder.DefaultOptions())

	r := m.encode("add-int/lit v1, v2, #200")
	if r.err != nil {
		t.Fatalf("encode: %v", r.err)
	}
	m.apply(r)
	if len(m.history) != 1 || !strings.Contains(m.history[0], "add-int/lit16") {
		t.Errorf("history = %v", m.history)
	}
	if len(r.candidates) != 2 || r.candidates[0].compatible || !r.candidates[1].chosen {
		t.Errorf("candidates = %+v", r.candidates)
	}

	r = m.encode("add-int/lit16 v20, v5, #1")
	if r.err == nil {
		t.Fatal("expected selection error")
	}
	m.apply(r)
	if !strings.Contains(m.View(), "too wide") {
		t.Error("view should flag the register that does not fit")
	}
	if m.enc.Len() != 2 {
		t.Errorf("encoder holds %d units, want 2", m.enc.Len())
	}
}

func TestProgramLines(t *testing.T) {
	instrs, err := asm.Parse("const v0, #1\nconst v1, #100000\n")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := encoder.EncodeAll(t.Context(), instrs, encoder.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	lines := programLines(prog)
	if len(lines) != 2 || lines[1].Offset != 1 || lines[1].Op.Name != "const" {
		t.Errorf("lines = %+v", lines)
	}
}
