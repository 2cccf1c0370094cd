package insn

import (
	"math"
	"testing"
)

func TestNewCopiesOperands(t *testing.T) {
	regs := []Reg{Dst(3), Src(5)}
	c := Int(100)
	ins := New("add-int/lit16", regs, &c)

	regs[0] = Dst(20)
	c = Int(7)

	if got := ins.Reg(0).Index; got != 3 {
		t.Errorf("Reg(0).Index = %d, want 3", got)
	}
	got, ok := ins.Constant()
	if !ok || got.IntBits() != 100 {
		t.Errorf("Constant() = %v, %v, want #100", got, ok)
	}

	out := ins.Regs()
	out[1] = Src(9)
	if ins.Reg(1).Index != 5 {
		t.Error("Regs() must return a copy")
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		ins  *Instruction
		want string
	}{
		{Plain("return-void"), "return-void"},
		{Plain("move", Dst(1), Src(2)), "move v1, v2"},
		{With("add-int/lit16", Int(100), Dst(3), Src(5)), "add-int/lit16 v3, v5, #100"},
		{With("goto", Branch(-4)), "goto -4"},
		{With("const-string", Ref(RefString, 12, ""), Dst(0)), "const-string v0, string@12"},
		{With("const-wide", Long(1<<40), Dst(2)), "const-wide v2, #1099511627776L"},
	}

	for _, tt := range tests {
		if got := tt.ins.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestConstantQueries(t *testing.T) {
	tests := []struct {
		name      string
		c         Constant
		literal   bool
		fitsInt   bool
		bits16    uint64
		intBits   int32
		kind      ConstKind
		reference RefKind
	}{
		{"int", Int(100), true, true, 0x0064, 100, Literal, RefNone},
		{"negative int", Int(-1), true, true, 0xffff, -1, Literal, RefNone},
		{"long small", Long(-2), true, true, 0xfffe, -2, Wide, RefNone},
		{"long large", Long(1 << 33), true, false, 0, 0, Wide, RefNone},
		{"float", Float32(1.0), true, true, 0x0000, 0x3f800000, Literal, RefNone},
		{"ref", Ref(RefType, 7, "Ljava/lang/Object;"), false, true, 7, 7, Reference, RefType},
		{"offset", Branch(-3), false, true, 0xfffd, -3, Offset, RefNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.HasLiteralBits(); got != tt.literal {
				t.Errorf("HasLiteralBits() = %v, want %v", got, tt.literal)
			}
			if got := tt.c.FitsInInt(); got != tt.fitsInt {
				t.Errorf("FitsInInt() = %v, want %v", got, tt.fitsInt)
			}
			if got := tt.c.BitsAt(16); got != tt.bits16 {
				t.Errorf("BitsAt(16) = %#x, want %#x", got, tt.bits16)
			}
			if got := tt.c.IntBits(); got != tt.intBits {
				t.Errorf("IntBits() = %#x, want %#x", got, tt.intBits)
			}
			if tt.c.Kind() != tt.kind || tt.c.RefKind() != tt.reference {
				t.Errorf("Kind()=%v RefKind()=%v", tt.c.Kind(), tt.c.RefKind())
			}
		})
	}
}

func TestFloat64Bits(t *testing.T) {
	c := Float64(1.0)
	if uint64(c.LongBits()) != math.Float64bits(1.0) {
		t.Errorf("LongBits() = %#x", c.LongBits())
	}
	if c.FitsInInt() {
		t.Error("1.0 as double bits should not fit in an int")
	}
}

func TestParseRefKind(t *testing.T) {
	for _, k := range []RefKind{RefString, RefType, RefField, RefMethod} {
		got, ok := ParseRefKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseRefKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseRefKind("proto"); ok {
		t.Error("ParseRefKind should reject unknown pools")
	}
}

func TestRoleString(t *testing.T) {
	if Source.String() != "source" || Destination.String() != "destination" {
		t.Errorf("Role strings: %q %q", Source, Destination)
	}
}
