package opcode

import (
	"sort"

	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
)

var (
	byCode      [256]Op
	byName      = map[string]Op{}
	families    = map[string]*Family{}
	familyNames []string
)

var ops = []Op{
	{Code: 0x00, Name: "nop", Format: format.Form10x},

	{Code: 0x01, Name: "move", Format: format.Form12x, Dest: true},
	{Code: 0x02, Name: "move/from16", Format: format.Form22x, Dest: true},
	{Code: 0x03, Name: "move/16", Format: format.Form32x, Dest: true},
	{Code: 0x04, Name: "move-wide", Format: format.Form12x, Dest: true},
	{Code: 0x05, Name: "move-wide/from16", Format: format.Form22x, Dest: true},
	{Code: 0x06, Name: "move-wide/16", Format: format.Form32x, Dest: true},
	{Code: 0x07, Name: "move-object", Format: format.Form12x, Dest: true},
	{Code: 0x08, Name: "move-object/from16", Format: format.Form22x, Dest: true},
	{Code: 0x09, Name: "move-object/16", Format: format.Form32x, Dest: true},
	{Code: 0x0a, Name: "move-result", Format: format.Form11x, Dest: true},
	{Code: 0x0b, Name: "move-result-wide", Format: format.Form11x, Dest: true},
	{Code: 0x0c, Name: "move-result-object", Format: format.Form11x, Dest: true},
	{Code: 0x0d, Name: "move-exception", Format: format.Form11x, Dest: true},

	{Code: 0x0e, Name: "return-void", Format: format.Form10x},
	{Code: 0x0f, Name: "return", Format: format.Form11x},
	{Code: 0x10, Name: "return-wide", Format: format.Form11x},
	{Code: 0x11, Name: "return-object", Format: format.Form11x},

	{Code: 0x12, Name: "const/4", Format: format.Form11n, Dest: true},
	{Code: 0x13, Name: "const/16", Format: format.Form21s, Dest: true},
	{Code: 0x14, Name: "const", Format: format.Form31i, Dest: true},
	{Code: 0x15, Name: "const/high16", Format: format.Form21h, Dest: true},
	{Code: 0x16, Name: "const-wide/16", Format: format.Form21s, Dest: true, Wide: true},
	{Code: 0x17, Name: "const-wide/32", Format: format.Form31i, Dest: true, Wide: true},
	{Code: 0x18, Name: "const-wide", Format: format.Form51l, Dest: true, Wide: true},
	{Code: 0x19, Name: "const-wide/high16", Format: format.Form21h, Dest: true, Wide: true},
	{Code: 0x1a, Name: "const-string", Format: format.Form21c, Dest: true, Ref: insn.RefString},
	{Code: 0x1b, Name: "const-string/jumbo", Format: format.Form31c, Dest: true, Ref: insn.RefString},
	{Code: 0x1c, Name: "const-class", Format: format.Form21c, Dest: true, Ref: insn.RefType},

	{Code: 0x1d, Name: "monitor-enter", Format: format.Form11x},
	{Code: 0x1e, Name: "monitor-exit", Format: format.Form11x},
	{Code: 0x1f, Name: "check-cast", Format: format.Form21c, Ref: insn.RefType},
	{Code: 0x20, Name: "instance-of", Format: format.Form22c, Dest: true, Ref: insn.RefType},
	{Code: 0x21, Name: "array-length", Format: format.Form12x, Dest: true},
	{Code: 0x22, Name: "new-instance", Format: format.Form21c, Dest: true, Ref: insn.RefType},
	{Code: 0x23, Name: "new-array", Format: format.Form22c, Dest: true, Ref: insn.RefType},
	{Code: 0x24, Name: "filled-new-array", Format: format.Form35c, Ref: insn.RefType},
	{Code: 0x25, Name: "filled-new-array/range", Format: format.Form3rc, Ref: insn.RefType},
	{Code: 0x26, Name: "fill-array-data", Format: format.Form31t},
	{Code: 0x27, Name: "throw", Format: format.Form11x},

	{Code: 0x28, Name: "goto", Format: format.Form10t},
	{Code: 0x29, Name: "goto/16", Format: format.Form20t},
	{Code: 0x2a, Name: "goto/32", Format: format.Form30t},
	{Code: 0x2b, Name: "packed-switch", Format: format.Form31t},
	{Code: 0x2c, Name: "sparse-switch", Format: format.Form31t},
}

var (
	cmpOps  = []string{"cmpl-float", "cmpg-float", "cmpl-double", "cmpg-double", "cmp-long"}
	ifTest  = []string{"if-eq", "if-ne", "if-lt", "if-ge", "if-gt", "if-le"}
	ifTestz = []string{"if-eqz", "if-nez", "if-ltz", "if-gez", "if-gtz", "if-lez"}
	arrayOp = []string{"", "-wide", "-object", "-boolean", "-byte", "-char", "-short"}
	invokes = []string{"invoke-virtual", "invoke-super", "invoke-direct", "invoke-static", "invoke-interface"}

	unops = []string{
		"neg-int", "not-int", "neg-long", "not-long", "neg-float", "neg-double",
		"int-to-long", "int-to-float", "int-to-double",
		"long-to-int", "long-to-float", "long-to-double",
		"float-to-int", "float-to-long", "float-to-double",
		"double-to-int", "double-to-long", "double-to-float",
		"int-to-byte", "int-to-char", "int-to-short",
	}

	binops = []string{
		"add-int", "sub-int", "mul-int", "div-int", "rem-int", "and-int", "or-int", "xor-int", "shl-int", "shr-int", "ushr-int",
		"add-long", "sub-long", "mul-long", "div-long", "rem-long", "and-long", "or-long", "xor-long", "shl-long", "shr-long", "ushr-long",
		"add-float", "sub-float", "mul-float", "div-float", "rem-float",
		"add-double", "sub-double", "mul-double", "div-double", "rem-double",
	}

	lit16 = []string{
		"add-int/lit16", "rsub-int", "mul-int/lit16", "div-int/lit16",
		"rem-int/lit16", "and-int/lit16", "or-int/lit16", "xor-int/lit16",
	}

	lit8 = []string{
		"add-int/lit8", "rsub-int/lit8", "mul-int/lit8", "div-int/lit8",
		"rem-int/lit8", "and-int/lit8", "or-int/lit8", "xor-int/lit8",
		"shl-int/lit8", "shr-int/lit8", "ushr-int/lit8",
	}
)

// groups lists the multi-format families, narrowest op first.
var groups = map[string][]string{
	"move":             {"move", "move/from16", "move/16"},
	"move-wide":        {"move-wide", "move-wide/from16", "move-wide/16"},
	"move-object":      {"move-object", "move-object/from16", "move-object/16"},
	"const":            {"const/4", "const/16", "const/high16", "const"},
	"const-wide":       {"const-wide/16", "const-wide/high16", "const-wide/32", "const-wide"},
	"const-string":     {"const-string", "const-string/jumbo"},
	"goto":             {"goto", "goto/16", "goto/32"},
	"filled-new-array": {"filled-new-array", "filled-new-array/range"},
	"add-int/lit":      {"add-int/lit8", "add-int/lit16"},
	"rsub-int/lit":     {"rsub-int/lit8", "rsub-int"},
	"mul-int/lit":      {"mul-int/lit8", "mul-int/lit16"},
	"div-int/lit":      {"div-int/lit8", "div-int/lit16"},
	"rem-int/lit":      {"rem-int/lit8", "rem-int/lit16"},
	"and-int/lit":      {"and-int/lit8", "and-int/lit16"},
	"or-int/lit":       {"or-int/lit8", "or-int/lit16"},
	"xor-int/lit":      {"xor-int/lit8", "xor-int/lit16"},
}

// run appends consecutive opcodes starting at code.
func run(code byte, names []string, f format.Format, dest bool, ref insn.RefKind) {
	for _, name := range names {
		ops = append(ops, Op{Code: code, Name: name, Format: f, Dest: dest, Ref: ref})
		code++
	}
}

func init() {
	run(0x2d, cmpOps, format.Form23x, true, insn.RefNone)
	run(0x32, ifTest, format.Form22t, false, insn.RefNone)
	run(0x38, ifTestz, format.Form21t, false, insn.RefNone)

	for i, suffix := range arrayOp {
		run(0x44+byte(i), []string{"aget" + suffix}, format.Form23x, true, insn.RefNone)
		run(0x4b+byte(i), []string{"aput" + suffix}, format.Form23x, false, insn.RefNone)
		run(0x52+byte(i), []string{"iget" + suffix}, format.Form22c, true, insn.RefField)
		run(0x59+byte(i), []string{"iput" + suffix}, format.Form22c, false, insn.RefField)
		run(0x60+byte(i), []string{"sget" + suffix}, format.Form21c, true, insn.RefField)
		run(0x67+byte(i), []string{"sput" + suffix}, format.Form21c, false, insn.RefField)
	}

	for i, name := range invokes {
		run(0x6e+byte(i), []string{name}, format.Form35c, false, insn.RefMethod)
		run(0x74+byte(i), []string{name + "/range"}, format.Form3rc, false, insn.RefMethod)
		groups[name] = []string{name, name + "/range"}
	}

	run(0x7b, unops, format.Form12x, true, insn.RefNone)
	run(0x90, binops, format.Form23x, true, insn.RefNone)
	addr := make([]string, len(binops))
	for i, name := range binops {
		addr[i] = name + "/2addr"
	}
	run(0xb0, addr, format.Form12x, true, insn.RefNone)
	run(0xd0, lit16, format.Form22s, true, insn.RefNone)
	run(0xd8, lit8, format.Form22b, true, insn.RefNone)

	for _, op := range ops {
		if byCode[op.Code].Format != nil {
			panic("opcode: duplicate code " + op.Name)
		}
		byCode[op.Code] = op
		byName[op.Name] = op
		families[op.Name] = &Family{Name: op.Name, Ops: []Op{op}}
	}

	for name, members := range groups {
		fam := &Family{Name: name}
		for _, m := range members {
			op, ok := byName[m]
			if !ok {
				panic("opcode: unknown group member " + m)
			}
			fam.Ops = append(fam.Ops, op)
		}
		families[name] = fam
	}

	for name := range families {
		familyNames = append(familyNames, name)
	}
	sort.Strings(familyNames)
}
