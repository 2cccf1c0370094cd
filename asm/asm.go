// Package asm parses the text form of dex instructions.
//
// One instruction per line:
//
//	add-int/lit16 v3, v5, #100
//	const-wide v0, #long -1
//	const-string v1, string@12 "hello"
//	if-eqz v2, -4
//	invoke-static {v0 .. v4}, method@7
//
// Literals take '#', optionally typed (#int, #long, #float, #double) or with
// an L suffix. Branch offsets are signed code-unit counts. Comments start at
// ';' or "//", and a line starting with '#' is a comment. The register in
// slot 0 is a destination when the opcode family writes it.
package asm

import (
	"bufio"
	"strings"

	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/insn"
)

// Parse parses src into instructions in source order. Errors carry the
// 1-based line number.
func Parse(src string) ([]*insn.Instruction, error) {
	var out []*insn.Instruction
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	for line := 1; sc.Scan(); line++ {
		ins, err := ParseLine(sc.Text())
		if err != nil {
			return nil, atLine(err, line)
		}
		if ins != nil {
			out = append(out, ins)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).Cause(err).Build()
	}
	return out, nil
}

// ParseLine parses a single line. Blank and comment lines yield nil.
func ParseLine(s string) (*insn.Instruction, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	p := &parser{tokens: tokens}
	return p.parseInstruction()
}

func atLine(err error, line int) error {
	if e, ok := err.(*errors.Error); ok {
		e.Line = line
		return e
	}
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).Line(line).Cause(err).Build()
}
