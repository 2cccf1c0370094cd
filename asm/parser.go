package asm

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/dexasm/bitfit"
	"github.com/wippyai/dexasm/errors"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/opcode"
)

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ tokenType) (*token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseParse, "expected %v, got end of line", typ)
	}
	if t.typ != typ {
		return nil, errors.InvalidInput(errors.PhaseParse, "column %d: expected %v, got %q", t.col, typ, t.value)
	}
	return t, nil
}

// parseInstruction parses "mnemonic operand, operand, ...".
func (p *parser) parseInstruction() (*insn.Instruction, error) {
	head, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	family := head.value
	fam, ok := opcode.Lookup(family)
	if !ok {
		return nil, errors.UnknownOpcode(errors.PhaseParse, family)
	}

	var (
		regs     []insn.Reg
		cst      *insn.Constant
		operands int
	)
	for ; p.peek() != nil; operands++ {
		if operands > 0 {
			comma, err := p.expect(tokComma)
			if err != nil {
				return nil, err
			}
			if p.peek() == nil {
				return nil, errors.InvalidInput(errors.PhaseParse, "column %d: trailing comma", comma.col)
			}
		}
		if cst != nil {
			return nil, errors.InvalidInput(errors.PhaseParse, "column %d: operand after the constant", p.peek().col)
		}

		t := p.peek()
		switch t.typ {
		case tokLBrace:
			list, err := p.parseRegList()
			if err != nil {
				return nil, err
			}
			regs = append(regs, list...)
		case tokIdent:
			if r, ok := parseReg(t.value); ok {
				p.next()
				regs = append(regs, insn.Src(r))
				continue
			}
			c, err := p.parseReference()
			if err != nil {
				return nil, err
			}
			cst = &c
		case tokHash:
			c, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			cst = &c
		case tokNumber:
			c, err := p.parseBranch()
			if err != nil {
				return nil, err
			}
			cst = &c
		default:
			return nil, errors.InvalidInput(errors.PhaseParse, "column %d: unexpected %q", t.col, t.value)
		}
	}

	if len(regs) > 0 && fam.Ops[0].Dest {
		regs[0].Role = insn.Destination
	}
	return insn.New(family, regs, cst), nil
}

// parseRegList parses "{v1, v2}" or "{v0 .. v4}".
func (p *parser) parseRegList() ([]insn.Reg, error) {
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var regs []insn.Reg
	if t := p.peek(); t != nil && t.typ == tokRBrace {
		p.next()
		return regs, nil
	}

	first, err := p.expectReg()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t != nil && t.typ == tokRange {
		p.next()
		last, err := p.expectReg()
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, errors.InvalidInput(errors.PhaseParse, "register range v%d .. v%d is reversed", first, last)
		}
		for r := first; r <= last; r++ {
			regs = append(regs, insn.Src(r))
		}
		if _, err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
		return regs, nil
	}

	regs = append(regs, insn.Src(first))
	for {
		t := p.next()
		if t == nil {
			return nil, errors.InvalidInput(errors.PhaseParse, "unterminated register list")
		}
		if t.typ == tokRBrace {
			return regs, nil
		}
		if t.typ != tokComma {
			return nil, errors.InvalidInput(errors.PhaseParse, "column %d: expected ',' or '}', got %q", t.col, t.value)
		}
		r, err := p.expectReg()
		if err != nil {
			return nil, err
		}
		regs = append(regs, insn.Src(r))
	}
}

func (p *parser) expectReg() (int, error) {
	t, err := p.expect(tokIdent)
	if err != nil {
		return 0, err
	}
	r, ok := parseReg(t.value)
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseParse, "column %d: expected register, got %q", t.col, t.value)
	}
	return r, nil
}

// parseReference parses "kind@index" with an optional quoted name.
func (p *parser) parseReference() (insn.Constant, error) {
	t := p.next()
	kind, index, ok := strings.Cut(t.value, "@")
	if !ok {
		return insn.Constant{}, errors.InvalidInput(errors.PhaseParse, "column %d: expected operand, got %q", t.col, t.value)
	}
	rk, ok := insn.ParseRefKind(kind)
	if !ok {
		return insn.Constant{}, errors.InvalidInput(errors.PhaseParse, "column %d: unknown pool %q", t.col, kind)
	}
	v, err := strconv.ParseUint(index, 0, 32)
	if err != nil {
		return insn.Constant{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Cause(err).
			Value(index).
			Detail("column %d: bad pool index %q", t.col, index).
			Build()
	}

	name := ""
	if n := p.peek(); n != nil && n.typ == tokString {
		p.next()
		name = n.value
	}
	return insn.Ref(rk, uint32(v), name), nil
}

// parseLiteral parses "#N", "#NL", "#int N", "#long N", "#float F" and "#double F".
func (p *parser) parseLiteral() (insn.Constant, error) {
	p.next()
	t := p.next()
	if t == nil {
		return insn.Constant{}, errors.InvalidInput(errors.PhaseParse, "expected literal after '#'")
	}

	switch {
	case t.typ == tokIdent && (t.value == "int" || t.value == "long" || t.value == "float" || t.value == "double"):
		n, err := p.expect(tokNumber)
		if err != nil {
			return insn.Constant{}, err
		}
		return typedLiteral(t.value, n)
	case t.typ == tokNumber:
		s := num(t.value)
		if strings.HasSuffix(s, "L") || strings.HasSuffix(s, "l") {
			v, err := parseInt(s[:len(s)-1], t.col)
			if err != nil {
				return insn.Constant{}, err
			}
			return insn.Long(v), nil
		}
		v, err := parseInt(s, t.col)
		if err != nil {
			return insn.Constant{}, err
		}
		if bitfit.SignedFitsInInt(v) {
			return insn.Int(int32(v)), nil
		}
		return insn.Long(v), nil
	}
	return insn.Constant{}, errors.InvalidInput(errors.PhaseParse, "column %d: bad literal %q", t.col, t.value)
}

func typedLiteral(kind string, t *token) (insn.Constant, error) {
	s := num(t.value)
	switch kind {
	case "float", "double":
		f, err := strconv.ParseFloat(strings.TrimRight(s, "fFdD"), 64)
		if err != nil {
			return insn.Constant{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Cause(err).
				Value(t.value).
				Detail("column %d: bad %s literal %q", t.col, kind, t.value).
				Build()
		}
		if kind == "float" {
			return insn.Float32(float32(f)), nil
		}
		return insn.Float64(f), nil
	case "long":
		v, err := parseInt(s, t.col)
		if err != nil {
			return insn.Constant{}, err
		}
		return insn.Long(v), nil
	}

	v, err := parseInt(s, t.col)
	if err != nil {
		return insn.Constant{}, err
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return insn.Constant{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(v).
			Detail("column %d: %d does not fit an int", t.col, v).
			Build()
	}
	return insn.Int(int32(v)), nil
}

func (p *parser) parseBranch() (insn.Constant, error) {
	t := p.next()
	if t.value[0] != '+' && t.value[0] != '-' {
		return insn.Constant{}, errors.InvalidInput(errors.PhaseParse,
			"column %d: branch offsets are signed, e.g. +%s; literals take '#'", t.col, t.value)
	}
	v, err := parseInt(t.value, t.col)
	if err != nil {
		return insn.Constant{}, err
	}
	if !bitfit.SignedFitsInInt(v) {
		return insn.Constant{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(v).
			Detail("column %d: branch offset %d does not fit 32 bits", t.col, v).
			Build()
	}
	return insn.Branch(int32(v)), nil
}

// parseReg accepts "v<index>".
func parseReg(s string) (int, bool) {
	if len(s) < 2 || s[0] != 'v' {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || s[1] == '+' || s[1] == '-' {
		return 0, false
	}
	return n, true
}

func num(s string) string {
	return strings.ReplaceAll(s, "_", "")
}

func parseInt(s string, col int) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return v, nil
	}
	// Hex bit patterns above MaxInt64, e.g. 0xffffffffffffffff.
	if u, uerr := strconv.ParseUint(s, 0, 64); uerr == nil {
		return int64(u), nil
	}
	return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Cause(err).
		Value(s).
		Detail("column %d: bad number %q", col, s).
		Build()
}

func errUnexpected(s string, col int) error {
	return errors.InvalidInput(errors.PhaseParse, "column %d: unexpected %q", col, s)
}

func errUnterminated(col int) error {
	return errors.InvalidInput(errors.PhaseParse, "column %d: unterminated string", col)
}
