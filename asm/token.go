package asm

import (
	"unicode"
)

type tokenType int

const (
	tokIdent tokenType = iota
	tokNumber
	tokString
	tokComma
	tokLBrace
	tokRBrace
	tokRange
	tokHash
)

func (t tokenType) String() string {
	switch t {
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokComma:
		return "','"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokRange:
		return "'..'"
	case tokHash:
		return "'#'"
	}
	return "unknown"
}

type token struct {
	value string
	typ   tokenType
	col   int
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '/' || r == '@' || r == '_' || r == '$'
}

// tokenize splits one source line. Comments start at ';' or "//"; a line
// whose first non-blank character is '#' is a comment as well.
func tokenize(line string) ([]token, error) {
	var tokens []token
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsSpace(r) {
			continue
		}
		if r == ';' || (r == '/' && i+1 < len(runes) && runes[i+1] == '/') {
			break
		}
		if r == '#' && len(tokens) == 0 {
			break
		}

		switch r {
		case ',':
			tokens = append(tokens, token{",", tokComma, i + 1})
			continue
		case '{':
			tokens = append(tokens, token{"{", tokLBrace, i + 1})
			continue
		case '}':
			tokens = append(tokens, token{"}", tokRBrace, i + 1})
			continue
		case '#':
			tokens = append(tokens, token{"#", tokHash, i + 1})
			continue
		}

		if r == '.' && i+1 < len(runes) && runes[i+1] == '.' {
			tokens = append(tokens, token{"..", tokRange, i + 1})
			i++
			continue
		}

		// Quoted symbolic name
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			if i >= len(runes) {
				return nil, errUnterminated(start)
			}
			tokens = append(tokens, token{string(runes[start:i]), tokString, start})
			continue
		}

		// Number, optionally signed
		if unicode.IsDigit(r) || ((r == '-' || r == '+') && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			i++
			for i < len(runes) {
				c := runes[i]
				if c == '.' && i+1 < len(runes) && runes[i+1] == '.' {
					break
				}
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '.' || c == '_' ||
					((c == '-' || c == '+') && (runes[i-1] == 'e' || runes[i-1] == 'E')) {
					i++
					continue
				}
				break
			}
			tokens = append(tokens, token{string(runes[start:i]), tokNumber, start + 1})
			i--
			continue
		}

		if isIdentRune(r) {
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			tokens = append(tokens, token{string(runes[start:i]), tokIdent, start + 1})
			i--
			continue
		}

		return nil, errUnexpected(string(r), i+1)
	}

	return tokens, nil
}
