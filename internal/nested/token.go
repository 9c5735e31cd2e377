package nested

import "fmt"

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenString
	tokenColon
	tokenLBrace
	tokenRBrace
	tokenComma
	tokenSemi
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenColon:
		return ":"
	case tokenLBrace:
		return "{"
	case tokenRBrace:
		return "}"
	case tokenComma:
		return ","
	case tokenSemi:
		return ";"
	}
	return "unknown"
}

type token struct {
	typ tokenType
	val string
	pos int // byte offset in the input
}

// lexer tokenizes the restricted nested-document grammar: identifiers,
// single- or double-quoted string literals, braces, colons, commas and
// semicolons. Line comments (// ...) are skipped.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]
	switch c {
	case '{':
		l.pos++
		return token{typ: tokenLBrace, pos: start}, nil
	case '}':
		l.pos++
		return token{typ: tokenRBrace, pos: start}, nil
	case ':':
		l.pos++
		return token{typ: tokenColon, pos: start}, nil
	case ',':
		l.pos++
		return token{typ: tokenComma, pos: start}, nil
	case ';':
		l.pos++
		return token{typ: tokenSemi, pos: start}, nil
	case '\'', '"':
		return l.scanString(c)
	}

	if isIdentChar(c) {
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}
		return token{typ: tokenIdent, val: l.input[start:l.pos], pos: start}, nil
	}

	return token{}, fmt.Errorf("unexpected character %q at offset %d", c, start)
}

// scanString reads a quoted literal, keeping backslash escape sequences
// verbatim: values travel through the pipeline in their escaped form.
func (l *lexer) scanString(quote byte) (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var val []byte
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			val = append(val, c, l.input[l.pos+1])
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			return token{typ: tokenString, val: string(val), pos: start}, nil
		}
		val = append(val, c)
		l.pos++
	}
	return token{}, fmt.Errorf("unterminated string literal at offset %d", start)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '$'
}
