package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Sentinel kinds carried by ParseError. Use errors.Is to test for them.
var (
	ErrEmpty        = errors.New("empty input")
	ErrUnrecognized = errors.New("unrecognized token")
	ErrTrailing     = errors.New("trailing content")
	ErrUnterminated = errors.New("unterminated structure")
	ErrMalformed    = errors.New("malformed structure")
	ErrEncoding     = errors.New("invalid utf-8")
)

// ParseError describes where the input stopped matching the grammar.
type ParseError struct {
	Kind   error
	Offset int
	Near   string
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("parser: %s at offset %d (near %s)", msg, e.Offset, e.Near)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Parse reads exactly one value from text. Whitespace may surround the value
// and separate tokens; anything else left over is an error. On failure no
// partial value is returned.
func Parse(text string) (Value, error) {
	p := &parser{src: text}

	if !utf8.ValidString(text) {
		off := 0
		for off < len(text) {
			r, size := utf8.DecodeRuneInString(text[off:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			off += size
		}
		return nil, p.fail(ErrEncoding, off, "")
	}

	p.skipSpace()
	if p.eof() {
		return nil, p.fail(ErrEmpty, p.pos, "")
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.fail(ErrTrailing, p.pos, "")
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) fail(kind error, off int, detail string) *ParseError {
	return &ParseError{Kind: kind, Offset: off, Near: quoteNear(p.src, off), Detail: detail}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// value dispatches on the first byte; each alternative has a distinct one.
func (p *parser) value() (Value, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.fail(ErrUnterminated, p.pos, "expected a value")
	}
	switch c := p.peek(); {
	case c == '-' || isDigit(c):
		return p.number()
	case c == '"':
		return p.text()
	case c == '[':
		return p.list()
	case c == '{':
		return p.mapping()
	case c == ']' || c == '}' || c == ',':
		// Structural but out of place: a member is missing.
		return nil, p.fail(ErrMalformed, p.pos, "expected a value")
	default:
		return nil, p.fail(ErrUnrecognized, p.pos, "")
	}
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digits := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == digits {
		return nil, p.fail(ErrUnrecognized, start, "sign without digits")
	}
	n, ok := new(big.Int).SetString(p.src[start:p.pos], 10)
	if !ok {
		return nil, p.fail(ErrUnrecognized, start, "bad integer")
	}
	return Number{Int: n}, nil
}

func (p *parser) text() (Value, error) {
	start := p.pos
	p.pos++ // opening quote

	var b strings.Builder
	for {
		if p.eof() {
			return nil, p.fail(ErrUnterminated, start, "string not closed")
		}
		c := p.peek()
		switch {
		case c == '"':
			p.pos++
			return Text(b.String()), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return nil, err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

// escape consumes a backslash sequence. Sequences the service is not known
// to send are kept verbatim, backslash included.
func (p *parser) escape(b *strings.Builder) error {
	start := p.pos
	p.pos++ // backslash
	if p.eof() {
		return p.fail(ErrUnterminated, start, "string not closed")
	}
	c := p.peek()
	switch c {
	case 't':
		b.WriteByte('\t')
	case '"':
		b.WriteByte('"')
	case '\\':
		b.WriteByte('\\')
	case '/':
		b.WriteByte('/')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		r, ok := p.unicodeEscape()
		if !ok {
			return p.fail(ErrMalformed, start, "bad \\u escape")
		}
		b.WriteRune(r)
		return nil
	default:
		b.WriteByte('\\')
		return nil
	}
	p.pos++
	return nil
}

// unicodeEscape reads \uXXXX, joining a following low surrogate if present.
// On entry p.pos is at the 'u'.
func (p *parser) unicodeEscape() (rune, bool) {
	r, ok := p.hex4(p.pos + 1)
	if !ok {
		return 0, false
	}
	p.pos += 5
	if !utf16.IsSurrogate(r) {
		return r, true
	}
	if strings.HasPrefix(p.src[p.pos:], `\u`) {
		if lo, ok := p.hex4(p.pos + 2); ok {
			if dec := utf16.DecodeRune(r, lo); dec != utf8.RuneError {
				p.pos += 6
				return dec, true
			}
		}
	}
	return utf8.RuneError, true
}

func (p *parser) hex4(off int) (rune, bool) {
	if off+4 > len(p.src) {
		return 0, false
	}
	n, err := strconv.ParseUint(p.src[off:off+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

func (p *parser) list() (Value, error) {
	start := p.pos
	p.pos++ // [

	items := List{}
	p.skipSpace()
	if !p.eof() && p.peek() == ']' {
		p.pos++
		return items, nil
	}

	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		done, err := p.separator(start, ']', "list")
		if err != nil {
			return nil, err
		}
		if done {
			return items, nil
		}
	}
}

func (p *parser) mapping() (Value, error) {
	start := p.pos
	p.pos++ // {

	pairs := Mapping{}
	p.skipSpace()
	if !p.eof() && p.peek() == '}' {
		p.pos++
		return pairs, nil
	}

	for {
		keyAt := p.pos
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, ok := k.(Key)
		if !ok {
			return nil, p.fail(ErrMalformed, keyAt, "mapping key must be a number or string")
		}

		p.skipSpace()
		if p.eof() {
			return nil, p.fail(ErrUnterminated, start, "mapping not closed")
		}
		if p.peek() != ':' {
			return nil, p.fail(ErrMalformed, p.pos, "expected ':' after mapping key")
		}
		p.pos++

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: v})

		done, err := p.separator(start, '}', "mapping")
		if err != nil {
			return nil, err
		}
		if done {
			return pairs, nil
		}
	}
}

// separator consumes either ',' (more members follow) or the closing byte.
func (p *parser) separator(start int, closing byte, what string) (bool, error) {
	p.skipSpace()
	if p.eof() {
		return false, p.fail(ErrUnterminated, start, what+" not closed")
	}
	switch p.peek() {
	case ',':
		p.pos++
		return false, nil
	case closing:
		p.pos++
		return true, nil
	default:
		return false, p.fail(ErrMalformed, p.pos, fmt.Sprintf("expected ',' or %q in %s", closing, what))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
