// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import (
	"strconv"
	"strings"
)

// parseValue implements the value() built-in's partial-parse contract:
// on a full-string parse failure it still returns whatever the
// longest valid leading prefix evaluates to, rather than failing
// outright (e.g. value("3 apples") is 3, and a bare word such as
// value("abc") is the symbol #abc). Input with no parseable prefix at
// all, such as "" or "?", is returned as the string itself.
func parseValue(s string) Datum {
	p := &valueParser{s: s}
	p.skipSpace()
	if p.pos >= len(p.s) {
		return Str(s)
	}
	v, ok := p.parseOne()
	if !ok {
		return Str(s)
	}
	return v
}

type valueParser struct {
	s   string
	pos int
}

func (p *valueParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *valueParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *valueParser) parseOne() (Datum, bool) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return Void(), false
	}
	switch c := p.peek(); {
	case c == '"':
		return p.parseQuotedString()
	case c == '#':
		return p.parseSymbol()
	case c == '[':
		return p.parseBracket()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseIdentifier()
	}
}

func (p *valueParser) parseQuotedString() (Datum, bool) {
	p.pos++ // opening quote
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != '"' {
		p.pos++
	}
	str := p.s[start:p.pos]
	if p.pos < len(p.s) {
		p.pos++ // closing quote
	}
	return Str(str), true
}

func (p *valueParser) parseSymbol() (Datum, bool) {
	p.pos++ // '#'
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Void(), false
	}
	return Symbol(p.s[start:p.pos]), true
}

func (p *valueParser) parseNumber() (Datum, bool) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	digitsBefore := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	isFloat := false
	if p.pos == digitsBefore && p.peek() != '.' {
		p.pos = start
		return Void(), false
	}
	if p.peek() == '.' {
		isFloat = true
		p.pos++
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
	}
	text := p.s[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Void(), false
		}
		return Float(f), true
	}
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Void(), false
	}
	return Int(int32(n)), true
}

func (p *valueParser) parseIdentifier() (Datum, bool) {
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Void(), false
	}
	word := p.s[start:p.pos]
	switch strings.ToUpper(word) {
	case "VOID":
		return Void(), true
	case "TRUE":
		return Int(1), true
	case "FALSE":
		return Int(0), true
	}
	return Symbol(word), true
}

// parseBracket parses either a list ([a, b, c]) or a property list
// ([k: v, ...] or the empty proplist [:]).
func (p *valueParser) parseBracket() (Datum, bool) {
	p.pos++ // '['
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
		}
		return NewPropList(), true
	}
	if p.peek() == ']' {
		p.pos++
		return List(), true
	}

	first, ok := p.parseOne()
	if !ok {
		return Void(), false
	}
	p.skipSpace()
	if p.peek() == ':' {
		pl := NewPropList()
		p.pos++
		val, ok := p.parseOne()
		if !ok {
			return Void(), false
		}
		pl.PropAdd(first.ToStr(), val)
		for {
			p.skipSpace()
			if p.peek() != ',' {
				break
			}
			p.pos++
			p.skipSpace()
			key, ok := p.parseOne()
			if !ok {
				break
			}
			p.skipSpace()
			if p.peek() != ':' {
				break
			}
			p.pos++
			v, ok := p.parseOne()
			if !ok {
				break
			}
			pl.PropAdd(key.ToStr(), v)
		}
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
		}
		return pl, true
	}

	items := []Datum{first}
	for {
		p.skipSpace()
		if p.peek() != ',' {
			break
		}
		p.pos++
		v, ok := p.parseOne()
		if !ok {
			break
		}
		items = append(items, v)
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
	}
	return List(items...), true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
