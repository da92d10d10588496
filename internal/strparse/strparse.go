// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package strparse provides facilities for parsing strings, intended for use in
// tests and debug input.
package strparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Parser is a helper used to implement parsing of strings, like the debug
// format of draft values.
//
// It takes a string and splits it into tokens. Tokens are separated by
// whitespace; in addition user-specified separators are also always separate
// tokens, and a double-quoted Go string literal is always a single token. For
// example, when passed the separators `{}:,` the string `{a: "x y", b: 1}`
// results in tokens `{`, `a`, `:`, `"x y"`, `,`, `b`, `:`, `1`, `}`.
//
// All Parser methods throw panics instead of returning errors. The code
// that uses a Parser can recover them and convert them to errors.
type Parser struct {
	original  string
	tokens    []token
	lastToken token
}

type token struct {
	tok    string
	offset int
}

// MakeParser constructs a new Parser that converts any instance of the runes
// contained in [separators] into separate tokens, and consumes the provided
// input string.
func MakeParser(separators string, input string) Parser {
	p := Parser{original: input}

	s := input
	off := 0
	for len(s) > 0 {
		nonWhiteSpacePos := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
		switch nonWhiteSpacePos {
		case -1:
			// Only whitespace.
			off += len(s)
			s = s[len(s):]
		case 0:
			n := tokenLen(s, separators)
			p.tokens = append(p.tokens, token{tok: s[:n], offset: off})
			off += n
			s = s[n:]
		default:
			// Whitespace.
			off += nonWhiteSpacePos
			s = s[nonWhiteSpacePos:]
		}
	}
	return p
}

// tokenLen returns the length of the token at the start of s, which does not
// begin with whitespace.
func tokenLen(s string, separators string) int {
	if s[0] == '"' {
		// Scan to the closing quote, skipping escaped characters. An
		// unterminated literal extends to the end of the input and fails to
		// unquote later.
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '"':
				return i + 1
			}
		}
		return len(s)
	}
	if strings.IndexByte(separators, s[0]) >= 0 {
		return 1
	}
	n := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || strings.ContainsRune(separators, r)
	})
	if n == -1 {
		return len(s)
	}
	return n
}

// Done returns true if there are no more tokens.
func (p *Parser) Done() bool {
	return len(p.tokens) == 0
}

// Offset returns the offset of the next token.
func (p *Parser) Offset() int {
	if p.Done() {
		return len(p.original)
	}
	return p.tokens[0].offset
}

// Peek returns the next token, without consuming the token. Returns "" if there
// are no more tokens.
func (p *Parser) Peek() string {
	if p.Done() {
		p.lastToken = token{}
		return ""
	}
	p.lastToken = p.tokens[0]
	return p.tokens[0].tok
}

// Next returns the next token, or "" if there are no more tokens.
func (p *Parser) Next() string {
	res := p.Peek()
	if res != "" {
		p.tokens = p.tokens[1:]
	}
	return res
}

// Remaining returns all the remaining tokens, separated by spaces.
func (p *Parser) Remaining() string {
	var buf strings.Builder
	for _, tok := range p.tokens {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(tok.tok)
	}
	p.tokens = nil
	return buf.String()
}

// Expect consumes the next tokens, verifying that they exactly match the
// arguments.
func (p *Parser) Expect(tokens ...string) {
	for _, tok := range tokens {
		if res := p.Next(); res != tok {
			p.Errf("expected %q, got %q", tok, res)
		}
	}
}

// Int parses the next token as an integer.
func (p *Parser) Int() int {
	x, err := strconv.Atoi(p.Next())
	if err != nil {
		p.Errf("cannot parse number: %v", err)
	}
	return x
}

// IsQuoted reports whether tok is a double-quoted string literal.
func IsQuoted(tok string) bool {
	return len(tok) > 0 && tok[0] == '"'
}

// Quoted parses the next token as a double-quoted Go string literal.
func (p *Parser) Quoted() string {
	tok := p.Next()
	if !IsQuoted(tok) {
		p.Errf("expected quoted string")
	}
	s, err := strconv.Unquote(tok)
	if err != nil {
		p.Errf("cannot unquote: %v", err)
	}
	return s
}

// Scalar parses the next token as a scalar: nil, true, false, an int, a
// float64 or a quoted string. Numbers without a fraction or exponent are
// ints.
func (p *Parser) Scalar() any {
	tok := p.Peek()
	switch {
	case tok == "":
		p.Errf("expected value, found end of input")
	case IsQuoted(tok):
		return p.Quoted()
	case tok == "nil":
		p.Next()
		return nil
	case tok == "true" || tok == "false":
		p.Next()
		return tok == "true"
	}
	p.Next()
	if x, err := strconv.Atoi(tok); err == nil {
		return x
	}
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		p.Errf("cannot parse scalar")
	}
	return x
}

// Errf panics with an error which includes the original string and the last
// token.
func (p *Parser) Errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(errors.Errorf("error parsing %q at token %q: %s", p.original, p.lastToken.tok, msg))
}
