// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"strings"

	"github.com/cktools/pdxscript/token"
)

// lexer is a byte-oriented scanner over whole-file script contents.
// Script files are Latin-1/ASCII; the lexer never decodes runes, it
// classifies bytes. It implements [token.Stream].
type lexer struct {
	data string
	pos  int
	line int
}

func newLexer(data []byte) *lexer {
	return &lexer{data: string(data), line: 1}
}

// isSpace matters beyond ASCII: game files are cp1252 and use 0xA0
// (NBSP) as a space.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\xa0':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// endsBareWord reports whether b terminates a bare (unquoted) token.
func endsBareWord(b byte) bool {
	return isSpace(b) || b == '{' || b == '}' || b == '=' || b == '#' || b == '"'
}

// Next implements [token.Stream]. Token text aliases the file
// contents, which the lexer retains, so it stays valid for the life
// of the lexer.
func (l *lexer) Next() (token.Token, error) {
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		switch {
		case b == '\n':
			l.line++
			l.pos++
		case isSpace(b):
			l.pos++
		case b == '#':
			return l.comment(), nil
		case b == '{':
			l.pos++
			return token.Token{Kind: token.Open, Text: "{", Line: l.line}, nil
		case b == '}':
			l.pos++
			return token.Token{Kind: token.Close, Text: "}", Line: l.line}, nil
		case b == '=':
			l.pos++
			return token.Token{Kind: token.Eq, Text: "=", Line: l.line}, nil
		case b == '"':
			return l.quoted(), nil
		case b < ' ':
			// Stray control character; nothing can start with it.
			start := l.pos
			l.pos++
			return token.Token{Kind: token.Unrecognized, Text: l.data[start:l.pos], Line: l.line}, nil
		default:
			return l.bareWord(), nil
		}
	}
	return token.Token{Kind: token.EOF, Line: l.line}, nil
}

func (l *lexer) comment() token.Token {
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '\n' {
		l.pos++
	}
	text := strings.TrimSuffix(l.data[start:l.pos], "\r")
	return token.Token{Kind: token.Comment, Text: text, Line: l.line}
}

// quoted scans a "..." token. The delimiters are stripped and a
// trailing \r inside the quotes is dropped; the closing quote must
// appear on the same line.
func (l *lexer) quoted() token.Token {
	line := l.line
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '"':
			text := strings.TrimSuffix(l.data[start+1:l.pos], "\r")
			l.pos++
			kind := token.QStr
			if classifyBare(text) == token.Date {
				kind = token.QDate
			}
			return token.Token{Kind: kind, Text: text, Line: line}
		case '\n':
			// Unterminated; surface everything up to the newline.
			return token.Token{Kind: token.Unrecognized, Text: l.data[start:l.pos], Line: line}
		default:
			l.pos++
		}
	}
	return token.Token{Kind: token.Unrecognized, Text: l.data[start:l.pos], Line: line}
}

func (l *lexer) bareWord() token.Token {
	start := l.pos
	for l.pos < len(l.data) && !endsBareWord(l.data[l.pos]) {
		l.pos++
	}
	text := l.data[start:l.pos]
	return token.Token{Kind: classifyBare(text), Text: text, Line: l.line}
}

// classifyBare decides which literal pattern a bare word matches:
//
//	INTEGER  -?[0-9]+
//	DECIMAL  -?[0-9]+\.[0-9]*
//	DATE     [0-9]+\.[0-9]+\.[0-9]+
//
// Anything else is a plain string.
func classifyBare(s string) token.Kind {
	if s == "" {
		return token.Str
	}
	i := 0
	signed := s[0] == '-'
	if signed {
		i++
	}

	run := func() int {
		n := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			n++
		}
		return n
	}

	if run() == 0 {
		return token.Str
	}
	if i == len(s) {
		return token.Integer
	}
	if s[i] != '.' {
		return token.Str
	}
	i++

	second := run()
	if i == len(s) {
		return token.Decimal // fractional part may be empty
	}
	if s[i] != '.' || second == 0 || signed {
		return token.Str
	}
	i++

	if run() > 0 && i == len(s) {
		return token.Date
	}
	return token.Str
}
