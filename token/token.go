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

// Package token defines the lexical vocabulary of PDX script and a
// pushback cursor over a token stream.
package token

import "fmt"

const (
	EOF     Kind = iota // End of input.
	Integer             // A run of digits, optionally sign-prefixed.
	Eq                  // The = punctuation.
	Open                // The { punctuation.
	Close               // The } punctuation.
	Str                 // A bare string.
	QStr                // A quoted string, delivered with quotes stripped.
	Date                // A year.month.day literal.
	QDate               // A quoted date literal, quotes stripped.
	Comment             // A # comment, up to but excluding the newline.
	Decimal             // A decimal literal with a radix point.

	// Unrecognized marks input that matched no token pattern. It is
	// always fatal at the point the parser observes it.
	Unrecognized
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Integer:
		return "INTEGER"
	case Eq:
		return "EQ"
	case Open:
		return "OPEN"
	case Close:
		return "CLOSE"
	case Str:
		return "STR"
	case QStr:
		return "QSTR"
	case Date:
		return "DATE"
	case QDate:
		return "QDATE"
	case Comment:
		return "COMMENT"
	case Decimal:
		return "DECIMAL"
	case Unrecognized:
		return "FAIL"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}

// Token is a single lexical element of a script file.
//
// Text is only guaranteed to remain valid until the next token is
// pulled from the [Stream] that produced it; consumers that hold a
// token across a pull must copy the text out first.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Stream is a pull source of tokens, such as a scanner over a script
// file. The final token of a well-formed stream has kind [EOF];
// implementations keep returning it once the input is exhausted.
type Stream interface {
	Next() (Token, error)
}
