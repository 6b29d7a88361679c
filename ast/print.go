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

package ast

import (
	"io"
	"strings"
)

// indentStep is the number of spaces per nesting level when printing.
const indentStep = 4

// Print writes the block's statements to w as script source, one
// statement per line, starting at the given indent column. Printing a
// parsed tree reproduces its meaning, not its bytes: comments and
// original whitespace are gone, and scalars are re-rendered.
func (b *Block) Print(w io.Writer, indent int) error {
	for _, s := range b.Statements {
		if err := s.Print(w, indent); err != nil {
			return err
		}
	}
	return nil
}

// Print writes the statement to w as a single indented line, followed
// by a newline. Block values span additional lines.
func (s Statement) Print(w io.Writer, indent int) error {
	if err := writeString(w, strings.Repeat(" ", indent)); err != nil {
		return err
	}
	if err := printValue(w, s.Key, indent); err != nil {
		return err
	}
	if err := writeString(w, " = "); err != nil {
		return err
	}
	if err := printValue(w, s.Value, indent); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func printValue(w io.Writer, v Value, indent int) error {
	switch v := v.(type) {
	case String, Integer, Decimal, Date:
		return writeString(w, v.String())
	case *Block:
		if err := writeString(w, "{\n"); err != nil {
			return err
		}
		if err := v.Print(w, indent+indentStep); err != nil {
			return err
		}
		return writeString(w, strings.Repeat(" ", indent)+"}")
	case *List:
		if err := writeString(w, "{ "); err != nil {
			return err
		}
		for _, e := range v.Values {
			if err := printValue(w, e, indent); err != nil {
				return err
			}
			if err := writeString(w, " "); err != nil {
				return err
			}
		}
		return writeString(w, "}")
	default:
		panic("pdxscript/ast: unknown value type")
	}
}

// needsQuotes reports whether s must be quoted to survive a re-parse.
// Not the only time the game tolerates quotes, but the set the
// original tooling quotes on.
func needsQuotes(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\xa0', '\r', '\n', '\'':
			return true
		}
	}
	return false
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
