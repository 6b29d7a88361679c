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

// Package ast defines the parse tree produced for PDX script: typed
// scalar values, key/value statements, and the recursive block and
// list containers.
//
// The tree is construction-only data. Once a parse returns, nothing
// mutates it; callers traverse it or print it back out. Every node
// owns its children exclusively and the tree is strictly
// hierarchical, with no sharing between siblings or back-references.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SourcePos identifies a location in a script file.
type SourcePos struct {
	Filename string
	Line     int
}

// String implements [fmt.Stringer].
func (p SourcePos) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// Value is a single typed script value.
//
// Value is a closed interface: the only implementations are [String],
// [Integer], [Decimal], [Date], [*Block], and [*List]. A type switch
// over those six cases is exhaustive.
type Value interface {
	fmt.Stringer

	// Sealed. Restricts Value to types in this package.
	isValue()
}

// String is a script string. Strings produced by a parse are interned
// in the parser's string pool and share its lifetime; see
// [Block.Detach] for outliving the parser.
type String string

func (String) isValue() {}

// String implements [fmt.Stringer], rendering the string as script
// source: quoted if it contains whitespace or an apostrophe, bare
// otherwise.
func (s String) String() string {
	if needsQuotes(string(s)) {
		return `"` + string(s) + `"`
	}
	return string(s)
}

// Integer is a script integer.
type Integer int32

func (Integer) isValue() {}

// String implements [fmt.Stringer].
func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Statement is a single key = value pair. The grammar restricts Key
// to [String], [Date], or [Integer]. A statement exclusively owns
// both of its halves.
type Statement struct {
	Key   Value
	Value Value
}

// KeyEq reports whether the statement's key is the string key.
func (s Statement) KeyEq(key string) bool {
	k, ok := s.Key.(String)
	return ok && string(k) == key
}

// Block is an ordered sequence of statements, the script's recursive
// structural unit. Statement order is semantically meaningful and
// duplicate keys are legal; both are preserved exactly as parsed.
type Block struct {
	Statements []Statement
}

func (*Block) isValue() {}

// String implements [fmt.Stringer], rendering the block as script
// source including its surrounding braces.
func (b *Block) String() string {
	var sb strings.Builder
	printValue(&sb, b, 0)
	return sb.String()
}

// List is an ordered sequence of keyless values: strings, integers,
// decimals, and nested blocks.
type List struct {
	Values []Value
}

func (*List) isValue() {}

// String implements [fmt.Stringer].
func (l *List) String() string {
	var sb strings.Builder
	printValue(&sb, l, 0)
	return sb.String()
}

// Detach returns a deep copy of the block whose strings no longer
// alias the parser's string pool, so the copy may outlive the parser
// that produced the original.
func (b *Block) Detach() *Block {
	out := &Block{Statements: make([]Statement, len(b.Statements))}
	for i, s := range b.Statements {
		out.Statements[i] = Statement{
			Key:   detachValue(s.Key),
			Value: detachValue(s.Value),
		}
	}
	return out
}

func detachValue(v Value) Value {
	switch v := v.(type) {
	case String:
		return String(strings.Clone(string(v)))
	case Integer, Decimal, Date:
		return v
	case *Block:
		return v.Detach()
	case *List:
		out := &List{Values: make([]Value, len(v.Values))}
		for i, e := range v.Values {
			out.Values[i] = detachValue(e)
		}
		return out
	default:
		panic(fmt.Sprintf("pdxscript/ast: unknown value type %T", v))
	}
}
