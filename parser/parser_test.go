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

package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/parser"
	"github.com/cktools/pdxscript/reporter"
)

// decimals lets go-cmp compare ast.Decimal, whose representation is
// unexported.
var decimals = cmp.Comparer(func(a, b ast.Decimal) bool {
	return a.Mantissa() == b.Mantissa() && a.Digits() == b.Digits()
})

func parse(t *testing.T, src string) *ast.Block {
	t.Helper()
	b, err := parser.Parse([]byte(src), "test.txt", parser.Options{})
	require.NoError(t, err)
	return b
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := parser.Parse([]byte(src), "test.txt", parser.Options{})
	require.Error(t, err)
	return err
}

func TestParseScalars(t *testing.T) {
	t.Parallel()

	got := parse(t, `
name = haraldr
title = "Jarl Haraldr"
gold = 52
debt = -3
prestige = 100.50
birth = 821.1.3
death = "867.3.1"
`)
	want := &ast.Block{Statements: []ast.Statement{
		{Key: ast.String("name"), Value: ast.String("haraldr")},
		{Key: ast.String("title"), Value: ast.String("Jarl Haraldr")},
		{Key: ast.String("gold"), Value: ast.Integer(52)},
		{Key: ast.String("debt"), Value: ast.Integer(-3)},
		{Key: ast.String("prestige"), Value: ast.NewDecimal(100500, 3)},
		{Key: ast.String("birth"), Value: ast.Date{Year: 821, Month: 1, Day: 3}},
		{Key: ast.String("death"), Value: ast.Date{Year: 867, Month: 3, Day: 1}},
	}}
	assert.Empty(t, cmp.Diff(want, got, decimals))
}

func TestParseKeys(t *testing.T) {
	t.Parallel()

	got := parse(t, "900.1.1 = { holder = 10 }\n10 = x\n")
	want := &ast.Block{Statements: []ast.Statement{
		{
			Key: ast.Date{Year: 900, Month: 1, Day: 1},
			Value: &ast.Block{Statements: []ast.Statement{
				{Key: ast.String("holder"), Value: ast.Integer(10)},
			}},
		},
		{Key: ast.Integer(10), Value: ast.String("x")},
	}}
	assert.Empty(t, cmp.Diff(want, got, decimals))
}

func TestDisambiguation(t *testing.T) {
	t.Parallel()

	t.Run("statements make a block", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { b = 1 }")
		want := &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("a"), Value: &ast.Block{Statements: []ast.Statement{
				{Key: ast.String("b"), Value: ast.Integer(1)},
			}}},
		}}
		assert.Empty(t, cmp.Diff(want, got, decimals))
	})

	t.Run("scalars make a list", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { 1 2 3 }")
		want := &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("a"), Value: &ast.List{Values: []ast.Value{
				ast.Integer(1), ast.Integer(2), ast.Integer(3),
			}}},
		}}
		assert.Empty(t, cmp.Diff(want, got, decimals))
	})

	t.Run("double open makes a list of blocks", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { { x = 1 } }")
		want := &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("a"), Value: &ast.List{Values: []ast.Value{
				&ast.Block{Statements: []ast.Statement{
					{Key: ast.String("x"), Value: ast.Integer(1)},
				}},
			}}},
		}}
		assert.Empty(t, cmp.Diff(want, got, decimals))
	})

	t.Run("empty braces make an empty block", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { }")
		want := &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("a"), Value: &ast.Block{}},
		}}
		assert.Empty(t, cmp.Diff(want, got, decimals))
	})

	t.Run("single element list", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { only }")
		want := &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("a"), Value: &ast.List{Values: []ast.Value{
				ast.String("only"),
			}}},
		}}
		assert.Empty(t, cmp.Diff(want, got, decimals))
	})

	t.Run("empty blocks are not shared", func(t *testing.T) {
		t.Parallel()
		got := parse(t, "a = { }\nb = { }\n")
		first := got.Statements[0].Value.(*ast.Block)
		second := got.Statements[1].Value.(*ast.Block)
		assert.NotSame(t, first, second)
	})
}

func TestCommentsAreTransparent(t *testing.T) {
	t.Parallel()

	// Comments between the lookahead tokens must not disturb the
	// disambiguation.
	got := parse(t, "a = { # comment\n b # another\n = 1 }")
	want := &ast.Block{Statements: []ast.Statement{
		{Key: ast.String("a"), Value: &ast.Block{Statements: []ast.Statement{
			{Key: ast.String("b"), Value: ast.Integer(1)},
		}}},
	}}
	assert.Empty(t, cmp.Diff(want, got, decimals))
}

func TestStatementOrderPreserved(t *testing.T) {
	t.Parallel()

	// Duplicate keys are retained, in input order; a block is not a
	// dictionary.
	got := parse(t, "a = 1\na = 2\n")
	require.Len(t, got.Statements, 2)
	assert.Equal(t, ast.Integer(1), got.Statements[0].Value)
	assert.Equal(t, ast.Integer(2), got.Statements[1].Value)
}

func TestUnmatchedClosingBrace(t *testing.T) {
	t.Parallel()

	err := parseErr(t, "a = 1\n}\n")
	require.ErrorIs(t, err, parser.ErrUnmatchedClosingBrace)

	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, 2, ewp.GetPosition().Line)

	// One level deep the same brace is the block terminator.
	got := parse(t, "a = { b = 1 }\nc = 2\n")
	require.Len(t, got.Statements, 2)
}

func TestUnexpectedEOF(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"a = { b = 1",
		"a = {",
		"a = { 1 2",
		"a =",
		"a",
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, parseErr(t, src), parser.ErrUnexpectedEOF)
		})
	}

	// Clean EOF at root level succeeds, including on empty input.
	assert.Empty(t, parse(t, "").Statements)
	assert.Len(t, parse(t, "a = 1").Statements, 1)
}

func TestUnexpectedToken(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"= 1",            // no key
		"a = =",          // no value
		"a 1",            // missing EQ
		"0.5 = x",        // decimal cannot key a statement
		"a = { 1 = 2 =",  // EQ inside a list
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, parseErr(t, src), parser.ErrUnexpectedToken)
		})
	}
}

func TestMalformedDateIsFatal(t *testing.T) {
	t.Parallel()

	err := parseErr(t, "born = \"70000.1.1\"")
	assert.ErrorIs(t, err, parser.ErrDateFieldOutOfRange)
}

func TestSaveHeaderSkipped(t *testing.T) {
	t.Parallel()

	src := "CK2txt\nversion = 2\n"
	got, err := parser.Parse([]byte(src), "save.ck2", parser.Options{IsSave: true})
	require.NoError(t, err)
	require.Len(t, got.Statements, 1)
	assert.True(t, got.Statements[0].KeyEq("version"))

	// Without IsSave the header is an ordinary key with no EQ.
	_, err = parser.Parse([]byte(src), "save.ck2", parser.Options{})
	assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
}

func TestDiagnosticsSurviveParse(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	q := new(reporter.Queue)
	src := "a = 123.12345\nb = 99999999999.0\n"
	_, err := parser.Parse([]byte(src), "test.txt", parser.Options{
		Handler: reporter.NewHandler(q),
	})
	require.NoError(t, err)

	diags := q.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(reporter.Warning, diags[0].Severity)
	assert.Equal(1, diags[0].Pos.Line)
	assert.Equal(reporter.Normal, diags[1].Severity)
	assert.Equal(2, diags[1].Pos.Line)
}

func TestCustomDigits(t *testing.T) {
	t.Parallel()

	got, err := parser.Parse([]byte("x = 1.25"), "test.txt", parser.Options{Digits: 5})
	require.NoError(t, err)
	d := got.Statements[0].Value.(ast.Decimal)
	assert.Equal(t, int32(125000), d.Mantissa())
	assert.Equal(t, uint8(5), d.Digits())
}

func TestDeeplyNested(t *testing.T) {
	t.Parallel()

	got := parse(t, "a = { b = { c = { d = { e = done } } } }")
	cur := got
	for _, key := range []string{"a", "b", "c", "d"} {
		require.Len(t, cur.Statements, 1)
		require.True(t, cur.Statements[0].KeyEq(key))
		next, ok := cur.Statements[0].Value.(*ast.Block)
		require.True(t, ok, "value of %s", key)
		cur = next
	}
	assert.Equal(t, ast.String("done"), cur.Statements[0].Value)
}

func TestUnrecognizedTokenIsFatal(t *testing.T) {
	t.Parallel()

	err := parseErr(t, "a = \x01")
	assert.ErrorIs(t, err, parser.ErrUnrecognizedToken)
}
