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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/parser"
	"github.com/cktools/pdxscript/reporter"
)

func testPos() ast.SourcePos {
	return ast.SourcePos{Filename: "test.txt", Line: 1}
}

func TestParseDecimalExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		digits   uint8
		mantissa int32
		printed  string
	}{
		{"12345.1", 3, 12345100, "12345.1"},
		{"0.5", 3, 500, "0.5"},
		{"0.", 3, 0, "0"},
		{"-0.5", 3, -500, "-0.5"},
		{"-12.25", 2, -1225, "-12.25"},
		{"3.141", 3, 3141, "3.141"},
		{"1.1", 1, 11, "1.1"},
		{"0.000000001", 9, 1, "0.000000001"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.text, tt.digits), func(t *testing.T) {
			t.Parallel()

			q := new(reporter.Queue)
			d := parser.ParseDecimal(tt.text, tt.digits, testPos(), reporter.NewHandler(q))

			assert.Equal(t, tt.mantissa, d.Mantissa())
			assert.Equal(t, tt.printed, d.String())
			assert.True(t, q.Empty(), "unexpected diagnostics: %v", q.Diagnostics())
		})
	}
}

func TestParseDecimalTruncation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	q := new(reporter.Queue)
	d := parser.ParseDecimal("123.12345", 3, testPos(), reporter.NewHandler(q))

	// The digits beyond the third are discarded, with exactly one
	// warning; the kept value is exact.
	assert.Equal(int32(123123), d.Mantissa())

	diags := q.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(reporter.Warning, diags[0].Severity)
	assert.Contains(diags[0].Message, "truncated")
}

func TestParseDecimalOverflow(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, maxIntegral := parser.IntegralBounds(3)
	text := fmt.Sprintf("%d.0", maxIntegral+1)

	q := new(reporter.Queue)
	d := parser.ParseDecimal(text, 3, testPos(), reporter.NewHandler(q))

	// Overflow never aborts; the value clamps to the bound and a
	// Normal-severity diagnostic is queued.
	assert.Equal(int32(maxIntegral*1000), d.Mantissa())

	diags := q.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(reporter.Normal, diags[0].Severity)
	assert.Contains(diags[0].Message, "out of the supported range")
}

func TestParseDecimalOverflowHugeLiteral(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// Long enough to overflow any accumulator that doesn't check
	// per digit.
	q := new(reporter.Queue)
	d := parser.ParseDecimal("99999999999999999999999999999999.9", 3, testPos(), reporter.NewHandler(q))

	_, maxIntegral := parser.IntegralBounds(3)
	assert.Equal(int32(maxIntegral*1000), d.Mantissa())
	assert.False(q.Empty())
}

func TestParseDecimalNegativeOverflow(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	minIntegral, _ := parser.IntegralBounds(3)
	text := fmt.Sprintf("%d.0", minIntegral-1)

	q := new(reporter.Queue)
	d := parser.ParseDecimal(text, 3, testPos(), reporter.NewHandler(q))

	assert.Equal(int32(minIntegral*1000), d.Mantissa())
	assert.False(q.Empty())
}

func TestIntegralBounds(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// For three digits the scale is 1000 and the mantissa is an
	// int32, so the integral component tops out just under 2^31/1000.
	minIntegral, maxIntegral := parser.IntegralBounds(3)
	assert.Equal(int64(2147482), maxIntegral)
	assert.Equal(int64(-2147482), minIntegral)
}
