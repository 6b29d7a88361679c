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
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/cktools/pdxscript/parser"
)

// printSource parses src and renders the tree back to script text.
func printSource(t *testing.T, src string) string {
	t.Helper()
	b, err := parser.Parse([]byte(src), "roundtrip.txt", parser.Options{})
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, b.Print(&sb, 0))
	return sb.String()
}

// TestRoundTrip checks that printed output is a fixed point: printing
// normalizes whitespace and drops comments, but re-parsing the printed
// text and printing again must reproduce it byte for byte.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	src := `# province history
1500.1.1 = {
    owner = SWE # comment after value
    controller = SWE
    add_core = { SWE DAN }
    base_tax = 3.500
    garrison = -250
    ruler = "Gustav Vasa"
    coronation = "1523.6.6"
    modifiers = {
        { strength = 0.25 }
        { strength = 0.75 }
    }
    empty = { }
}
discovered_by = { western muslim }
`
	first := printSource(t, src)
	second := printSource(t, first)

	if first != second {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "first print",
			ToFile:   "second print",
			Context:  3,
		})
		require.NoError(t, err)
		t.Fatalf("print is not a fixed point:\n%s", diff)
	}
}

// TestRoundTripQuoting checks that strings which need quoting come
// back quoted and survive another pass.
func TestRoundTripQuoting(t *testing.T) {
	t.Parallel()

	first := printSource(t, "name = \"two words\"\n")
	require.Equal(t, "name = \"two words\"\n", first)
	require.Equal(t, first, printSource(t, first))
}
