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

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/reporter"
)

// DefaultDigits is the fractional digit count used for decimals when
// the caller doesn't choose one; three digits is what the game's own
// fixed-point values carry.
const DefaultDigits = 3

// IntegralBounds returns the inclusive range of integral components
// representable by a decimal with the given digit count, derived from
// the int32 mantissa range divided by the scale.
func IntegralBounds(digits uint8) (minIntegral, maxIntegral int64) {
	scale := int64(ast.Pow10[digits])
	const i32min, i32max = -1 << 31, 1<<31 - 1
	minIntegral = (i32min + scale - i32min%scale) / scale
	maxIntegral = (i32max - scale - i32max%scale) / scale
	return minIntegral, maxIntegral
}

// ParseDecimal converts a decimal literal into an exact fixed-point
// value with the given fractional digit count. The text is assumed to
// match -?[0-9]+\.[0-9]*, which the scanner guarantees for DECIMAL
// tokens.
//
// Anomalies are recoverable and reported through h, never as errors:
// an integral component outside [IntegralBounds] clamps the result to
// the violated bound and queues a Normal-severity diagnostic; excess
// fractional digits are truncated with a Warning. The conversion
// itself uses no floating point, so every representable literal comes
// back exact.
func ParseDecimal(text string, digits uint8, pos ast.SourcePos, h *reporter.Handler) ast.Decimal {
	body, negative := strings.CutPrefix(text, "-")
	radix := strings.IndexByte(body, '.')
	intPart, fracPart := body[:radix], body[radix+1:]

	scale := int64(ast.Pow10[digits])
	minIntegral, maxIntegral := IntegralBounds(digits)
	limit := maxIntegral
	if negative {
		limit = -minIntegral
	}

	// Integral component, most significant digit first, checking the
	// bound after every digit so arbitrarily long literals can't
	// overflow the accumulator either.
	var integral int64
	overflow := false
	for i := 0; i < len(intPart); i++ {
		integral = integral*10 + int64(intPart[i]-'0')
		if integral > limit {
			integral = limit
			overflow = true
			break
		}
	}
	if overflow {
		h.HandleWarningf(reporter.Normal, pos,
			"integral value of decimal %q is out of the supported range [%d, %d]",
			text, minIntegral, maxIntegral)
	}

	// Fractional component, at most digits digits, each weighted by a
	// decreasing power of ten.
	var frac int64
	kept := 0
	for ; kept < len(fracPart) && kept < int(digits); kept++ {
		frac += int64(fracPart[kept]-'0') * int64(ast.Pow10[int(digits)-kept-1])
	}
	if kept < len(fracPart) {
		h.HandleWarningf(reporter.Warning, pos,
			"decimal %q truncated to %d fractional digits", text, digits)
	}

	mantissa := integral*scale + frac
	if negative {
		mantissa = -mantissa
	}
	if overflow {
		// The fractional digits could push a clamped value past the
		// mantissa range; pin it to the scaled bound instead.
		mantissa = limit * scale
		if negative {
			mantissa = -mantissa
		}
	}
	return ast.NewDecimal(int32(mantissa), digits)
}
