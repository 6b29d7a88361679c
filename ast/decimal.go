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
	"fmt"
	"strconv"
)

// MaxDecimalDigits is the largest fractional digit count a [Decimal]
// can carry; 10^9 is the largest power of ten representable in the
// int32 mantissa.
const MaxDecimalDigits = 9

// Pow10 holds 10^0 through 10^MaxDecimalDigits.
var Pow10 = [MaxDecimalDigits + 1]int32{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000,
	100_000_000, 1_000_000_000,
}

// Decimal is an exact fixed-point decimal: an int32 mantissa scaled
// by 10^digits, representing mantissa / 10^digits. Decimals are
// conversion-only; they carry no arithmetic.
type Decimal struct {
	mantissa int32
	digits   uint8
}

// NewDecimal constructs a Decimal from a raw scaled mantissa.
//
// Panics unless 1 <= digits <= MaxDecimalDigits.
func NewDecimal(mantissa int32, digits uint8) Decimal {
	if digits < 1 || digits > MaxDecimalDigits {
		panic(fmt.Sprintf("pdxscript/ast: decimal digit count %d out of range", digits))
	}
	return Decimal{mantissa: mantissa, digits: digits}
}

func (Decimal) isValue() {}

// Mantissa returns the raw scaled representation.
func (d Decimal) Mantissa() int32 { return d.mantissa }

// Digits returns the fractional digit count.
func (d Decimal) Digits() uint8 { return d.digits }

// Scale returns 10^Digits.
func (d Decimal) Scale() int32 { return Pow10[d.digits] }

// Integral returns the integer component, truncated toward zero.
func (d Decimal) Integral() int32 { return d.mantissa / d.Scale() }

// Fractional returns the scaled fractional component. It carries the
// sign of the whole value.
func (d Decimal) Fractional() int32 { return d.mantissa % d.Scale() }

// Float64 returns the nearest floating-point value, for interop only;
// nothing in the decoding path uses it.
func (d Decimal) Float64() float64 {
	return float64(d.Integral()) + float64(d.Fractional())/float64(d.Scale())
}

// String implements [fmt.Stringer]. The fractional component is
// zero-padded out to the digit count and then stripped of trailing
// zeros, so the result reproduces the parsed value, not necessarily
// the parsed spelling.
func (d Decimal) String() string {
	intg := d.Integral()
	frac := d.Fractional()

	var sb []byte
	if intg == 0 && d.mantissa < 0 {
		sb = append(sb, '-', '0')
	} else {
		sb = strconv.AppendInt(sb, int64(intg), 10)
	}

	if frac != 0 {
		if frac < 0 {
			frac = -frac
		}
		digits := strconv.FormatInt(int64(frac), 10)
		sb = append(sb, '.')
		for pad := int(d.digits) - len(digits); pad > 0; pad-- {
			sb = append(sb, '0')
		}
		sb = append(sb, digits...)
		for sb[len(sb)-1] == '0' {
			sb = sb[:len(sb)-1]
		}
	}
	return string(sb)
}
