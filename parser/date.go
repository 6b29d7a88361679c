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
	"errors"
	"strconv"
	"strings"

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/reporter"
)

// ParseDate converts a year.month.day literal into a packed date.
//
// Unlike decimal anomalies, date problems are fatal: dates are used
// as structural keys, so a misdecoded date corrupts the tree rather
// than one value. A field count other than three fails with
// [ErrMalformedDate]; a field outside its bound fails with
// [ErrDateFieldOutOfRange], naming the field and its maximum.
func ParseDate(text string, pos ast.SourcePos) (ast.Date, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return ast.Date{}, reporter.Errorf(pos,
			"%w: %q is not of the form year.month.day", ErrMalformedDate, text)
	}

	names := [3]string{"year", "month", "day"}
	maxes := [3]uint64{ast.MaxYear, ast.MaxMonth, ast.MaxDay}

	var fields [3]uint64
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			v = maxes[i] + 1 // fall through to the bounds error
		} else if err != nil {
			return ast.Date{}, reporter.Errorf(pos,
				"%w: field %s of %q is not a non-negative integer",
				ErrMalformedDate, names[i], text)
		}
		if v > maxes[i] {
			return ast.Date{}, reporter.Errorf(pos,
				"%w: cannot represent %s %s in date %q (maximum is %d)",
				ErrDateFieldOutOfRange, names[i], part, text, maxes[i])
		}
		fields[i] = v
	}

	return ast.Date{
		Year:  uint16(fields[0]),
		Month: uint8(fields[1]),
		Day:   uint8(fields[2]),
	}, nil
}
