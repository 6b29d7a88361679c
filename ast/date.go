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

import "fmt"

// Field bounds fixed by the packed representation.
const (
	MaxYear  = 1<<16 - 1
	MaxMonth = 1<<8 - 1
	MaxDay   = 1<<8 - 1
)

// Date is a calendar date in the script's year.month.day form, packed
// into four bytes. Dates are ordered lexicographically by
// (year, month, day); game dates are not constrained to real calendar
// ranges, only to the field bounds above.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

func (Date) isValue() {}

// String implements [fmt.Stringer], rendering the date the way script
// files write it, without zero padding.
func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0, or 1 depending on whether d sorts before,
// equal to, or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpOrd(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpOrd(d.Month, other.Month)
	default:
		return cmpOrd(d.Day, other.Day)
	}
}

// Before reports whether d sorts strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func cmpOrd[T uint8 | uint16](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
