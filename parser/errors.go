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

import "errors"

// Sentinel causes of fatal parse errors. The errors returned by
// [Parse] wrap one of these together with a position; match them with
// [errors.Is].
var (
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrUnexpectedEOF         = errors.New("unexpected end of file")
	ErrUnmatchedClosingBrace = errors.New("unmatched closing brace")
	ErrUnrecognizedToken     = errors.New("unrecognized token")
	ErrMalformedDate         = errors.New("malformed date")
	ErrDateFieldOutOfRange   = errors.New("date field out of range")
)
