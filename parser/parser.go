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

// Package parser turns PDX script source into an [ast.Block] tree.
//
// The grammar is line-oriented key = value statements with nested
// blocks and homogeneous lists. Its one ambiguity is that `x = {`
// may open either a block of statements or a list of scalars; the
// parser resolves it with two tokens of lookahead, replayed through a
// [token.Cursor] so the chosen sub-parser sees the exact token
// sequence it would have seen without lookahead.
package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/internal/pool"
	"github.com/cktools/pdxscript/reporter"
	"github.com/cktools/pdxscript/token"
)

// Options configures a single parse.
type Options struct {
	// IsSave parses save-game files: the root opens with a fixed
	// header token that is consumed and discarded, and a stray } at
	// root level ends the root instead of failing.
	IsSave bool
	// Digits is the fractional digit count for decimal values; zero
	// means [DefaultDigits].
	Digits uint8
	// Handler receives recoverable diagnostics and routes fatal
	// errors. Nil gets a default handler (errors abort, diagnostics
	// are dropped).
	Handler *reporter.Handler
}

// Parse parses a whole script file into its root block.
//
// A fatal grammar violation returns a nil tree and a
// [reporter.ErrorWithPos] wrapping one of this package's sentinel
// errors. A successful parse may still have queued recoverable
// diagnostics on the handler's reporter.
//
// The returned tree's strings live in a string pool owned by the
// parse; they stay valid as long as the tree is reachable, but see
// [ast.Block.Detach] for an exported copy with independent strings.
func Parse(data []byte, filename string, opts Options) (*ast.Block, error) {
	return ParseTokens(newLexer(data), filename, opts)
}

// ParseTokens runs the grammar over an externally supplied token
// stream. The stream's QSTR and QDATE token text must arrive with
// quote delimiters already stripped.
func ParseTokens(src token.Stream, filename string, opts Options) (*ast.Block, error) {
	if opts.Digits == 0 {
		opts.Digits = DefaultDigits
	}
	if opts.Digits > ast.MaxDecimalDigits {
		opts.Digits = ast.MaxDecimalDigits
	}
	h := opts.Handler
	if h == nil {
		h = reporter.NewHandler(nil)
	}

	r := &run{
		cursor:  token.NewCursor(src),
		file:    filename,
		line:    1,
		digits:  opts.Digits,
		isSave:  opts.IsSave,
		handler: h,
	}
	root, err := r.parseBlock(true)
	if err != nil {
		h.HandleError(err)
		return nil, h.Err()
	}
	return root, nil
}

// run is the state of one parse. Each run exclusively owns its string
// pool and cursor; independent files parse on independent runs with
// no shared state.
type run struct {
	cursor  *token.Cursor
	pool    pool.Pool
	handler *reporter.Handler
	file    string
	line    int
	digits  uint8
	isSave  bool
}

// pos returns the position of the most recently pulled token.
func (r *run) pos() ast.SourcePos {
	return ast.SourcePos{Filename: r.file, Line: r.line}
}

// next pulls the next semantic token, skipping comments. EOF is
// returned only when eofOK; anywhere else it is a fatal
// [ErrUnexpectedEOF]. Unrecognized input is always fatal.
func (r *run) next(eofOK bool) (token.Token, error) {
	for {
		t, err := r.cursor.Next()
		if err != nil {
			return t, err
		}
		if t.Line > 0 {
			r.line = t.Line
		}

		switch t.Kind {
		case token.Comment:
			continue
		case token.EOF:
			if !eofOK {
				return t, reporter.Error(r.pos(), ErrUnexpectedEOF)
			}
			return t, nil
		case token.Unrecognized:
			return t, reporter.Errorf(r.pos(), "%w: %q", ErrUnrecognizedToken, t.Text)
		default:
			return t, nil
		}
	}
}

func (r *run) unexpected(t token.Token) error {
	return reporter.Errorf(r.pos(), "%w: %s", ErrUnexpectedToken, t)
}

// parseBlock parses statements until the block's terminator: CLOSE
// for nested blocks, EOF for the root.
func (r *run) parseBlock(isRoot bool) (*ast.Block, error) {
	if isRoot && r.isSave {
		// Save-games open with a fixed header string; consume and
		// discard it.
		t, err := r.next(false)
		if err != nil {
			return nil, err
		}
		if t.Kind != token.Str {
			return nil, r.unexpected(t)
		}
	}

	b := &ast.Block{}
	for {
		t, err := r.next(isRoot)
		if err != nil {
			return nil, err
		}

		switch t.Kind {
		case token.EOF:
			// Only reachable at root; nested EOF is fatal in next.
			return b, nil
		case token.Close:
			if isRoot && !r.isSave {
				return nil, reporter.Error(r.pos(), ErrUnmatchedClosingBrace)
			}
			// Nested: the expected terminator. Save-game root: end of
			// the root block.
			return b, nil
		}

		key, err := r.parseKey(t)
		if err != nil {
			return nil, err
		}

		t, err = r.next(false)
		if err != nil {
			return nil, err
		}
		if t.Kind != token.Eq {
			return nil, r.unexpected(t)
		}

		val, err := r.parseValue()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, ast.Statement{Key: key, Value: val})
	}
}

// parseKey converts a statement's left-hand token. Only strings,
// dates, and integers may key a statement.
func (r *run) parseKey(t token.Token) (ast.Value, error) {
	switch t.Kind {
	case token.Str:
		return r.intern(t.Text)
	case token.Date:
		return ParseDate(t.Text, r.pos())
	case token.Integer:
		return r.parseInteger(t.Text), nil
	default:
		return nil, r.unexpected(t)
	}
}

// parseValue converts a statement's right-hand side. Quoted strings
// and quoted dates occur only here, never as keys.
func (r *run) parseValue() (ast.Value, error) {
	t, err := r.next(false)
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case token.Str, token.QStr:
		return r.intern(t.Text)
	case token.Date, token.QDate:
		return ParseDate(t.Text, r.pos())
	case token.Integer:
		return r.parseInteger(t.Text), nil
	case token.Decimal:
		return ParseDecimal(t.Text, r.digits, r.pos(), r.handler), nil
	case token.Open:
		return r.parseBraced()
	default:
		return nil, r.unexpected(t)
	}
}

// parseBraced resolves the grammar's one ambiguity. Having consumed
// an OPEN in value position, it decides between a statement block and
// a scalar list:
//
//   - CLOSE right away: an empty block, decided with one token.
//   - A second OPEN: necessarily a list of blocks, since no statement
//     body can begin with two consecutive opens.
//   - Otherwise, peek one more token: X EQ can only start a
//     statement, so EQ means block; anything else means list.
//
// The peeked tokens are pushed back onto the cursor before the chosen
// sub-parser runs, so it consumes them as if no lookahead happened.
func (r *run) parseBraced() (ast.Value, error) {
	first, err := r.next(false)
	if err != nil {
		return nil, err
	}
	if first.Kind == token.Close {
		return &ast.Block{}, nil
	}
	doubleOpen := first.Kind == token.Open

	// The saved tokens survive a pull from the underlying stream, so
	// their text has to be copied out.
	first.Text = strings.Clone(first.Text)

	second, err := r.next(false)
	if err != nil {
		return nil, err
	}
	second.Text = strings.Clone(second.Text)

	r.cursor.Unread(first, second)

	if second.Kind == token.Eq && !doubleOpen {
		return r.parseBlock(false)
	}
	return r.parseList()
}

// parseList parses list elements until the closing brace. Lists hold
// strings, integers, decimals, and nested blocks; a list directly
// inside a list is not part of the grammar.
func (r *run) parseList() (*ast.List, error) {
	l := &ast.List{}
	for {
		t, err := r.next(false)
		if err != nil {
			return nil, err
		}

		var v ast.Value
		switch t.Kind {
		case token.Close:
			return l, nil
		case token.Str, token.QStr:
			if v, err = r.intern(t.Text); err != nil {
				return nil, err
			}
		case token.Integer:
			v = r.parseInteger(t.Text)
		case token.Decimal:
			v = ParseDecimal(t.Text, r.digits, r.pos(), r.handler)
		case token.Open:
			if v, err = r.parseBlock(false); err != nil {
				return nil, err
			}
		default:
			return nil, r.unexpected(t)
		}
		l.Values = append(l.Values, v)
	}
}

// parseInteger converts an INTEGER token, whose text the scanner
// guarantees to match -?[0-9]+. A literal outside the int32 range is
// recoverable: the value clamps and a diagnostic is queued, matching
// the decimal overflow policy.
func (r *run) parseInteger(text string) ast.Integer {
	v, err := strconv.ParseInt(text, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		r.handler.HandleWarningf(reporter.Normal, r.pos(),
			"integer %q is out of the supported range [%d, %d]",
			text, math.MinInt32, math.MaxInt32)
		if text[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return ast.Integer(v)
}

// intern copies token text into the run's string pool. A string too
// long for any pool chunk is fatal.
func (r *run) intern(text string) (ast.String, error) {
	s, err := r.pool.Intern(text)
	if err != nil {
		return "", reporter.Errorf(r.pos(), "%w (%d bytes, maximum %d)",
			err, len(text), pool.ChunkSize)
	}
	return ast.String(s), nil
}
