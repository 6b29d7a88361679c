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

import "github.com/tidwall/btree"

// DateIndex is an ordered index over a block's date-keyed statements.
// History blocks key events by date; the index answers point and
// range queries over them without rescanning the block.
//
// The index borrows the block's statements; it is valid for as long
// as the block is.
type DateIndex struct {
	tree *btree.BTreeG[dateEntry]
}

type dateEntry struct {
	date Date
	// Statements sharing the date, in block order.
	stmts []Statement
}

// NewDateIndex builds an index over every statement of b whose key is
// a [Date]. Statements with other key types are ignored.
func NewDateIndex(b *Block) *DateIndex {
	tree := btree.NewBTreeG(func(a, b dateEntry) bool {
		return a.date.Before(b.date)
	})
	for _, s := range b.Statements {
		d, ok := s.Key.(Date)
		if !ok {
			continue
		}
		if e, ok := tree.Get(dateEntry{date: d}); ok {
			e.stmts = append(e.stmts, s)
			tree.Set(e)
		} else {
			tree.Set(dateEntry{date: d, stmts: []Statement{s}})
		}
	}
	return &DateIndex{tree: tree}
}

// Len returns the number of distinct dates in the index.
func (ix *DateIndex) Len() int {
	return ix.tree.Len()
}

// Get returns the statements keyed by exactly d, in block order, or
// nil if there are none.
func (ix *DateIndex) Get(d Date) []Statement {
	e, ok := ix.tree.Get(dateEntry{date: d})
	if !ok {
		return nil
	}
	return e.stmts
}

// Range calls fn for every indexed date in [lo, hi], in ascending
// order, until fn returns false.
func (ix *DateIndex) Range(lo, hi Date, fn func(d Date, stmts []Statement) bool) {
	ix.tree.Ascend(dateEntry{date: lo}, func(e dateEntry) bool {
		if hi.Before(e.date) {
			return false
		}
		return fn(e.date, e.stmts)
	})
}
