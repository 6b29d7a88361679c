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

// Package pool provides a bump-allocating string arena.
//
// A parse of a multi-megabyte save file interns hundreds of thousands
// of short strings. Allocating each one individually is wasteful; the
// pool instead copies them into fixed-capacity chunks and hands out
// views into those chunks. A chunk is never grown or reallocated once
// created, so every interned string stays valid for the life of the
// pool, and the whole pool is released in one step when it becomes
// unreachable.
package pool

import (
	"errors"
	"unsafe"
)

// ChunkSize is the capacity of a single chunk, and therefore the
// longest string the pool can intern.
const ChunkSize = 512

// ErrStringTooLong is returned by [Pool.Intern] for strings that
// cannot fit in any chunk.
var ErrStringTooLong = errors.New("string exceeds pool chunk capacity")

// Pool interns strings into chunked stable storage.
//
// A zero Pool is empty and ready to use. A Pool must not be used from
// multiple goroutines; parsers own exactly one pool each.
type Pool struct {
	// Invariant: every chunk has capacity ChunkSize and is only ever
	// appended to within that capacity, so backing arrays never move.
	chunks [][]byte
}

// Intern returns a copy of s backed by pool-owned storage. The result
// remains valid and immutable for as long as the pool is reachable.
func (p *Pool) Intern(s string) (string, error) {
	if len(s) > ChunkSize {
		return "", ErrStringTooLong
	}
	if s == "" {
		return "", nil
	}

	last := len(p.chunks) - 1
	if last < 0 || cap(p.chunks[last])-len(p.chunks[last]) < len(s) {
		p.chunks = append(p.chunks, make([]byte, 0, ChunkSize))
		last = len(p.chunks) - 1
	}

	c := p.chunks[last]
	off := len(c)
	c = append(c, s...)
	p.chunks[last] = c

	// The chunk's backing array never moves, so aliasing it is safe;
	// nothing ever writes to [off, off+len(s)) again.
	return unsafe.String(&c[off], len(s)), nil
}

// Chunks returns how many chunks the pool has allocated.
func (p *Pool) Chunks() int {
	return len(p.chunks)
}
