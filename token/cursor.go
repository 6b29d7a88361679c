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

package token

// MaxPushback is the number of tokens a [Cursor] can buffer for
// replay. Two tokens is exactly what the script grammar's single
// ambiguity (list vs. block) needs.
const MaxPushback = 2

// Cursor wraps a [Stream] with a fixed amount of pushback, so a
// consumer can inspect a bounded number of upcoming tokens and then
// hand them back to be read again.
type Cursor struct {
	src    Stream
	replay [MaxPushback]Token
	// Number of buffered tokens not yet re-read. They occupy the tail
	// of replay, oldest first.
	buffered int
}

// NewCursor returns a new cursor over the given stream.
func NewCursor(src Stream) *Cursor {
	return &Cursor{src: src}
}

// Next returns the next token, draining any pushed-back tokens in
// order before pulling from the underlying stream again.
func (c *Cursor) Next() (Token, error) {
	if c.buffered > 0 {
		t := c.replay[len(c.replay)-c.buffered]
		c.buffered--
		return t, nil
	}
	return c.src.Next()
}

// Unread pushes toks back onto the cursor so that subsequent calls to
// Next yield them, in order, before resuming the stream. The pushed
// tokens' text must remain valid until they are re-read; Unread does
// not copy it.
//
// Panics if more than [MaxPushback] tokens would be buffered, or if
// buffered tokens have not been drained yet.
func (c *Cursor) Unread(toks ...Token) {
	if c.buffered != 0 || len(toks) > len(c.replay) {
		panic("pdxscript/token: cursor pushback overflow")
	}
	copy(c.replay[len(c.replay)-len(toks):], toks)
	c.buffered = len(toks)
}
