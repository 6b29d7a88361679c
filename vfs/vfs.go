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

// Package vfs resolves logical script paths against an ordered stack
// of game and mod root directories. Mods overlay the base game by
// shipping files at the same logical paths; the most recently pushed
// root wins.
package vfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Overlay is a stack of root directories, base game first. The zero
// value has no roots and resolves nothing.
type Overlay struct {
	roots []string
}

// New returns an overlay rooted at the base game directory.
func New(gameRoot string) *Overlay {
	return &Overlay{roots: []string{gameRoot}}
}

// Push extends the stack with a mod root at runtime. Later pushes are
// more specific and shadow earlier ones.
func (o *Overlay) Push(modRoot string) {
	o.roots = append(o.roots, modRoot)
}

// Roots returns the root stack, base game first.
func (o *Overlay) Roots() []string {
	return slices.Clone(o.roots)
}

// Resolve maps a slash-separated logical path to the real path of the
// file in the most specific root that contains it. A miss wraps
// [fs.ErrNotExist].
func (o *Overlay) Resolve(logical string) (string, error) {
	for i := len(o.roots) - 1; i >= 0; i-- {
		real := filepath.Join(o.roots[i], filepath.FromSlash(logical))
		if info, err := os.Stat(real); err == nil && !info.IsDir() {
			return real, nil
		}
	}
	return "", fmt.Errorf("%s: %w", logical, fs.ErrNotExist)
}

// Glob expands a doublestar pattern (e.g. common/**/*.txt) against
// every root and returns the union of matching logical paths, sorted.
// A path present in several roots appears once; Resolve on it yields
// the most specific copy.
func (o *Overlay) Glob(pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for i := len(o.roots) - 1; i >= 0; i-- {
		matches, err := doublestar.Glob(os.DirFS(o.roots[i]), pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q in %s: %w", pattern, o.roots[i], err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out, nil
}
