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

package pdxscript

// Resolver maps a logical script path to the real file path to read.
// [vfs.Overlay] is the usual implementation; it searches an ordered
// stack of game and mod directories, most specific first.
type Resolver interface {
	Resolve(logical string) (string, error)
}

// ResolverFunc adapts a function into a [Resolver].
type ResolverFunc func(logical string) (string, error)

// Resolve implements [Resolver].
func (f ResolverFunc) Resolve(logical string) (string, error) {
	return f(logical)
}

// identityResolver opens paths exactly as given.
var identityResolver Resolver = ResolverFunc(func(logical string) (string, error) {
	return logical, nil
})
