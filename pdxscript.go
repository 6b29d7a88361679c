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

// Package pdxscript parses the PDX script format used by a strategy
// game's data files and save-games into typed [ast.Block] trees, and
// prints trees back out as script.
//
// A [Parser] resolves logical paths through an optional [Resolver]
// (see the vfs package for the mod-overlay implementation), scans and
// parses each file, and reports recoverable diagnostics through a
// [reporter.Reporter]. Individual files parse with no shared mutable
// state, so [Parser.ParseFiles] runs them in parallel.
package pdxscript

import (
	"context"
	"errors"
	"os"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/cktools/pdxscript/ast"
	"github.com/cktools/pdxscript/parser"
	"github.com/cktools/pdxscript/reporter"
)

// Parser parses script files into [ast.Block] trees.
//
// The zero value opens paths as given, parses data files (not
// save-games) with three fractional decimal digits, aborts on the
// first fatal error, and drops recoverable diagnostics.
type Parser struct {
	// Resolver maps logical script paths to real file paths. If nil,
	// paths are opened as given.
	Resolver Resolver
	// MaxParallelism bounds ParseFiles. If unspecified or
	// non-positive, min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is
	// used.
	MaxParallelism int
	// Reporter receives fatal errors and recoverable diagnostics. A
	// [reporter.Queue] retains diagnostics for inspection after the
	// parse. ParseFiles shares the reporter across files, so a custom
	// implementation must tolerate concurrent calls.
	Reporter reporter.Reporter
	// IsSave parses files as save-games: a header token is expected
	// and discarded at the root.
	IsSave bool
	// Digits is the fractional digit count for decimal values; zero
	// means three.
	Digits uint8
}

// Parse parses a single file into its root block.
//
// The tree's interned strings share the parse's lifetime; use
// [ast.Block.Detach] if the tree must outlive it.
func (p *Parser) Parse(path string) (*ast.Block, error) {
	resolver := p.Resolver
	if resolver == nil {
		resolver = identityResolver
	}
	real, err := resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(real)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data, path, parser.Options{
		IsSave:  p.IsSave,
		Digits:  p.Digits,
		Handler: reporter.NewHandler(p.Reporter),
	})
}

// ParseFiles parses the given files concurrently, bounded by
// MaxParallelism, and returns their root blocks in argument order.
// Every file gets its own parser state (pool, cursor, handler), so
// the files never contend; the first fatal error cancels the
// remaining work and is returned.
func (p *Parser) ParseFiles(ctx context.Context, paths ...string) ([]*ast.Block, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := p.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	sem := semaphore.NewWeighted(int64(par))

	results := make([]result, len(paths))
	for i, path := range paths {
		results[i].ready = make(chan struct{})
		go func() {
			defer close(results[i].ready)
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i].err = err
				return
			}
			defer sem.Release(1)

			block, err := p.Parse(path)
			if err != nil {
				results[i].err = err
				cancel()
				return
			}
			results[i].block = block
		}()
	}

	blocks := make([]*ast.Block, len(paths))
	var firstErr error
	for i := range results {
		// Every worker closes its ready channel, even when cancelled
		// while waiting on the semaphore.
		<-results[i].ready
		err := results[i].err
		if err != nil && (firstErr == nil || errors.Is(firstErr, context.Canceled)) {
			// A cancellation error is just fallout from whichever
			// parse actually failed; prefer the real failure.
			firstErr = err
		}
		blocks[i] = results[i].block
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return blocks, nil
}

type result struct {
	ready chan struct{}
	block *ast.Block
	err   error
}
