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

// Package reporter splits parse problems into two disjoint channels:
// fatal errors, which propagate up through the grammar and abort the
// parse with no partial tree, and recoverable diagnostics, which are
// queued in order for the caller to inspect after a successful parse.
// A recoverable numeric anomaly should not abort an otherwise valid
// multi-megabyte save file; a grammar violation means the file is not
// decodable at all.
package reporter

import (
	"fmt"
	"sync"

	"github.com/cktools/pdxscript/ast"
)

const (
	// Normal is the severity of a queued diagnostic that indicates
	// data loss, such as a clamped out-of-range decimal.
	Normal Severity = iota
	// Warning indicates a benign anomaly, such as truncated excess
	// fractional digits.
	Warning
)

// Severity classifies a recoverable [Diagnostic].
type Severity int8

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case Normal:
		return "error"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("reporter.Severity(%d)", int(s))
	}
}

// Diagnostic is a single recoverable condition encountered during a
// parse.
type Diagnostic struct {
	Severity Severity
	Pos      ast.SourcePos
	Message  string
}

// String implements [fmt.Stringer].
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// ErrorReporter is responsible for reporting the given fatal error.
// If the reporter returns a non-nil error, parsing aborts with that
// error. If it returns nil, the original error is suppressed (the
// parse still fails, with [ErrInvalidSource]).
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given recoverable
// diagnostic. Diagnostics never fail a parse.
type WarningReporter func(Diagnostic)

// Reporter receives problems found during parsing.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(Diagnostic)
}

// NewReporter creates a Reporter from the two callbacks; either may
// be nil. A nil errs propagates fatal errors unchanged; a nil
// warnings drops diagnostics.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(d Diagnostic) {
	if r.warnings != nil {
		r.warnings(d)
	}
}

// Queue is a Reporter that retains recoverable diagnostics in the
// order they were enqueued and propagates fatal errors unchanged.
// Enqueueing never fails and never reorders.
//
// A Queue may be shared by parsers running on separate goroutines.
type Queue struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Error implements Reporter; fatal errors pass through, they are
// never queued.
func (q *Queue) Error(err ErrorWithPos) error {
	return err
}

// Warning implements Reporter.
func (q *Queue) Warning(d Diagnostic) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.diags = append(q.diags, d)
}

// Diagnostics returns the queued diagnostics in insertion order.
func (q *Queue) Diagnostics() []Diagnostic {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.diags[:len(q.diags):len(q.diags)]
}

// Empty reports whether no diagnostics have been queued.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.diags) == 0
}

var _ Reporter = (*Queue)(nil)

// Handler is the interface between a single parse and its Reporter.
// It latches the first fatal error so that once a parse has failed,
// every subsequent handle call returns the same error.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a Handler for the given reporter. A nil rep gets
// the default behavior: fatal errors abort, diagnostics are dropped.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a fatal positioned error and returns the error
// the parse should abort with.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports a fatal error. If err is an [ErrorWithPos] it
// is routed through the reporter, which may suppress it.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarningf reports a recoverable diagnostic. It never fails and
// never aborts the parse.
func (h *Handler) HandleWarningf(sev Severity, pos ast.SourcePos, format string, args ...any) {
	// No lock: diagnostics don't touch the latched error state.
	h.reporter.Warning(Diagnostic{
		Severity: sev,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Err returns the error the parse failed with, if any. If errors were
// reported but all suppressed by the reporter, it returns
// [ErrInvalidSource].
func (h *Handler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}
