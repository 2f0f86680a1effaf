package observability

import (
	"sync"
	"time"
)

// ErrorReporter is a pluggable sink for errors recovered from the render/
// layout/focus pipeline. If none is configured, errors are silently
// dropped (a nil check, zero overhead).
//
// Implementations must be safe for concurrent use.
type ErrorReporter interface {
	// ReportError reports err with ctx describing where it was recovered.
	ReportError(err error, ctx *ErrorContext)

	// Flush blocks until pending reports are sent or timeout elapses.
	Flush(timeout time.Duration) error
}

// ErrorContext carries the scope/node identity and surrounding breadcrumb
// trail for one reported error. All fields are optional.
type ErrorContext struct {
	// ScopeID names the reactive scope the error originated in, formatted
	// by the caller (core.ScopeID has no String method of its own).
	ScopeID string
	// NodeID names the tree/layout/input node involved, if any.
	NodeID string
	// Source names the subsystem the error was recovered in: "core",
	// "tree", "layout", "input", or "paint".
	Source string
	// Timestamp is when the error occurred.
	Timestamp time.Time
	// Tags are low-cardinality key/value pairs for filtering.
	Tags map[string]string
	// Extra holds arbitrary additional data, potentially high-cardinality.
	Extra map[string]interface{}
	// Breadcrumbs is the trail of events leading up to the error, oldest
	// first.
	Breadcrumbs []Breadcrumb
	// StackTrace is the stack trace captured at the point of recovery, if
	// any (runtime/debug.Stack()).
	StackTrace []byte
}

// Breadcrumb is one entry in the trail of events leading up to a reported
// error.
type Breadcrumb struct {
	Category  string
	Message   string
	Level     string
	Timestamp time.Time
	Data      map[string]interface{}
}

var (
	globalMu       sync.RWMutex
	globalReporter ErrorReporter
)

// SetErrorReporter installs the process-wide reporter. Pass nil to disable
// reporting.
func SetErrorReporter(r ErrorReporter) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalReporter = r
}

// GetErrorReporter returns the currently installed reporter, or nil.
func GetErrorReporter() ErrorReporter {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalReporter
}

// Sink adapts the globally configured reporter into the func(error) shape
// pkg/core.Runtime.OnError, pkg/input.Router.OnError, and
// pkg/layout.Torin.OnError all expect. source labels which of the three
// recovered err, and is attached to ctx.Source along with the buffered
// breadcrumb trail. Report is silently skipped when no reporter is
// installed.
func Sink(source string) func(error) {
	return func(err error) {
		reporter := GetErrorReporter()
		if reporter == nil {
			return
		}
		reporter.ReportError(err, &ErrorContext{
			Source:      source,
			Timestamp:   time.Now(),
			Breadcrumbs: GetBreadcrumbs(),
		})
	}
}
