package observability

import (
	"log"
	"sync"
	"time"
)

// ConsoleReporter logs reported errors to stderr. Meant for development;
// verbose mode also prints the captured stack trace.
type ConsoleReporter struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleReporter returns a reporter that logs to stderr via the
// standard log package.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{verbose: verbose}
}

func (r *ConsoleReporter) ReportError(err error, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Printf("[ERROR] %s scope=%s node=%s: %v", ctx.Source, ctx.ScopeID, ctx.NodeID, err)
	if r.verbose && len(ctx.StackTrace) > 0 {
		log.Printf("stack trace:\n%s", ctx.StackTrace)
	}
}

// Flush is a no-op; console output is immediate.
func (r *ConsoleReporter) Flush(timeout time.Duration) error {
	return nil
}
