package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends reported errors to Sentry via the hub API, with the
// ErrorContext's tags/extras/breadcrumbs attached through a scoped capture.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the underlying sentry.ClientOptions passed to
// sentry.Init.
type SentryOption func(*sentry.ClientOptions)

// WithDebug turns on Sentry's own debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every event with environment.
func WithEnvironment(environment string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = environment }
}

// WithRelease tags every event with release.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// WithBeforeSend installs a hook to filter or modify events before they are
// sent.
func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) SentryOption {
	return func(o *sentry.ClientOptions) { o.BeforeSend = fn }
}

// NewSentryReporter initializes the Sentry SDK with dsn (an empty dsn
// disables sending, useful in tests) and returns a reporter bound to the
// current hub.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, err
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) ReportError(err error, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("source", ctx.Source)
		scope.SetTag("scope_id", ctx.ScopeID)
		scope.SetTag("node_id", ctx.NodeID)
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		for _, bc := range ctx.Breadcrumbs {
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Category:  bc.Category,
				Message:   bc.Message,
				Level:     sentry.Level(bc.Level),
				Timestamp: bc.Timestamp,
				Data:      bc.Data,
			}, MaxBreadcrumbs)
		}
		r.hub.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *SentryReporter) Flush(timeout time.Duration) error {
	sentry.Flush(timeout)
	return nil
}
