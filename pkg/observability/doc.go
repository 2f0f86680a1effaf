// Package observability is the pluggable error-reporting sink a host wires
// into pkg/core.Runtime.OnError, pkg/input.Router.OnError, and
// pkg/layout.Torin.OnError: a ConsoleReporter for development, a
// SentryReporter for production, plus a breadcrumb trail recorded alongside
// whichever reporter is active.
//
// With no reporter configured, Sink's adapter still exists but every report
// is silently dropped — the scope/layout/focus recoveries that feed it stay
// zero-overhead by default.
package observability
