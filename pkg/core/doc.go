// Package core implements the reactive state and scope runtime: the
// execution environment in which component render functions run.
//
// A Scope is the live instance of a component. It owns a positional
// sequence of hook slots (state cells, effects, memos, futures, contexts),
// a reactive read-set used to build subscriptions, and an arena that bounds
// the lifetime of everything it allocates. Hooks must be called in the same
// order on every render of the same scope — the runtime enforces this by
// indexing slots positionally and asserting type and count match the prior
// revision.
//
// Scheduling is single-threaded and cooperative: writing to a State cell
// never renders synchronously. It enqueues the cell's subscriber scopes
// into a work set that the host drains by calling Runtime.Poll once per
// frame, in ancestor-before-descendant order.
package core
