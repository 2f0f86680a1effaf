// Package devtools exposes read-only snapshots of a running runtime.Runtime
// over the Model Context Protocol (github.com/modelcontextprotocol/go-sdk),
// so an editor or agent can inspect the live scope tree and layout tree of
// an embedded host without a GUI devtools panel.
//
// Only the introspection hook lives here: two resources (loom://scopes,
// loom://layout) and a find_node tool. There is no component state
// history, event log, or export/import surface — those concerns belong to
// a full devtools panel, which is out of scope for the core module.
package devtools
