// Package style parses and formats the style facet's attribute vocabulary
// names but never models as concrete types: Color, Border,
// Shadow, and Gaps. Parse failures recover to each attribute's default and
// are reported as *ParseError //
// Grounded on the original source's crates/state/src/values (border.rs,
// gaps.rs) and crates/core/src/values (shadow.rs): a small hand-rolled
// whitespace-tokenizing parser per type and a matching fmt.Stringer for the
// canonical round-trip form.
package style
