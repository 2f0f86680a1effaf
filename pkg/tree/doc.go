// Package tree converts the Element values returned by component render
// functions into a persistent node tree, reconciling each revision against
// the previous one to emit the minimal set of mutations a downstream layout
// and paint stage needs to apply.
package tree
