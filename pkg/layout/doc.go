// Package layout implements Torin, the flexbox-like layout engine that
// computes each node's area (post-margin rectangle) and inner_area
// (post-padding rectangle) from a root rectangle and a tree of layout
// nodes, by a two-phase measure/place walk with incremental dirty
// tracking.
package layout
