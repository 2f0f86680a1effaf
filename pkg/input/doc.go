// Package input routes raw platform input against a laid-out element
// tree: hit-testing with viewport clipping, derived pointer/press events,
// capture/target/bubble dispatch, and keyboard focus traversal.
package input
