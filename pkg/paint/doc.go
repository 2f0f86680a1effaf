// Package paint implements C5: the paragraph cache and the incremental
// compositor. It caches shaped text paragraphs keyed by style+content, and
// tracks per-frame invalidated nodes to compute the minimal set of layers
// and nodes a host must repaint.
package paint
