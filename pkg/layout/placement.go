package layout

// resolvedChild carries a child's phase-1 resolved size ahead of phase-2
// placement.
type resolvedChild struct {
	id NodeID
	node *Node
	w, h float64
}

// layoutChildren implements two-phase measure/place for parent's children
// within its inner rectangle.
func (t *Torin) layoutChildren(parent NodeID, parentNode *Node, inner Rect, rootRect Rect, measurer Measurer, depth int) {
	kids := t.children[parent]
	if len(kids) == 0 {
		return
	}

	flowing := make([]resolvedChild, 0, len(kids))
	var absolute []NodeID

	for _, kid := range kids {
		kidNode, ok := t.nodes[kid]
		if !ok {
			continue
		}
		if kidNode.Position.Kind != PositionStatic {
			absolute = append(absolute, kid)
			continue
		}
		flowing = append(flowing, resolvedChild{id: kid, node: kidNode})
	}

	// Phase 1: resolve non-flexible sizes first, then distribute the
	// remaining main-axis space across Fill/FillMinimum children.
	mainIsWidth := parentNode.Direction == Horizontal
	mainAvail := inner.Size.Width
	if !mainIsWidth {
		mainAvail = inner.Size.Height
	}

	consumed := 0.0
	flexCount := 0
	for i := range flowing {
		c := &flowing[i]
		mainSize := c.node.Width
		if !mainIsWidth {
			mainSize = c.node.Height
		}
		if mainSize.isFlexible() {
			flexCount++
			continue
		}
		c.w = t.resolveAxis(c.id, c.node, c.node.Width, inner, rootRect, measurer, depth, true)
		c.h = t.resolveAxis(c.id, c.node, c.node.Height, inner, rootRect, measurer, depth, false)
		crossSize := c.node.Height
		if !mainIsWidth {
			crossSize = c.node.Width
		}
		if crossSize.isFlexible() {
			// cross-axis Fill is resolved against the parent's cross
			// size directly; no distribution needed since siblings don't
			// compete for the cross axis.
			if mainIsWidth {
				c.h = inner.Size.Height
			} else {
				c.w = inner.Size.Width
			}
		}
		if mainIsWidth {
			consumed += c.w
		} else {
			consumed += c.h
		}
	}
	if len(flowing) > 1 {
		consumed += parentNode.Spacing * float64(len(flowing)-1)
	}

	remaining := max0(mainAvail - consumed)
	var share float64
	if flexCount > 0 {
		share = remaining / float64(flexCount)
	}

	for i := range flowing {
		c := &flowing[i]
		mainSize := c.node.Width
		if !mainIsWidth {
			mainSize = c.node.Height
		}
		if !mainSize.isFlexible() {
			continue
		}
		v := share
		if mainSize.Kind == FillMinimum {
			bounded := t.measureIntrinsic(c.id, c.node, inner, rootRect, measurer, depth, mainIsWidth)
			if bounded > v {
				v = bounded
			}
		}
		if mainIsWidth {
			c.w = v
			c.h = t.resolveAxis(c.id, c.node, c.node.Height, inner, rootRect, measurer, depth, false)
		} else {
			c.h = v
			c.w = t.resolveAxis(c.id, c.node, c.node.Width, inner, rootRect, measurer, depth, true)
		}
	}

	for i := range flowing {
		c := &flowing[i]
		c.w = clampAxis(c.w, c.node.MinWidth, c.node.HasMinWidth, c.node.MaxWidth, c.node.HasMaxWidth, inner, rootRect, true)
		c.h = clampAxis(c.h, c.node.MinHeight, c.node.HasMinHeight, c.node.MaxHeight, c.node.HasMaxHeight, inner, rootRect, false)
	}

	// Phase 2: place into one or more lines (Wrap splits when the next
	// child would exceed the main axis).
	lines := splitLines(flowing, parentNode.Content, mainAvail, parentNode.Spacing, mainIsWidth)
	placeLines(t, lines, parentNode, inner, rootRect, mainIsWidth, measurer, depth)

	for _, kid := range absolute {
		t.placeOverride(kid, inner, rootRect, measurer, depth)
	}
}

func splitLines(children []resolvedChild, content Content, mainAvail, spacing float64, mainIsWidth bool) [][]resolvedChild {
	if content != ContentWrap {
		return [][]resolvedChild{children}
	}
	var lines [][]resolvedChild
	var cur []resolvedChild
	used := 0.0
	for _, c := range children {
		size := c.w
		if !mainIsWidth {
			size = c.h
		}
		next := used + size
		if len(cur) > 0 {
			next += spacing
		}
		if len(cur) > 0 && next > mainAvail {
			lines = append(lines, cur)
			cur = nil
			used = 0
		}
		if len(cur) > 0 {
			used += spacing
		}
		cur = append(cur, c)
		used += size
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func placeLines(t *Torin, lines [][]resolvedChild, parentNode *Node, inner Rect, rootRect Rect, mainIsWidth bool, measurer Measurer, depth int) {
	crossCursor := 0.0
	for _, line := range lines {
		lineCross := 0.0
		for _, c := range line {
			cs := c.h
			if !mainIsWidth {
				cs = c.w
			}
			if cs > lineCross {
				lineCross = cs
			}
		}

		mainUsed := 0.0
		for i, c := range line {
			if mainIsWidth {
				mainUsed += c.w
			} else {
				mainUsed += c.h
			}
			if i > 0 {
				mainUsed += parentNode.Spacing
			}
		}
		mainAvail := inner.Size.Width
		if !mainIsWidth {
			mainAvail = inner.Size.Height
		}
		leading, between := distribute(parentNode.MainAlign, mainAvail, mainUsed, len(line))

		mainCursor := leading
		for _, c := range line {
			crossSize := c.h
			if !mainIsWidth {
				crossSize = c.w
			}
			crossOffset := alignWithin(parentNode.CrossAlign, lineCross, crossSize)

			var origin Point2D
			if mainIsWidth {
				origin = Point2D{X: inner.Origin.X + mainCursor, Y: inner.Origin.Y + crossCursor + crossOffset}
			} else {
				origin = Point2D{X: inner.Origin.X + crossCursor + crossOffset, Y: inner.Origin.Y + mainCursor}
			}

			sizingCtx := Rect{Size: Size2D{Width: c.w, Height: c.h}}
			// measureResolvedChild hands measureNode a Pixels view of the
			// child sized c.w by c.h, so the child's own resolveSelfSize
			// call reproduces the phase-1 size instead of re-running flex
			// math.
			t.measureResolvedChild(c.id, c.node, sizingCtx, origin, inner, rootRect, measurer, depth)

			if mainIsWidth {
				mainCursor += c.w + parentNode.Spacing + between
			} else {
				mainCursor += c.h + parentNode.Spacing + between
			}
		}

		crossCursor += lineCross
		if len(lines) > 1 {
			crossCursor += parentNode.Spacing
		}
	}
}

// measureResolvedChild finishes measuring a child whose width/height were
// already resolved during phase 1 (including Fill distribution): it
// temporarily overrides the child's Size entries with the resolved Pixels
// values so measureNode's own resolveSelfSize reproduces the same numbers,
// then restores them.
func (t *Torin) measureResolvedChild(id NodeID, node *Node, resolved Rect, origin Point2D, parentInner Rect, rootRect Rect, measurer Measurer, depth int) {
	origW, origH := node.Width, node.Height
	node.Width = SizePixels(resolved.Size.Width)
	node.Height = SizePixels(resolved.Size.Height)
	t.measureNode(id, parentInner, origin, rootRect, measurer, depth)
	node.Width, node.Height = origW, origH
}

// distribute computes the leading offset and extra per-gap spacing for
// main_align, given the main-axis space available and already consumed by
// children (including inter-child spacing already baked into used).
func distribute(align Align, avail, used float64, n int) (leading, between float64) {
	free := max0(avail - used)
	switch align {
	case AlignCenter:
		return free / 2, 0
	case AlignEnd:
		return free, 0
	case AlignSpaceBetween:
		if n <= 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case AlignSpaceAround:
		if n == 0 {
			return 0, 0
		}
		gap := free / float64(n)
		return gap / 2, gap
	case AlignSpaceEvenly:
		gap := free / float64(n+1)
		return gap, gap
	default: // AlignStart
		return 0, 0
	}
}

// alignWithin returns the cross-axis offset of a child within the space
// available to it (a line's cross extent, or the parent's cross size).
func alignWithin(align Align, avail, size float64) float64 {
	free := max0(avail - size)
	switch align {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// placeOverride positions a non-static child per its Position, ignoring it
// for the purposes of sibling flow.
func (t *Torin) placeOverride(id NodeID, inner Rect, rootRect Rect, measurer Measurer, depth int) {
	node, ok := t.nodes[id]
	if !ok {
		return
	}

	w := t.resolveAxis(id, node, node.Width, inner, rootRect, measurer, depth, true)
	h := t.resolveAxis(id, node, node.Height, inner, rootRect, measurer, depth, false)

	var frame Rect
	switch node.Position.Kind {
	case PositionAbsolute:
		frame = inner
	default: // Global, Fixed — placed relative to the root rectangle; this
		// engine does not model separate scroll-offset containers, so
		// Fixed and Global coincide.
		frame = rootRect
	}

	x := frame.Origin.X
	if node.Position.HasLeft {
		x = frame.Origin.X + node.Position.Left
	} else if node.Position.HasRight {
		x = frame.Origin.X + frame.Size.Width - node.Position.Right - w
	}
	y := frame.Origin.Y
	if node.Position.HasTop {
		y = frame.Origin.Y + node.Position.Top
	} else if node.Position.HasBottom {
		y = frame.Origin.Y + frame.Size.Height - node.Position.Bottom - h
	}

	t.measureResolvedChild(id, node, Rect{Size: Size2D{Width: w, Height: h}}, Point2D{X: x, Y: y}, inner, rootRect, measurer, depth)
}
