package style

// OverflowKind controls whether a node clips its children to its own area.
type OverflowKind int

const (
	OverflowVisible OverflowKind = iota
	OverflowClip
)

// Style is the concrete value pkg/runtime expects behind a
// tree.Primitive's Style field (declared as `any` in pkg/tree to keep that
// package decoupled from the attribute model). It covers the subset of
// attribute vocabulary the core wiring needs to drive hit
// testing, layering, and repaint: background/opacity (solid-background
// test), border/shadow (parsed, carried for the host's render_fn),
// layer, and overflow clipping.
type Style struct {
	Background    Color
	HasBackground bool
	Border        Border
	Shadow        Shadow
	HasShadow     bool
	Opacity       float64

	// Layer is the node's own declared layer offset, relative to its
	// parent's resolved stacking position — not an absolute layer index.
	// pkg/runtime resolves it to an absolute paint layer via
	// paint.ResolveLayer, inheriting each ancestor's offset down the tree.
	Layer int16

	Overflow OverflowKind
}

// IsSolid reports whether this style paints an opaque background, used by
// the hit-testing solid rule: a background is solid only if it is set and
// fully opaque.
func (s Style) IsSolid() bool {
	return s.HasBackground && s.Background.A == 255 && s.Opacity >= 1
}

// NewStyle returns the zero-value Style: no background, opaque (Opacity 1),
// layer 0, visible overflow.
func NewStyle() Style {
	return Style{Opacity: 1}
}
