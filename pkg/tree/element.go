package tree

import "reflect"

// DiffKeyKind discriminates the three ways an Element can be matched across
// consecutive renders.
type DiffKeyKind int

const (
	// KeyNone means the element carries no explicit key and is matched
	// positionally within its identity-equivalence class.
	KeyNone DiffKeyKind = iota
	// KeyHash means the element carries an explicit hashed key (e.g. from
	// a list's item id).
	KeyHash
	// KeyPtr means the element is keyed by a function pointer, used when a
	// component identifies its own instances (rare; mostly an
	// implementation escape hatch).
	KeyPtr
)

// DiffKey identifies one Element instance across renders. Two elements at
// the same tree position with equal DiffKeys and the same component/tag
// identity are considered the same instance and retain their node (and, for
// components, their Scope).
type DiffKey struct {
	Kind DiffKeyKind
	Hash uint64
	Ptr  uintptr
}

// NoKey is the zero-value DiffKey: unkeyed, matched positionally.
var NoKey = DiffKey{Kind: KeyNone}

// HashKey builds a DiffKey from an already-hashed value, typically a list
// item's stable id run through a fixed hasher.
func HashKey(h uint64) DiffKey {
	return DiffKey{Kind: KeyHash, Hash: h}
}

func (k DiffKey) equal(o DiffKey) bool {
	if k.Kind != o.Kind {
		return false
	}
	switch k.Kind {
	case KeyHash:
		return k.Hash == o.Hash
	case KeyPtr:
		return k.Ptr == o.Ptr
	default:
		return false
	}
}

// Element is an immutable tree value produced by component code. The
// concrete variants are Primitive, ComponentElement, and TextElement.
type Element interface {
	diffKey() DiffKey
	// identity groups elements for matching: the component function
	// pointer for ComponentElement, the tag name for Primitive, and a
	// fixed sentinel for TextElement. Two elements with different
	// identities never match, regardless of key.
	identity() any
}

// Primitive is a concrete paintable node: rect, label, paragraph, image,
// svg, or canvas, per its Tag.
type Primitive struct {
	Tag      string
	Style    any
	Layout   any
	Children []Element
	Handlers map[string]any
	Key      DiffKey
}

func (p *Primitive) diffKey() DiffKey { return p.Key }
func (p *Primitive) identity() any    { return p.Tag }

// CompFn is a component's render body: given its scope and props, it
// returns the Element subtree the component expands to.
type CompFn func(scope any, props any) (Element, error)

// ComponentElement defers expansion to reconciliation time: the tree engine
// spawns (or reuses) a Scope for it and calls CompFn to obtain its output
// Element.
type ComponentElement struct {
	Key     DiffKey
	CompFn  CompFn
	FnID    uintptr
	Props   any
	DevName string
}

func (c *ComponentElement) diffKey() DiffKey { return c.Key }
func (c *ComponentElement) identity() any    { return c.FnID }

// NewComponentElement builds a ComponentElement, deriving FnID from fn's
// code pointer so two renders that pass "the same" component function
// (even as distinct closures over identical captured state) are recognized
// as the same identity class.
func NewComponentElement(fn CompFn, key DiffKey, props any, devName string) *ComponentElement {
	return &ComponentElement{
		Key:     key,
		CompFn:  fn,
		FnID:    reflect.ValueOf(fn).Pointer(),
		Props:   props,
		DevName: devName,
	}
}

// TextElement is a leaf string, typically a child of a paragraph primitive.
type TextElement struct {
	Content string
}

func (t *TextElement) diffKey() DiffKey { return NoKey }
func (t *TextElement) identity() any    { return textIdentitySentinel }

type textIdentity struct{}

var textIdentitySentinel = textIdentity{}
