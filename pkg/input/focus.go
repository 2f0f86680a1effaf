package input

import "sync"

// FocusDirection is the traversal requested by a platform focus signal.
type FocusDirection int

const (
	FocusNext FocusDirection = iota // Tab
	FocusPrev // Shift+Tab
	FocusUp // ArrowUp
	FocusDown // ArrowDown
)

// Focusable is one candidate in the keyboard-focus traversal order.
type Focusable struct {
	ID AccessibilityID
	Group string
	HasGroup bool
}

// FocusGraph supplies the focusable subset of the tree, in document
// pre-order, for traversal.
type FocusGraph interface {
	FocusablesInOrder() []Focusable
}

type focusState struct {
	mu sync.Mutex
	focused AccessibilityID
	hasFocus bool
}

func newFocusState() *focusState {
	return &focusState{}
}

// Focused returns the currently focused node, if any.
func (r *Router) Focused() (AccessibilityID, bool) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.focus.focused, r.focus.hasFocus
}

// SetFocus assigns the focused node directly, bypassing traversal (used at
// mount time or by an explicit host/programmatic focus() call).
func (r *Router) SetFocus(id AccessibilityID) {
	r.stateMu.Lock()
	r.focus.focused = id
	r.focus.hasFocus = true
	r.stateMu.Unlock()
}

// FocusAccessibilityNode walks graph's focusable subset to find the next
// target for dir and makes it the focused node. If the previously focused
// node no longer appears in graph, reports AccessibilityMissing and
// recovers by focusing the first node in document order.
func (r *Router) FocusAccessibilityNode(graph FocusGraph, dir FocusDirection) (AccessibilityID, error) {
	order := graph.FocusablesInOrder()
	if len(order) == 0 {
		return 0, &AccessibilityMissingError{}
	}

	r.stateMu.Lock()
	current, hasFocus := r.focus.focused, r.focus.hasFocus
	r.stateMu.Unlock()

	idx := -1
	if hasFocus {
		for i, f := range order {
			if f.ID == current {
				idx = i
				break
			}
		}
	}

	if hasFocus && idx == -1 {
		missing := &AccessibilityMissingError{ID: current}
		r.SetFocus(order[0].ID)
		if r.OnError != nil {
			r.OnError(missing)
		}
		return order[0].ID, missing
	}

	next := traverseFocus(order, idx, dir)
	r.SetFocus(next.ID)
	return next.ID, nil
}

func traverseFocus(order []Focusable, idx int, dir FocusDirection) Focusable {
	n := len(order)
	switch dir {
	case FocusPrev:
		i := idx - 1
		if i < 0 {
			i = n - 1
		}
		return order[i]
	case FocusUp, FocusDown:
		cur := Focusable{}
		if idx >= 0 {
			cur = order[idx]
		}
		if cur.HasGroup {
			return traverseWithinGroup(order, idx, cur.Group, dir == FocusDown)
		}
		fallthrough
	default: // FocusNext
		i := idx + 1
		if i >= n {
			i = 0
		}
		return order[i]
	}
}

func traverseWithinGroup(order []Focusable, idx int, group string, forward bool) Focusable {
	n := len(order)
	step := -1
	if forward {
		step = 1
	}
	i := idx
	for k := 0; k < n; k++ {
		i = (i + step + n) % n
		if order[i].HasGroup && order[i].Group == group {
			return order[i]
		}
	}
	return order[idx]
}
