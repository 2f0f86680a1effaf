package input

import "time"

// NodeID identifies one node in the element/layout tree this router hit-
// tests against. Callers (pkg/runtime) derive it from the same identity
// space as tree.NodeID/layout.NodeID.
type NodeID uint64

// AccessibilityID identifies a focus-traversable node, independent of
// NodeID so a host can expose a stable id across tree mutations if it
// chooses to; pkg/runtime is free to use the same numeric space as NodeID.
type AccessibilityID uint64

// Kind discriminates the raw and derived event taxonomy.
type Kind int

const (
	KindMouse Kind = iota
	KindWheel
	KindKeyboard
	KindTouch
	KindFile
	KindPointerEnter
	KindPointerLeave
	KindPress
	KindSized
	KindFocus
	KindBlur
)

// MouseButton identifies which pointer button a Mouse/Press event reports.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers reports which keyboard modifiers were held during a Keyboard
// event.
type Modifiers struct {
	Shift, Control, Alt, Meta bool
}

// TouchPhase mirrors a platform's touch-sequence state machine.
type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// Point is a 2D coordinate in the same space as layout.Point2D.
type Point struct {
	X, Y float64
}

// Event is one routed input occurrence: either a raw platform event or one
// the router derived (PointerEnter/Leave, Press, Sized, Focus, Blur).
type Event struct {
	Kind Kind
	Name string // e.g. "click", "mousemove", "keydown" — matches handler keys

	// Pointer-ish fields (Mouse, Wheel, Touch, PointerEnter/Leave, Press).
	Location       Point
	GlobalLocation Point
	Button         MouseButton
	WheelDelta     Point

	// Keyboard fields.
	Key       string
	Code      string
	Modifiers Modifiers

	// Touch fields.
	FingerID uint64
	Phase    TouchPhase
	Force    float64
	HasForce bool

	// File fields.
	FilePath  string
	HasFile   bool

	// Press-specific: click count within the 500ms/5px combo window.
	ClickCount int

	At time.Time
}

// IsMoved reports whether this event represents pointer motion.
func (e Event) IsMoved() bool {
	return e.Kind == KindMouse && (e.Name == "mousemove" || e.Name == "pointermove")
}

// IsEnter reports whether this is a derived PointerEnter/Focus event.
func (e Event) IsEnter() bool {
	return e.Kind == KindPointerEnter || e.Kind == KindFocus
}

// IsPressed reports whether this event represents a press-down.
func (e Event) IsPressed() bool {
	if e.Kind == KindPress {
		return true
	}
	return e.Kind == KindMouse && e.Name == "mousedown"
}

// IsReleased reports whether this event represents a press-up.
func (e Event) IsReleased() bool {
	return e.Kind == KindMouse && e.Name == "mouseup"
}

// IsGlobal reports whether this event routes to every registered handler
// for its name regardless of hit-test, per the onglobal*/oncaptureglobal*
// handler-name convention.
func (e Event) IsGlobal() bool {
	switch e.Kind {
	case KindSized, KindFocus, KindBlur:
		return true
	default:
		return false
	}
}

// DoesBubble reports whether an ancestor of the target receives this event
// after the target phase. Sized/Focus/Blur and pointer enter/leave are
// target-only.
func (e Event) DoesBubble() bool {
	switch e.Kind {
	case KindSized, KindFocus, KindBlur, KindPointerEnter, KindPointerLeave:
		return false
	default:
		return true
	}
}

// DoesGoThroughSolid reports whether this event continues past a node with
// an opaque background once it has already hit one. Wheel passes through
// (so scroll containers beneath a panel still receive it); pointer press/
// click does not.
func (e Event) DoesGoThroughSolid() bool {
	return e.Kind == KindWheel
}
