package input

import (
	"testing"
	"time"
)

// fakeFrame is a minimal Frame over a flat two-node scene used across the
// router tests.
type fakeFrame struct {
	areas map[NodeID]Rect
	order []NodeID // front-first
	ancestors map[NodeID][]NodeID
	solid map[NodeID]bool
	removed map[NodeID]bool
}

func newFakeFrame() *fakeFrame {
	return &fakeFrame{
		areas: map[NodeID]Rect{},
		ancestors: map[NodeID][]NodeID{},
		solid: map[NodeID]bool{},
		removed: map[NodeID]bool{},
	}
}

func (f *fakeFrame) LayersTopFirst() []NodeID { return f.order }
func (f *fakeFrame) Area(id NodeID) (Rect, bool) {
	r, ok := f.areas[id]
	return r, ok
}
func (f *fakeFrame) Viewports(NodeID) []Rect { return nil }
func (f *fakeFrame) IsSolid(id NodeID) bool { return f.solid[id] }
func (f *fakeFrame) Ancestors(id NodeID) []NodeID { return f.ancestors[id] }
func (f *fakeFrame) Exists(id NodeID) bool { return !f.removed[id] }

func mouseAt(x, y float64) Event {
	return Event{Kind: KindMouse, Name: "click", Location: Point{X: x, Y: y}, At: time.Now()}
}

// Parent has onclick, child has onclick that stops propagation. A click
// inside the child fires the child's handler exactly once and the
// parent's zero times.
func TestDispatchStopPropagationBlocksBubble(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 100, H: 100} // parent
	frame.areas[2] = Rect{X: 10, Y: 10, W: 20, H: 20} // child
	frame.order = []NodeID{2, 1}
	frame.ancestors[2] = []NodeID{1}
	frame.solid[2] = true

	r := NewRouter()
	parentCalls, childCalls := 0, 0
	r.On(1, "click", func(*Context) { parentCalls++ })
	r.On(2, "click", func(ctx *Context) { childCalls++; ctx.StopPropagation() })

	target, hit, _ := r.Dispatch(frame, mouseAt(15, 15))

	if !hit || target != 2 {
		t.Fatalf("target = %v hit=%v, want node 2", target, hit)
	}
	if childCalls != 1 {
		t.Fatalf("child handler called %d times, want 1", childCalls)
	}
	if parentCalls != 0 {
		t.Fatalf("parent handler called %d times, want 0 (stopped propagation)", parentCalls)
	}
}

func TestDispatchBubblesWithoutStopPropagation(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 100, H: 100}
	frame.areas[2] = Rect{X: 10, Y: 10, W: 20, H: 20}
	frame.order = []NodeID{2, 1}
	frame.ancestors[2] = []NodeID{1}
	frame.solid[2] = true

	r := NewRouter()
	var calls []string
	r.On(1, "click", func(*Context) { calls = append(calls, "parent") })
	r.On(2, "click", func(*Context) { calls = append(calls, "child") })

	r.Dispatch(frame, mouseAt(15, 15))

	if len(calls) != 2 || calls[0] != "child" || calls[1] != "parent" {
		t.Fatalf("dispatch order = %v, want [child parent]", calls)
	}
}

func TestDispatchCaptureRunsBeforeBubble(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 100, H: 100}
	frame.ancestors[1] = nil
	frame.order = []NodeID{1}

	r := NewRouter()
	var calls []string
	r.OnCapture(1, "click", func(*Context) { calls = append(calls, "capture") })
	r.On(1, "click", func(*Context) { calls = append(calls, "bubble") })

	r.Dispatch(frame, mouseAt(5, 5))

	if len(calls) != 2 || calls[0] != "capture" || calls[1] != "bubble" {
		t.Fatalf("calls = %v, want [capture bubble]", calls)
	}
}

// A click with no candidate target emits no events.
func TestDispatchNoTargetEmitsNothing(t *testing.T) {
	frame := newFakeFrame()
	r := NewRouter()
	calls := 0
	r.On(1, "click", func(*Context) { calls++ })

	_, hit, _ := r.Dispatch(frame, mouseAt(500, 500))

	if hit {
		t.Fatalf("expected no hit")
	}
	if calls != 0 {
		t.Fatalf("handler called %d times, want 0", calls)
	}
}

// PointerMove from (5,5) to (60,60) over two adjacent 50x50 nodes A
// (0-50,0-50) and B (50-100,50-100) yields PointerEnter(A) at start, then
// PointerLeave(A) followed by PointerEnter(B).
func TestPointerMoveDerivesEnterLeaveSequence(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 50, H: 50} // A
	frame.areas[2] = Rect{X: 50, Y: 50, W: 50, H: 50} // B
	frame.order = []NodeID{1, 2}
	frame.solid[1] = true
	frame.solid[2] = true

	r := NewRouter()
	var events []string
	r.On(1, "pointerenter", func(*Context) { events = append(events, "enter:A") })
	r.On(1, "pointerleave", func(*Context) { events = append(events, "leave:A") })
	r.On(2, "pointerenter", func(*Context) { events = append(events, "enter:B") })
	r.On(2, "pointerleave", func(*Context) { events = append(events, "leave:B") })

	move := func(x, y float64) Event {
		return Event{Kind: KindMouse, Name: "mousemove", Location: Point{X: x, Y: y}, At: time.Now()}
	}

	r.Dispatch(frame, move(5, 5))
	r.Dispatch(frame, move(60, 60))

	want := []string{"enter:A", "leave:A", "enter:B"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestClickComboCounterWithinWindowAndRadius(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 50, H: 50}
	frame.order = []NodeID{1}

	r := NewRouter()
	var counts []int
	r.On(1, "mousedown", func(ctx *Context) { counts = append(counts, ctx.Event.ClickCount) })

	now := time.Now()
	press := func(x, y float64, when time.Time) Event {
		return Event{Kind: KindMouse, Name: "mousedown", Location: Point{X: x, Y: y}, At: when}
	}

	r.Dispatch(frame, press(10, 10, now))
	r.Dispatch(frame, press(11, 11, now.Add(100*time.Millisecond)))
	r.Dispatch(frame, press(10, 10, now.Add(2*time.Second)))

	want := []int{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}

func TestDispatchDiscardsEventForDestroyedTarget(t *testing.T) {
	frame := newFakeFrame()
	frame.areas[1] = Rect{X: 0, Y: 0, W: 50, H: 50}
	frame.removed[1] = true

	r := NewRouter()
	calls := 0
	r.On(1, "click", func(*Context) { calls++ })

	r.DispatchToTarget(frame, mouseAt(5, 5), 1)

	if calls != 0 {
		t.Fatalf("handler called for a destroyed target")
	}
}

func TestOnGlobalFiresRegardlessOfHitTest(t *testing.T) {
	frame := newFakeFrame()
	r := NewRouter()
	calls := 0
	r.OnGlobal(1, "sized", func(*Context) { calls++ })

	r.Dispatch(frame, Event{Kind: KindSized, Name: "sized"})

	if calls != 1 {
		t.Fatalf("global handler called %d times, want 1", calls)
	}
}
