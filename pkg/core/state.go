package core

import (
	"reflect"
	"sync"
)

// cellHeader is the type-erased bookkeeping shared by every State[T] cell:
// its subscriber set and liveness flag. Keeping it untyped lets Scope track
// "which cells were read this render" without a type parameter leaking
// into Scope itself.
type cellHeader struct {
	mu sync.Mutex
	owner *Scope
	slotIdx int
	subscribers map[ScopeID]struct{}
	live bool
}

func (c *cellHeader) subscribe(id ScopeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribers == nil {
		c.subscribers = make(map[ScopeID]struct{})
	}
	c.subscribers[id] = struct{}{}
}

func (c *cellHeader) unsubscribe(id ScopeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribers, id)
}

func (c *cellHeader) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = false
}

func (c *cellHeader) snapshotSubscribers() []ScopeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]ScopeID, 0, len(c.subscribers))
	for id := range c.subscribers {
		ids = append(ids, id)
	}
	return ids
}

// State is a reactive value cell allocated in a scope's arena. A State
// handle retained after its owning scope tears down yields ErrStaleCell
// from Get/Set rather than silently reading garbage.
type State[T any] struct {
	cellHeader
	value T
}

// UseState allocates a state cell on first render of scope s and returns
// the same handle on every subsequent render. Reading subscribes s (the
// currently rendering scope — not necessarily the cell's owner) to future
// writes.
func UseState[T any](s *Scope, init func() T) *State[T] {
	idx := s.nextSlot(slotState)
	typ := reflect.TypeOf((*T)(nil))
	if idx < len(s.slots) {
		existing := s.checkSlot(idx, slotState, typ)
		cell := existing.data.(*State[T])
		s.trackRead(&cell.cellHeader)
		return cell
	}
	cell := &State[T]{value: init()}
	cell.owner = s
	cell.slotIdx = idx
	cell.live = true
	s.appendSlot(slot{kind: slotState, typ: typ, data: cell})
	s.trackRead(&cell.cellHeader)
	return cell
}

// Get returns the cell's current value and subscribes the currently
// rendering scope (if any) to future changes.
func (c *State[T]) Get() T {
	c.mu.Lock()
	if !c.live {
		owner := c.owner
		idx := c.slotIdx
		c.mu.Unlock()
		panic(&ErrStaleCell{ScopeID: owner.ID, SlotIdx: idx})
	}
	v := c.value
	owner := c.owner
	c.mu.Unlock()
	owner.trackRead(&c.cellHeader)
	return v
}

// Set updates the cell's value if it differs from the current value (by
// reflect.DeepEqual) and marks every subscribed scope dirty. It never
// renders synchronously: the affected scopes are picked up on the next
// Runtime.Poll.
func (c *State[T]) Set(v T) {
	c.mu.Lock()
	if !c.live {
		owner := c.owner
		idx := c.slotIdx
		c.mu.Unlock()
		panic(&ErrStaleCell{ScopeID: owner.ID, SlotIdx: idx})
	}
	if reflect.DeepEqual(c.value, v) {
		c.mu.Unlock()
		return
	}
	c.value = v
	owner := c.owner
	c.mu.Unlock()

	subs := c.snapshotSubscribers()
	owner.rt.MarkDirty(subs...)
}

// Update reads the current value, applies fn, and writes the result back —
// a convenience for read-modify-write patterns that avoids a separate
// Get/Set round trip racing a concurrent writer.
func (c *State[T]) Update(fn func(T) T) {
	c.mu.Lock()
	if !c.live {
		owner := c.owner
		idx := c.slotIdx
		c.mu.Unlock()
		panic(&ErrStaleCell{ScopeID: owner.ID, SlotIdx: idx})
	}
	next := fn(c.value)
	if reflect.DeepEqual(c.value, next) {
		c.mu.Unlock()
		return
	}
	c.value = next
	owner := c.owner
	c.mu.Unlock()

	subs := c.snapshotSubscribers()
	owner.rt.MarkDirty(subs...)
}
