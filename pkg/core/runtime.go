package core

import (
	"sort"
	"sync"
)

// RenderResult is the outcome of re-running one dirty scope's render
// function during a Poll pass.
type RenderResult struct {
	ScopeID ScopeID
	Output any
	Err error
}

// Runtime owns one reactive execution environment: the scope registry, the
// dirty work set, and task bookkeeping. Embedding more than one Runtime in
// a host (e.g. multiple windows) is supported because nothing here is a
// package-level global; every method takes the Runtime explicitly.
type Runtime struct {
	mu sync.Mutex
	scopes map[ScopeID]*Scope
	nextID uint64
	work map[ScopeID]struct{}
	rendering *Scope

	tasks *taskRegistry

	// OnError receives fatal errors (HookMismatch, StaleCell) surfaced from
	// a render pass. It is the host-supplied sink — see pkg/observability
	// for a ready-made implementation.
	OnError func(error)
}

// NewRuntime creates an empty runtime with no scopes.
func NewRuntime() *Runtime {
	rt := &Runtime{
		scopes: make(map[ScopeID]*Scope),
		work: make(map[ScopeID]struct{}),
	}
	rt.tasks = newTaskRegistry(rt)
	return rt
}

func (rt *Runtime) currentRenderer() *Scope {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.rendering
}

func (rt *Runtime) lookup(id ScopeID) *Scope {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.scopes[id]
}

// NewScope creates and registers a new scope as a child of parent (or a
// root scope if parent is nil), with the given diagnostic name.
func (rt *Runtime) NewScope(parent *Scope, name string) *Scope {
	rt.mu.Lock()
	rt.nextID++
	id := ScopeID(rt.nextID)
	height := 0
	var parentID ScopeID
	hasParent := false
	if parent != nil {
		height = parent.Height + 1
		parentID = parent.ID
		hasParent = true
	}
	s := newScope(rt, id, parentID, hasParent, height, name)
	rt.scopes[id] = s
	rt.mu.Unlock()
	return s
}

// MarkDirty enqueues scope ids for the next Poll. Safe to call from any
// goroutine (e.g. a background task completing).
func (rt *Runtime) MarkDirty(ids ...ScopeID) {
	if len(ids) == 0 {
		return
	}
	rt.mu.Lock()
	for _, id := range ids {
		rt.work[id] = struct{}{}
	}
	rt.mu.Unlock()
}

// Poll drains the work set, rendering each dirty scope once, in
// ancestor-before-descendant order (lower Height first). It returns the
// ordered results so the caller (the element-tree diff engine) can
// reconcile each scope's new output.
func (rt *Runtime) Poll() []RenderResult {
	rt.mu.Lock()
	ids := make([]ScopeID, 0, len(rt.work))
	for id := range rt.work {
		ids = append(ids, id)
	}
	rt.work = make(map[ScopeID]struct{})
	rt.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool {
		si, sj := rt.lookup(ids[i]), rt.lookup(ids[j])
		hi, hj := -1, -1
		if si != nil {
			hi = si.Height
		}
		if sj != nil {
			hj = sj.Height
		}
		if hi != hj {
			return hi < hj
		}
		return ids[i] < ids[j]
	})

	results := make([]RenderResult, 0, len(ids))
	for _, id := range ids {
		s := rt.lookup(id)
		if s == nil || s.torn || s.render == nil {
			continue
		}
		out, err := rt.renderScope(s)
		results = append(results, RenderResult{ScopeID: id, Output: out, Err: err})
	}
	return results
}

// RenderNow runs s's render function immediately, outside of the Poll
// cycle. Used for a scope's very first render at mount time, when the
// element-tree engine needs its output synchronously to keep expanding the
// tree; subsequent re-renders triggered by state writes always go through
// Poll.
func (rt *Runtime) RenderNow(s *Scope) RenderResult {
	out, err := rt.renderScope(s)
	return RenderResult{ScopeID: s.ID, Output: out, Err: err}
}

// HasPendingWork reports whether any scope is currently queued for the next
// Poll call.
func (rt *Runtime) HasPendingWork() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.work) > 0
}

func (rt *Runtime) renderScope(s *Scope) (out any, err error) {
	// Invariant 3: clear prior subscriptions before the render begins.
	for cell := range s.reads {
		cell.unsubscribe(s.ID)
	}
	s.reads = make(map[*cellHeader]struct{})
	s.slotCursor = 0

	rt.mu.Lock()
	prevRendering := rt.rendering
	rt.rendering = s
	rt.mu.Unlock()

	func() {
		defer func() {
			if r := recover(); r != nil {
				switch e := r.(type) {
				case *ErrHookMismatch:
					err = e
				case *ErrStaleCell:
					err = e
				default:
					rt.mu.Lock()
					rt.rendering = prevRendering
					rt.mu.Unlock()
					panic(r)
				}
			}
		}()
		out, err = s.render(s)
	}()

	rt.mu.Lock()
	rt.rendering = prevRendering
	rt.mu.Unlock()

	if err == nil {
		if s.slotCursor < len(s.slots) {
			err = &ErrHookMismatch{
				ScopeID: s.ID,
				SlotIdx: s.slotCursor,
				Expected: "all recorded hooks",
				Got: "fewer hooks called",
			}
		}
	}
	s.firstRender = false

	if err != nil && rt.OnError != nil {
		rt.OnError(err)
	}

	s.runPendingEffects()

	return out, err
}

// Teardown destroys a scope: cancels its tasks, runs its drop callbacks,
// invalidates every state cell it owns (so later access yields
// ErrStaleCell), unsubscribes it from every cell it was reading, and
// removes it from the registry. Callers must teardown children before
// their parent to honor lifecycle ordering, but Teardown itself
// does not recurse — the element-tree diff engine owns the parent/child
// walk because only it knows the current child list.
func (rt *Runtime) Teardown(s *Scope) {
	if s.torn {
		return
	}
	s.torn = true

	for _, cancel := range s.tasks {
		cancel()
	}
	s.tasks = nil

	for i := len(s.dropFns) - 1; i >= 0; i-- {
		s.dropFns[i]()
	}
	s.dropFns = nil

	for _, sl := range s.slots {
		switch sl.kind {
		case slotState:
			if ch, ok := sl.data.(interface{ invalidate() }); ok {
				ch.invalidate()
			}
		case slotEffect:
			if ed := sl.data.(*effectData); ed.cleanup != nil {
				ed.cleanup()
				ed.cleanup = nil
			}
		}
	}

	for cell := range s.reads {
		cell.unsubscribe(s.ID)
	}
	s.reads = nil

	rt.mu.Lock()
	delete(rt.scopes, s.ID)
	delete(rt.work, s.ID)
	rt.mu.Unlock()
}
