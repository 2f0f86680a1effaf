package core

import "reflect"

var anySliceType = reflect.TypeOf([]any(nil))

type effectData struct {
	deps     []any
	prevDeps []any
	hasPrev  bool
	body     func() func()
	cleanup  func()
	pending  bool
}

// UseEffect registers a side effect that runs after the render pass
// completes, whenever deps compares unequal to the previous revision's (by
// reflect.DeepEqual element-wise), or unconditionally on the first render.
// body may return a cleanup function, run before the next invocation and at
// teardown.
func UseEffect(s *Scope, deps []any, body func() func()) {
	idx := s.nextSlot(slotEffect)
	if idx < len(s.slots) {
		existing := s.checkSlot(idx, slotEffect, anySliceType)
		ed := existing.data.(*effectData)
		changed := !depsEqual(ed.deps, deps)
		ed.prevDeps = ed.deps
		ed.deps = deps
		ed.hasPrev = true
		ed.body = body
		if changed {
			ed.pending = true
		}
		return
	}
	ed := &effectData{deps: deps, body: body, pending: true}
	s.appendSlot(slot{kind: slotEffect, typ: anySliceType, data: ed})
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// runPendingEffects executes, in registration order, every effect slot
// whose dependencies changed (or which has never run), running the
// previous cleanup first.
func (s *Scope) runPendingEffects() {
	for _, sl := range s.slots {
		if sl.kind != slotEffect {
			continue
		}
		ed := sl.data.(*effectData)
		if !ed.pending {
			continue
		}
		ed.pending = false
		if ed.cleanup != nil {
			ed.cleanup()
			ed.cleanup = nil
		}
		if ed.body != nil {
			ed.cleanup = ed.body()
		}
	}
}

type memoData struct {
	deps    []any
	hasPrev bool
	value   any
}

// UseMemo memoizes the result of body, recomputing only when deps compares
// unequal to the previous revision's. Unlike UseEffect, the value is
// available immediately within the same render pass.
func UseMemo[T any](s *Scope, deps []any, body func() T) T {
	idx := s.nextSlot(slotMemo)
	typ := reflect.TypeOf((*T)(nil))
	if idx < len(s.slots) {
		existing := s.checkSlot(idx, slotMemo, typ)
		md := existing.data.(*memoData)
		if !depsEqual(md.deps, deps) {
			md.value = body()
			md.deps = deps
		}
		return md.value.(T)
	}
	v := body()
	md := &memoData{deps: deps, hasPrev: true, value: v}
	s.appendSlot(slot{kind: slotMemo, typ: typ, data: md})
	return v
}
