package input

import "sync"

// HandlerFunc receives a routed event. Call ctx.StopPropagation to abort
// further capture/bubble phases, or ctx.PreventDefault to mark the event
// as cancelled (see PreventDefault).
type HandlerFunc func(ctx *Context)

// Context wraps the dispatched Event with the propagation controls
// handlers may invoke, mirroring stop_propagation()/
// prevent_default().
type Context struct {
	Event Event

	stopped bool
	prevented bool
}

// StopPropagation aborts any remaining capture/target/bubble phases for
// this dispatch.
func (c *Context) StopPropagation() { c.stopped = true }

// PreventDefault marks the event as cancelled; Dispatch returns the mark
// to its caller as prevented. The router drops nothing because of it:
// state derived before dispatch, such as a Press event's click-combo
// count, is already recorded.
func (c *Context) PreventDefault() { c.prevented = true }

type registration struct {
	handler HandlerFunc
	capture bool
	global bool
}

// Router registers per-node event handlers and dispatches routed Events
// against them following capture/target/bubble phases.
type Router struct {
	mu sync.RWMutex
	handlers map[NodeID]map[string][]registration

	stateMu sync.Mutex
	focus *focusState
	combo comboTracker
	hover NodeID
	hasHover bool

	// OnError receives AccessibilityMissing errors recovered during focus
	// traversal.
	OnError func(error)
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[NodeID]map[string][]registration),
		focus: newFocusState(),
	}
}

func (r *Router) register(node NodeID, name string, reg registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.handlers[node]
	if !ok {
		byName = make(map[string][]registration)
		r.handlers[node] = byName
	}
	byName[name] = append(byName[name], reg)
}

// On registers a bubble-phase handler for name on node: on{name}.
func (r *Router) On(node NodeID, name string, h HandlerFunc) {
	r.register(node, name, registration{handler: h})
}

// OnCapture registers a capture-phase handler for name on node:
// oncapture{name}.
func (r *Router) OnCapture(node NodeID, name string, h HandlerFunc) {
	r.register(node, name, registration{handler: h, capture: true})
}

// OnGlobal registers a handler for name that fires on every dispatch of
// that name regardless of hit-test: onglobal{name}.
func (r *Router) OnGlobal(node NodeID, name string, h HandlerFunc) {
	r.register(node, name, registration{handler: h, global: true})
}

// OnCaptureGlobal registers a capture-ordered global handler:
// oncaptureglobal{name}.
func (r *Router) OnCaptureGlobal(node NodeID, name string, h HandlerFunc) {
	r.register(node, name, registration{handler: h, capture: true, global: true})
}

// Remove discards every handler registered on node, used when pkg/tree
// tears down the element that declared them.
func (r *Router) Remove(node NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, node)
}

func (r *Router) handlersFor(node NodeID, name string) []registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]registration(nil), r.handlers[node][name]...)
}

func (r *Router) allGlobal(name string, capture bool) []HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []HandlerFunc
	for _, byName := range r.handlers {
		for _, reg := range byName[name] {
			if reg.global && reg.capture == capture {
				out = append(out, reg.handler)
			}
		}
	}
	return out
}

// Dispatch hit-tests ev against frame and routes it through capture,
// target, and (if ev.DoesBubble()) bubble phases. It returns the resolved
// target and whether any handler called PreventDefault.
func (r *Router) Dispatch(frame Frame, ev Event) (target NodeID, hit bool, prevented bool) {
	ev = r.deriveAndTrack(frame, ev)

	if ev.IsGlobal() {
		prevented = r.dispatchGlobalOnly(ev)
		return 0, false, prevented
	}

	target, hit = HitTest(frame, ev.Location, ev)
	if !hit {
		prevented = r.dispatchGlobalOnly(ev)
		return 0, false, prevented
	}
	prevented = r.DispatchToTarget(frame, ev, target)
	return target, true, prevented
}

// DispatchToTarget routes ev to a pre-resolved target (used for keyboard
// events, which target the focused node rather than a hit-tested point).
// Discards the event if target no longer exists in frame.
func (r *Router) DispatchToTarget(frame Frame, ev Event, target NodeID) (prevented bool) {
	if !frame.Exists(target) {
		return false
	}

	ctx := &Context{Event: ev}

	for _, h := range r.allGlobal(ev.Name, true) {
		h(ctx)
	}

	chain := append(append([]NodeID{}, frame.Ancestors(target)...), target)

	for _, id := range chain {
		if ctx.stopped {
			break
		}
		for _, reg := range r.handlersFor(id, ev.Name) {
			if reg.capture && !reg.global {
				reg.handler(ctx)
				if ctx.stopped {
					break
				}
			}
		}
	}

	if !ctx.stopped {
		for i := len(chain) - 1; i >= 0; i-- {
			id := chain[i]
			for _, reg := range r.handlersFor(id, ev.Name) {
				if !reg.capture && !reg.global {
					reg.handler(ctx)
					if ctx.stopped {
						break
					}
				}
			}
			if ctx.stopped || !ev.DoesBubble() {
				break
			}
		}
	}

	for _, h := range r.allGlobal(ev.Name, false) {
		h(ctx)
	}

	return ctx.prevented
}

func (r *Router) dispatchGlobalOnly(ev Event) (prevented bool) {
	ctx := &Context{Event: ev}
	for _, h := range r.allGlobal(ev.Name, true) {
		h(ctx)
	}
	for _, h := range r.allGlobal(ev.Name, false) {
		h(ctx)
	}
	return ctx.prevented
}
