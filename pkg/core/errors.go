package core

import "fmt"

// ErrHookMismatch is returned when a hook call's type or position diverges
// from the slot recorded in the scope's prior revision. It is fatal: it
// indicates a conditional hook call or a reordering of hooks between
// renders, both programming errors per the rule of hooks.
type ErrHookMismatch struct {
	ScopeID  ScopeID
	SlotIdx  int
	Expected string
	Got      string
}

func (e *ErrHookMismatch) Error() string {
	return fmt.Sprintf("core: hook mismatch in scope %d at slot %d: expected %s, got %s",
		e.ScopeID, e.SlotIdx, e.Expected, e.Got)
}

// ErrStaleCell is returned when a State cell is read or written after its
// owning scope has torn down: teardown clears the cell's live flag, and
// later accesses find it cleared.
type ErrStaleCell struct {
	ScopeID ScopeID
	SlotIdx int
}

func (e *ErrStaleCell) Error() string {
	return fmt.Sprintf("core: stale cell access, scope %d slot %d no longer live", e.ScopeID, e.SlotIdx)
}

// ErrNoProvider is returned by ConsumeContext when no ancestor scope
// provides a value for the requested type.
type ErrNoProvider struct {
	TypeName string
}

func (e *ErrNoProvider) Error() string {
	return fmt.Sprintf("core: no provider found for context type %s", e.TypeName)
}
