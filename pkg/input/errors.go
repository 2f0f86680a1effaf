package input

import "fmt"

// AccessibilityMissingError is recovered (non-fatal) when a focus
// traversal's previously focused target no longer exists in the focus
// graph. The router recovers by focusing the first node in document
// order.
type AccessibilityMissingError struct {
	ID AccessibilityID
}

func (e *AccessibilityMissingError) Error() string {
	return fmt.Sprintf("input: accessibility node %d no longer exists, focus recovered to root", e.ID)
}
