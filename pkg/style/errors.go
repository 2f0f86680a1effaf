package style

import "fmt"

// ParseError is returned (and, recovered locally as the
// attribute's default) when a Color, Border, Shadow, or Gaps literal
// is malformed.
type ParseError struct {
	Attribute string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("style: malformed %s attribute %q", e.Attribute, e.Value)
}
