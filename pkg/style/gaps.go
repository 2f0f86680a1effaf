package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loomui/loom/pkg/layout"
)

// ParseGaps parses the CSS-shorthand padding/margin literal: one value
// (all sides), two (vertical horizontal), or four (top right bottom
// left).
func ParseGaps(value string) (layout.Gaps, error) {
	fields := strings.Fields(value)
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return layout.Gaps{}, &ParseError{Attribute: "gaps", Value: value}
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 1:
		return layout.NewGaps(nums[0]), nil
	case 2:
		return layout.NewGapsSymmetric(nums[0], nums[1]), nil
	case 4:
		return layout.Gaps{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}, nil
	default:
		return layout.Gaps{}, &ParseError{Attribute: "gaps", Value: value}
	}
}

// FormatGaps renders the canonical four-value "top right bottom left" form.
func FormatGaps(g layout.Gaps) string {
	return fmt.Sprintf("%g %g %g %g", g.Top, g.Right, g.Bottom, g.Left)
}
