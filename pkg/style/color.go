package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight RGBA color, the atomic unit Border/Shadow/Fill solid
// colors are built from.
type Color struct {
	R, G, B, A uint8
}

var namedColors = map[string]Color{
	"black": {0, 0, 0, 255},
	"white": {255, 255, 255, 255},
	"red": {255, 0, 0, 255},
	"green": {0, 255, 0, 255},
	"blue": {0, 0, 255, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a hex (#rrggbb, #rrggbbaa), rgb(r,g,b)/rgba(r,g,b,a), or
// named literal. On a malformed literal it returns opaque black and a
// *ParseError.
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)

	if c, ok := namedColors[lower]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	if strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb(") {
		return parseFuncColor(v)
	}
	return Color{A: 255}, &ParseError{Attribute: "color", Value: value}
}

func parseHexColor(v string) (Color, error) {
	hex := v[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{A: 255}, &ParseError{Attribute: "color", Value: v}
	}
	bytes, err := hexBytes(hex)
	if err != nil {
		return Color{A: 255}, &ParseError{Attribute: "color", Value: v}
	}
	c := Color{R: bytes[0], G: bytes[1], B: bytes[2], A: 255}
	if len(bytes) == 4 {
		c.A = bytes[3]
	}
	return c, nil
}

func hexBytes(hex string) ([]byte, error) {
	out := make([]byte, len(hex)/2)
	for i := range out {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(n)
	}
	return out, nil
}

func parseFuncColor(v string) (Color, error) {
	open := strings.Index(v, "(")
	closeIdx := strings.LastIndex(v, ")")
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return Color{A: 255}, &ParseError{Attribute: "color", Value: v}
	}
	parts := strings.Split(v[open+1:closeIdx], ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Color{A: 255}, &ParseError{Attribute: "color", Value: v}
		}
		nums = append(nums, n)
	}
	if len(nums) != 3 && len(nums) != 4 {
		return Color{A: 255}, &ParseError{Attribute: "color", Value: v}
	}
	c := Color{R: clamp8(nums[0]), G: clamp8(nums[1]), B: clamp8(nums[2]), A: 255}
	if len(nums) == 4 {
		c.A = clamp8(nums[3])
	}
	return c, nil
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// String renders the canonical rgb()/rgba() form — rgba() only when the
// color carries transparency, preferring the shortest faithful form.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// RGB packs the color's opaque channels into the 24-bit form
// paint.ParagraphCacheKey.ColorRGB expects.
func (c Color) RGB() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
