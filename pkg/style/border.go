package style

import (
	"fmt"
	"strconv"
	"strings"
)

// BorderAlignment is where a border's stroke sits relative to the node's
// edge.
type BorderAlignment int

const (
	BorderInner BorderAlignment = iota
	BorderOuter
	BorderCenter
)

func (a BorderAlignment) String() string {
	switch a {
	case BorderOuter:
		return "outer"
	case BorderCenter:
		return "center"
	default:
		return "inner"
	}
}

// BorderStyle selects whether a border paints at all.
type BorderStyle int

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleSolid
)

func (s BorderStyle) String() string {
	if s == BorderStyleSolid {
		return "solid"
	}
	return "none"
}

// Border is the style facet's border attribute: a width, a style, a fill
// color, and an alignment relative to the node's edge.
type Border struct {
	Width     float64
	Style     BorderStyle
	Fill      Color
	Alignment BorderAlignment
}

// ParseBorder parses "none", or "<width> <style> <fill>" (alignment is not
// part of the literal form; it defaults to Inner and is set separately).
func ParseBorder(value string) (Border, error) {
	v := strings.TrimSpace(value)
	if v == "" || v == "none" {
		return Border{}, nil
	}

	fields := strings.Fields(v)
	if len(fields) < 2 {
		return Border{}, &ParseError{Attribute: "border", Value: value}
	}

	width, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Border{}, &ParseError{Attribute: "border", Value: value}
	}

	var bstyle BorderStyle
	switch fields[1] {
	case "solid":
		bstyle = BorderStyleSolid
	default:
		bstyle = BorderStyleNone
	}

	fill := Color{A: 255}
	if len(fields) > 2 {
		fill, err = ParseColor(strings.Join(fields[2:], " "))
		if err != nil {
			return Border{}, &ParseError{Attribute: "border", Value: value}
		}
	}

	return Border{Width: width, Style: bstyle, Fill: fill, Alignment: BorderInner}, nil
}

// String renders the canonical "<width> <style> <fill>" form.
func (b Border) String() string {
	if b.Style == BorderStyleNone {
		return "none"
	}
	return fmt.Sprintf("%g %s %s", b.Width, b.Style, b.Fill)
}
