package style

import (
	"testing"

	"github.com/loomui/loom/pkg/layout"
)

func TestParseColorRoundTrips(t *testing.T) {
	cases := []string{"#ff0000", "rgb(10, 20, 30)", "rgba(1, 2, 3, 4)"}
	for _, in := range cases {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		c2, err := ParseColor(c.String())
		if err != nil {
			t.Fatalf("ParseColor(%q) (reparse): %v", c, err)
		}
		if c != c2 {
			t.Fatalf("round trip mismatch: %v != %v", c, c2)
		}
	}
}

func TestParseColorMalformedRecoversToOpaqueBlack(t *testing.T) {
	c, err := ParseColor("not-a-color")
	if err == nil {
		t.Fatalf("expected ParseError")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if c != (Color{A: 255}) {
		t.Fatalf("recovered color = %v, want opaque black", c)
	}
}

func TestParseBorderRoundTrips(t *testing.T) {
	b, err := ParseBorder("2 solid rgb(0, 0, 0)")
	if err != nil {
		t.Fatalf("ParseBorder: %v", err)
	}
	if b.Width != 2 || b.Style != BorderStyleSolid || b.Fill != (Color{A: 255}) {
		t.Fatalf("parsed border = %+v", b)
	}
	b2, err := ParseBorder(b.String())
	if err != nil || b2 != b {
		t.Fatalf("round trip mismatch: %+v vs %+v (err %v)", b, b2, err)
	}
}

func TestParseBorderNone(t *testing.T) {
	b, err := ParseBorder("none")
	if err != nil {
		t.Fatalf("ParseBorder(none): %v", err)
	}
	if b.Style != BorderStyleNone {
		t.Fatalf("expected BorderStyleNone, got %v", b.Style)
	}
}

func TestParseShadowWithSpreadAndFill(t *testing.T) {
	s, err := ParseShadow("inset 1 2 3 4 rgb(5, 6, 7)")
	if err != nil {
		t.Fatalf("ParseShadow: %v", err)
	}
	if s.Position != ShadowInset || s.X != 1 || s.Y != 2 || s.Blur != 3 || s.Spread != 4 {
		t.Fatalf("parsed shadow = %+v", s)
	}
	if s.Fill.R != 5 || s.Fill.G != 6 || s.Fill.B != 7 {
		t.Fatalf("parsed shadow fill = %+v", s.Fill)
	}
}

func TestParseShadowWithoutSpread(t *testing.T) {
	s, err := ParseShadow("1 2 3 rgb(0, 0, 0)")
	if err != nil {
		t.Fatalf("ParseShadow: %v", err)
	}
	if s.Spread != 0 {
		t.Fatalf("expected zero spread, got %v", s.Spread)
	}
}

func TestParseGapsShorthands(t *testing.T) {
	one, err := ParseGaps("4")
	if err != nil || one != (layout.Gaps{Top: 4, Right: 4, Bottom: 4, Left: 4}) {
		t.Fatalf("ParseGaps(4) = %+v, err %v", one, err)
	}

	two, err := ParseGaps("4 8")
	if err != nil || two != (layout.Gaps{Top: 4, Right: 8, Bottom: 4, Left: 8}) {
		t.Fatalf("ParseGaps(4 8) = %+v, err %v", two, err)
	}

	four, err := ParseGaps("1 2 3 4")
	if err != nil || four != (layout.Gaps{Top: 1, Right: 2, Bottom: 3, Left: 4}) {
		t.Fatalf("ParseGaps(1 2 3 4) = %+v, err %v", four, err)
	}
}

func TestParseGapsMalformed(t *testing.T) {
	_, err := ParseGaps("1 2 3")
	if err == nil {
		t.Fatalf("expected ParseError for a 3-value shorthand")
	}
}
