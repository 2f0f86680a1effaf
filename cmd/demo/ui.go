package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/paint"
	"github.com/loomui/loom/pkg/style"
	"github.com/loomui/loom/pkg/tree"
)

// label builds a leaf text primitive sized to its own content; the
// measurer in this file resolves its actual width/height at layout time.
func label(text string) tree.Element {
	return &tree.Primitive{
		Tag:    "label",
		Layout: layout.Node{Width: layout.SizeInner(), Height: layout.SizeInner()},
		Children: []tree.Element{
			&tree.TextElement{Content: text},
		},
	}
}

func panelStyle(bg style.Color, bordered bool) style.Style {
	s := style.NewStyle()
	s.HasBackground = true
	s.Background = bg
	if bordered {
		s.Border = style.Border{Width: 1, Style: style.BorderStyleSolid, Fill: style.Color{R: 0xcd, G: 0xd6, B: 0xf4, A: 255}}
	}
	return s
}

// component renders the demo's whole element subtree. It backs the one
// component instance this tree ever mounts; count and details are
// re-acquired (the same cells, by UseState's slot memoization) on every
// render, and stashed on m so key handlers outside the render pass can call
// Update directly.
func (m *model) component(scopeAny any, _ any) (tree.Element, error) {
	s := scopeAny.(*core.Scope)
	count := core.UseState(s, func() int { return 0 })
	details := core.UseState(s, func() bool { return false })
	m.count = count
	m.details = details

	counterBox := &tree.Primitive{
		Tag:   "rect",
		Style: panelStyle(style.Color{R: 0x2b, G: 0x2f, B: 0x44, A: 255}, true),
		Layout: layout.Node{
			Width:      layout.SizeFill(),
			Height:     layout.SizePixels(3),
			Padding:    layout.NewGapsSymmetric(0, 1),
			Direction:  layout.Horizontal,
			MainAlign:  layout.AlignCenter,
			CrossAlign: layout.AlignCenter,
		},
		Children: []tree.Element{
			label(fmt.Sprintf("Count: %d", count.Get())),
		},
	}

	var lower tree.Element
	if details.Get() {
		lower = &tree.Primitive{
			Tag:   "rect",
			Style: panelStyle(style.Color{R: 0x1c, G: 0x33, B: 0x2a, A: 255}, true),
			Layout: layout.Node{
				Width:   layout.SizeFill(),
				Height:  layout.SizePixels(3),
				Padding: layout.NewGapsSymmetric(0, 1),
			},
			Children: []tree.Element{
				label(fmt.Sprintf("details open — scope %d, component nodes share one reactive slot arena", s.ID)),
			},
		}
	} else {
		lower = label("press d to open details")
	}

	return &tree.Primitive{
		Tag:   "rect",
		Style: panelStyle(style.Color{R: 0x12, G: 0x13, B: 0x1a, A: 255}, false),
		Layout: layout.Node{
			Width:     layout.SizeFill(),
			Height:    layout.SizeFill(),
			Direction: layout.Vertical,
			Padding:   layout.NewGaps(1),
			Spacing:   1,
		},
		Children: []tree.Element{
			label("loom terminal demo — up/down change the count, d toggles details, q quits"),
			counterBox,
			lower,
		},
	}, nil
}

// uiMeasurer resolves the intrinsic size of "label" nodes via lipgloss's
// cell-width accounting, so wide runes and ANSI-free plain text measure
// consistently with how the grid canvas later stamps them.
type uiMeasurer struct {
	tr *tree.Tree
}

func (u uiMeasurer) Measure(id layout.NodeID, availableWidth, availableHeight float64, prevCache any) (layout.Size2D, any, bool) {
	text, ok := labelText(u.tr, tree.NodeID(id))
	if !ok {
		return layout.Size2D{}, nil, false
	}
	return layout.Size2D{
		Width:  float64(lipgloss.Width(text)),
		Height: float64(lipgloss.Height(text)),
	}, text, true
}

func labelText(tr *tree.Tree, id tree.NodeID) (string, bool) {
	node := tr.Node(id)
	if node == nil {
		return "", false
	}
	prim, ok := node.Element.(*tree.Primitive)
	if !ok || prim.Tag != "label" {
		return "", false
	}
	for _, childID := range node.Children {
		child := tr.Node(childID)
		if child == nil || child.Kind != tree.KindText {
			continue
		}
		if t, ok := child.Element.(*tree.TextElement); ok {
			return t.Content, true
		}
	}
	return "", false
}

// renderNode is the paint.RenderFunc passed to Runtime.CompositeFrame: it
// stamps one repainted node's content into the host's shared canvas. Panel
// backgrounds and borders are drawn as plain glyphs (box-drawing
// characters, not ANSI) so overlapping writes into the same rune grid stay
// well-defined; lipgloss is used only for the text layout itself
// (width-padding and truncation).
func (m *model) renderNode(id paint.NodeID, treeArg any) {
	tr, ok := treeArg.(*tree.Tree)
	if !ok {
		return
	}
	node := tr.Node(tree.NodeID(id))
	if node == nil {
		return
	}
	area, _, ok := m.rt.Torin.Get(layout.NodeID(id))
	if !ok {
		return
	}
	x, y := int(area.Origin.X), int(area.Origin.Y)
	w, h := int(area.Size.Width), int(area.Size.Height)
	if w <= 0 || h <= 0 {
		return
	}

	if text, isLabel := labelText(tr, tree.NodeID(id)); isLabel {
		block := lipgloss.NewStyle().Width(w).MaxHeight(h).Render(text)
		m.canvas.draw(x, y, block)
		return
	}

	prim, ok := node.Element.(*tree.Primitive)
	if !ok || prim.Tag != "rect" {
		return
	}
	st, _ := m.rt.StyleFor(tree.NodeID(id))
	m.canvas.draw(x, y, strings.Repeat(" ", w)+strings.Repeat("\n"+strings.Repeat(" ", w), h-1))
	if st.Border.Style == style.BorderStyleSolid {
		drawBorder(m.canvas, x, y, w, h)
	}
}

func drawBorder(c *canvas, x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	top := "┌" + strings.Repeat("─", w-2) + "┐"
	bottom := "└" + strings.Repeat("─", w-2) + "┘"
	c.draw(x, y, top)
	c.draw(x, y+h-1, bottom)
	for row := y + 1; row < y+h-1; row++ {
		c.draw(x, row, "│")
		c.draw(x+w-1, row, "│")
	}
}
