package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/observability"
	"github.com/loomui/loom/pkg/paint"
	"github.com/loomui/loom/pkg/runtime"
	"github.com/loomui/loom/pkg/tree"
)

// keyMap defines the demo's keyboard shortcuts, in the usual
// bubbles/key.Binding vocabulary.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Details key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "increment")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "decrement")),
	Details: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle details")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

const frameInterval = 60 * time.Millisecond

type frameMsg time.Time

func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// model drives a runtime.Runtime through one frame loop: key presses write
// reactive state, and every tick the loop polls the dirty set, re-measures
// layout against the current terminal size, and composites whatever
// repainted into the shared canvas.
type model struct {
	rt      *runtime.Runtime
	count   *core.State[int]
	details *core.State[bool]

	canvas *canvas
	width  int
	height int
	ready  bool

	lastErr error
}

func newModel() *model {
	m := &model{}

	reporter := observability.NewConsoleReporter(false)
	m.rt = runtime.New(
		runtime.WithErrorReporter(reporter),
	)

	app := tree.NewComponentElement(m.component, tree.NoKey, nil, "App")
	if err := m.rt.Mount([]tree.Element{app}); err != nil {
		m.lastErr = err
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tickFrame()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas = newCanvas(m.width, m.height)
		m.ready = true
		m.rt.Paint.Invalidate(paint.NodeID(m.rt.Tree.Root))
		m.pollAndPaint()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.count != nil {
				m.count.Update(func(v int) int { return v + 1 })
			}
		case key.Matches(msg, keys.Down):
			if m.count != nil {
				m.count.Update(func(v int) int { return v - 1 })
			}
		case key.Matches(msg, keys.Details):
			if m.details != nil {
				m.details.Update(func(v bool) bool { return !v })
			}
		}
		return m, nil

	case frameMsg:
		if m.ready {
			m.pollAndPaint()
		}
		return m, tickFrame()
	}
	return m, nil
}

func (m *model) View() string {
	if !m.ready {
		return "loom demo — waiting for terminal size…\n"
	}
	if m.lastErr != nil {
		return fmt.Sprintf("loom demo error: %v\n", m.lastErr)
	}
	return m.canvas.String()
}

func (m *model) pollAndPaint() {
	if _, err := m.rt.Poll(); err != nil {
		m.lastErr = err
		return
	}
	viewport := layout.NewRect(0, 0, float64(m.width), float64(m.height))
	m.rt.Layout(viewport, uiMeasurer{tr: m.rt.Tree})
	m.rt.CompositeFrame(m.renderNode)
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "loom demo: %v\n", err)
		os.Exit(1)
	}
}
