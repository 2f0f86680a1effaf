package main

import "strings"

// canvas is a fixed-size character grid the demo's render_fn stamps
// painted nodes into, cell by cell, before View() stringifies it for
// bubbletea. It exists because pkg/paint's Compositor only tells the host
// which nodes need repainting and in what order — turning that into a
// single terminal frame is the host's job.
type canvas struct {
	width, height int
	cells         [][]rune
}

func newCanvas(width, height int) *canvas {
	c := &canvas{}
	c.resize(width, height)
	return c
}

// resize replaces the grid, discarding prior contents; the caller is
// expected to force a full repaint afterward.
func (c *canvas) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	c.cells = make([][]rune, height)
	for i := range c.cells {
		c.cells[i] = blankRow(width)
	}
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// draw stamps block's lines at (x, y), clipping anything outside the grid.
func (c *canvas) draw(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		col := x
		for _, r := range line {
			if col >= 0 && col < c.width {
				c.cells[row][col] = r
			}
			col++
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
