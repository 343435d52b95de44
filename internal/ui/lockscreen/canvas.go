// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lockscreen

import (
	"math"
	"strings"

	"github.com/jeranaias/applock/internal/pattern"
	"github.com/jeranaias/applock/internal/ui/styles"
)

// =============================================================================
// CANVAS GEOMETRY
// =============================================================================

// canvas maps terminal cells onto recognizer coordinates. Node 1's center
// sits at cell (0, 0) of the canvas; neighbouring centers are colsPerGap
// columns and rowsPerGap rows apart.
type canvas struct {
	grid       *pattern.Grid
	colsPerGap int
	rowsPerGap int
}

func newCanvas(grid *pattern.Grid, colsPerGap, rowsPerGap int) canvas {
	if colsPerGap < 2 {
		colsPerGap = 2
	}
	if rowsPerGap < 1 {
		rowsPerGap = 1
	}
	return canvas{grid: grid, colsPerGap: colsPerGap, rowsPerGap: rowsPerGap}
}

// width and height are the rendered size in cells. Node glyphs are three
// cells wide, so one extra column of margin each side.
func (c canvas) width() int  { return (pattern.Size-1)*c.colsPerGap + 3 }
func (c canvas) height() int { return (pattern.Size-1)*c.rowsPerGap + 1 }

// nodeCell returns the cell of a node center relative to node 1's center.
func (c canvas) nodeCell(id int) (col, row int) {
	i := id - 1
	return (i % pattern.Size) * c.colsPerGap, (i / pattern.Size) * c.rowsPerGap
}

// toGrid converts a cell offset from node 1's center into recognizer space.
// The scale comes from the grid itself so any uniform geometry works.
func (c canvas) toGrid(col, row int) (x, y float64) {
	c1, _ := c.grid.Center(1)
	c2, _ := c.grid.Center(2)
	c4, _ := c.grid.Center(4)
	unitX := (c2.X - c1.X) / float64(c.colsPerGap)
	unitY := (c4.Y - c1.Y) / float64(c.rowsPerGap)
	return c1.X + float64(col)*unitX, c1.Y + float64(row)*unitY
}

// =============================================================================
// RENDERING
// =============================================================================

type cellKind int

const (
	cellEmpty cellKind = iota
	cellPath
	cellNodeIdle
	cellNodeVisited
	cellNodeLast
)

// render draws the grid with the captured path. Visited nodes use square
// brackets so the path reads without color.
func (c canvas) render(theme *styles.Theme, seq []int) string {
	w, h := c.width(), c.height()
	runes := make([][]rune, h)
	kinds := make([][]cellKind, h)
	for r := range runes {
		runes[r] = []rune(strings.Repeat(" ", w))
		kinds[r] = make([]cellKind, w)
	}

	// Path segments first so node glyphs overwrite them.
	for i := 1; i < len(seq); i++ {
		fromCol, fromRow := c.nodeCell(seq[i-1])
		toCol, toRow := c.nodeCell(seq[i])
		dc, dr := toCol-fromCol, toRow-fromRow
		steps := max(abs(dc), abs(dr))
		for s := 1; s < steps; s++ {
			col := fromCol + int(math.Round(float64(dc)*float64(s)/float64(steps)))
			row := fromRow + int(math.Round(float64(dr)*float64(s)/float64(steps)))
			runes[row][col+1] = '.'
			kinds[row][col+1] = cellPath
		}
	}

	visited := make(map[int]bool, len(seq))
	for _, id := range seq {
		visited[id] = true
	}
	last := 0
	if len(seq) > 0 {
		last = seq[len(seq)-1]
	}

	for id := 1; id <= pattern.NodeCount; id++ {
		col, row := c.nodeCell(id)
		kind, left, right := cellNodeIdle, '(', ')'
		switch {
		case id == last:
			kind, left, right = cellNodeLast, '[', ']'
		case visited[id]:
			kind, left, right = cellNodeVisited, '[', ']'
		}
		runes[row][col] = left
		runes[row][col+1] = rune('0' + id)
		runes[row][col+2] = right
		kinds[row][col], kinds[row][col+1], kinds[row][col+2] = kind, kind, kind
	}

	lines := make([]string, h)
	for r := range runes {
		var b strings.Builder
		for col, ch := range runes[r] {
			b.WriteString(styleCell(theme, kinds[r][col], string(ch)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func styleCell(theme *styles.Theme, kind cellKind, s string) string {
	switch kind {
	case cellPath:
		return theme.PathText.Render(s)
	case cellNodeIdle:
		return theme.NodeIdle.Render(s)
	case cellNodeVisited:
		return theme.NodeVisited.Render(s)
	case cellNodeLast:
		return theme.NodeLast.Render(s)
	default:
		return s
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
