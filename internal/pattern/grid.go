// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// GRID CONSTANTS
// =============================================================================

const (
	// Size is the number of rows and columns in the grid.
	Size = 3

	// NodeCount is the number of nodes in the grid.
	NodeCount = Size * Size

	// DefaultOrigin is the center of node 1 on the default grid.
	DefaultOrigin = 50.0

	// DefaultGap is the distance between adjacent node centers on the default grid.
	DefaultGap = 100.0

	// DefaultRadius is the hit radius on the default grid.
	DefaultRadius = 25.0
)

// ErrInvalidGrid is returned when grid geometry cannot be used.
var ErrInvalidGrid = errors.New("pattern: invalid grid")

// Point is a position in the recognizer's coordinate space.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Node is one grid position.
type Node struct {
	ID     int
	Center Point
}

// Grid is the immutable node layout shared by a capture session.
type Grid struct {
	nodes  [NodeCount]Node
	radius float64
}

// NewGrid builds a grid from explicit centers, given in id order (index 0 is node 1).
func NewGrid(centers [NodeCount]Point, radius float64) (*Grid, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidGrid, radius)
	}

	g := &Grid{radius: radius}
	for i, c := range centers {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
			return nil, fmt.Errorf("%w: node %d has a non-finite center", ErrInvalidGrid, i+1)
		}
		g.nodes[i] = Node{ID: i + 1, Center: c}
	}
	return g, nil
}

// NewUniformGrid lays the nodes out row-major with node 1 at (originX, originY)
// and gap units between adjacent centers.
func NewUniformGrid(originX, originY, gap, radius float64) (*Grid, error) {
	if gap <= 0 {
		return nil, fmt.Errorf("%w: gap must be positive, got %v", ErrInvalidGrid, gap)
	}

	var centers [NodeCount]Point
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			centers[row*Size+col] = Point{
				X: originX + float64(col)*gap,
				Y: originY + float64(row)*gap,
			}
		}
	}
	return NewGrid(centers, radius)
}

// DefaultGrid returns the 300x300 layout: centers 100 apart starting at (50, 50),
// hit radius 25.
func DefaultGrid() *Grid {
	g, err := NewUniformGrid(DefaultOrigin, DefaultOrigin, DefaultGap, DefaultRadius)
	if err != nil {
		panic(err) // constants are valid
	}
	return g
}

// Radius returns the hit radius.
func (g *Grid) Radius() float64 {
	return g.radius
}

// Nodes returns the nodes in id order.
func (g *Grid) Nodes() []Node {
	out := make([]Node, NodeCount)
	copy(out, g.nodes[:])
	return out
}

// Node returns the node with the given id.
func (g *Grid) Node(id int) (Node, bool) {
	if !ValidID(id) {
		return Node{}, false
	}
	return g.nodes[id-1], true
}

// Center returns the center of node id.
func (g *Grid) Center(id int) (Point, bool) {
	n, ok := g.Node(id)
	return n.Center, ok
}

// Hits reports whether p lies within the hit radius of node id.
func (g *Grid) Hits(id int, p Point) bool {
	n, ok := g.Node(id)
	if !ok {
		return false
	}
	return p.Distance(n.Center) <= g.radius
}

// ValidID reports whether id names a grid node.
func ValidID(id int) bool {
	return id >= 1 && id <= NodeCount
}

// ValidateSequence checks that seq is a usable stored pattern: at least one
// node, every id on the grid, no repeats.
func ValidateSequence(seq []int) error {
	if len(seq) == 0 {
		return errors.New("pattern is empty")
	}
	if len(seq) > NodeCount {
		return fmt.Errorf("pattern has %d nodes, grid has %d", len(seq), NodeCount)
	}

	var seen [NodeCount + 1]bool
	for i, id := range seq {
		if !ValidID(id) {
			return fmt.Errorf("node %d at position %d is outside 1..%d", id, i, NodeCount)
		}
		if seen[id] {
			return fmt.Errorf("node %d repeats at position %d", id, i)
		}
		seen[id] = true
	}
	return nil
}
