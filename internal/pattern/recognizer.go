// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

// Recognizer reduces one gesture at a time to a sequence of node ids.
// It is not safe for concurrent use; pointer events must be fed in the
// order they occurred.
type Recognizer struct {
	grid *Grid

	// visited is the append-only visit order for the current gesture.
	visited []int

	// seen mirrors visited for membership tests, indexed by node id.
	seen [NodeCount + 1]bool

	// active is true between BeginGesture and EndGesture.
	active bool
}

// NewRecognizer creates a recognizer over grid. A nil grid selects DefaultGrid.
func NewRecognizer(grid *Grid) *Recognizer {
	if grid == nil {
		grid = DefaultGrid()
	}
	return &Recognizer{
		grid:    grid,
		visited: make([]int, 0, NodeCount),
	}
}

// Grid returns the recognizer's geometry.
func (r *Recognizer) Grid() *Grid {
	return r.grid
}

// BeginGesture discards any previous capture and starts a new one.
func (r *Recognizer) BeginGesture() {
	r.reset()
	r.active = true
}

// FeedPoint hit-tests (x, y) against the unvisited nodes in id order and
// appends the first one in range. It returns the node appended, if any.
// Outside a gesture the point is ignored.
func (r *Recognizer) FeedPoint(x, y float64) (int, bool) {
	if !r.active {
		return 0, false
	}

	p := Point{X: x, Y: y}
	for _, n := range r.grid.nodes {
		if r.seen[n.ID] {
			continue
		}
		if p.Distance(n.Center) <= r.grid.radius {
			r.visited = append(r.visited, n.ID)
			r.seen[n.ID] = true
			return n.ID, true
		}
	}
	return 0, false
}

// EndGesture stops accepting points. The capture stays readable until
// Clear or the next BeginGesture.
func (r *Recognizer) EndGesture() {
	r.active = false
}

// CurrentSequence returns a copy of the captured node ids in visit order.
func (r *Recognizer) CurrentSequence() []int {
	out := make([]int, len(r.visited))
	copy(out, r.visited)
	return out
}

// Clear returns the recognizer to its initial state.
func (r *Recognizer) Clear() {
	r.reset()
	r.active = false
}

// Active reports whether a gesture is in progress.
func (r *Recognizer) Active() bool {
	return r.active
}

// Visited reports whether node id is part of the current capture.
func (r *Recognizer) Visited(id int) bool {
	return ValidID(id) && r.seen[id]
}

// Len returns the number of captured nodes.
func (r *Recognizer) Len() int {
	return len(r.visited)
}

// Replay feeds a gesture that touches the center of each id in turn.
// Ids off the grid are skipped and repeats collapse as they would for a
// real pointer. It is used by line-oriented front ends that take the
// pattern as typed digits.
func (r *Recognizer) Replay(ids []int) []int {
	r.BeginGesture()
	for _, id := range ids {
		if c, ok := r.grid.Center(id); ok {
			r.FeedPoint(c.X, c.Y)
		}
	}
	r.EndGesture()
	return r.CurrentSequence()
}

func (r *Recognizer) reset() {
	r.visited = r.visited[:0]
	r.seen = [NodeCount + 1]bool{}
}
