// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pattern

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// GRID TESTS
// =============================================================================

// TestDefaultGrid_Layout checks the row-major layout of the default grid.
func TestDefaultGrid_Layout(t *testing.T) {
	g := DefaultGrid()

	require.Equal(t, DefaultRadius, g.Radius())
	nodes := g.Nodes()
	require.Len(t, nodes, NodeCount)

	expected := map[int]Point{
		1: {50, 50}, 2: {150, 50}, 3: {250, 50},
		4: {50, 150}, 5: {150, 150}, 6: {250, 150},
		7: {50, 250}, 8: {150, 250}, 9: {250, 250},
	}
	for _, n := range nodes {
		assert.Equal(t, expected[n.ID], n.Center, "node %d", n.ID)
	}
}

func TestNewGrid_RejectsBadGeometry(t *testing.T) {
	_, err := NewUniformGrid(0, 0, 10, 0)
	require.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = NewUniformGrid(0, 0, 0, 5)
	require.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = NewUniformGrid(0, 0, -3, 5)
	require.True(t, errors.Is(err, ErrInvalidGrid))
}

func TestGrid_Hits(t *testing.T) {
	g := DefaultGrid()

	assert.True(t, g.Hits(1, Point{50, 50}))
	assert.True(t, g.Hits(1, Point{75, 50}), "boundary is inclusive")
	assert.False(t, g.Hits(1, Point{76, 50}))
	assert.False(t, g.Hits(0, Point{50, 50}))
	assert.False(t, g.Hits(10, Point{50, 50}))
}

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name    string
		seq     []int
		wantErr bool
	}{
		{"single node", []int{5}, false},
		{"all nodes", []int{1, 2, 3, 6, 5, 4, 7, 8, 9}, false},
		{"empty", nil, true},
		{"zero id", []int{0, 1}, true},
		{"id past grid", []int{1, 10}, true},
		{"repeat", []int{1, 2, 1}, true},
		{"too long", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.seq)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// RECOGNIZER TESTS
// =============================================================================

// TestRecognizer_StraightSwipe tests a swipe along the top row.
func TestRecognizer_StraightSwipe(t *testing.T) {
	r := NewRecognizer(nil)
	r.BeginGesture()
	for x := 40.0; x <= 260; x += 5 {
		r.FeedPoint(x, 50)
	}
	r.EndGesture()

	assert.Equal(t, []int{1, 2, 3}, r.CurrentSequence())
	assert.False(t, r.Active())
}

// TestRecognizer_PointsBeforeBegin tests that points outside a gesture are ignored.
func TestRecognizer_PointsBeforeBegin(t *testing.T) {
	r := NewRecognizer(nil)

	id, hit := r.FeedPoint(50, 50)
	assert.False(t, hit)
	assert.Zero(t, id)
	assert.Empty(t, r.CurrentSequence())

	r.BeginGesture()
	r.FeedPoint(50, 50)
	r.EndGesture()

	// After pointer-up, moves no longer count.
	r.FeedPoint(150, 50)
	assert.Equal(t, []int{1}, r.CurrentSequence())
}

// TestRecognizer_RevisitIgnored tests that revisiting a node changes nothing.
func TestRecognizer_RevisitIgnored(t *testing.T) {
	r := NewRecognizer(nil)
	r.BeginGesture()
	r.FeedPoint(50, 50)
	r.FeedPoint(150, 50)

	before := r.CurrentSequence()
	id, hit := r.FeedPoint(52, 49)
	assert.False(t, hit)
	assert.Zero(t, id)
	r.FeedPoint(150, 50)
	assert.Equal(t, before, r.CurrentSequence())
}

// TestRecognizer_OverlapPrefersLowestID tests the tie-break between overlapping nodes.
func TestRecognizer_OverlapPrefersLowestID(t *testing.T) {
	g, err := NewUniformGrid(0, 0, 10, 8)
	require.NoError(t, err)

	r := NewRecognizer(g)
	r.BeginGesture()

	// (5, 0) is 5 units from both node 1 and node 2.
	id, hit := r.FeedPoint(5, 0)
	require.True(t, hit)
	assert.Equal(t, 1, id)

	// Node 1 is now visited, so the same point falls through to node 2.
	id, hit = r.FeedPoint(5, 0)
	require.True(t, hit)
	assert.Equal(t, 2, id)

	assert.Equal(t, []int{1, 2}, r.CurrentSequence())
}

// TestRecognizer_BeginClearsPrevious tests that a new gesture discards the last capture.
func TestRecognizer_BeginClearsPrevious(t *testing.T) {
	r := NewRecognizer(nil)
	r.Replay([]int{1, 2, 3})
	require.Equal(t, []int{1, 2, 3}, r.CurrentSequence())

	r.BeginGesture()
	assert.Empty(t, r.CurrentSequence())
	assert.False(t, r.Visited(1))

	r.FeedPoint(250, 250)
	assert.Equal(t, []int{9}, r.CurrentSequence())
}

func TestRecognizer_Clear(t *testing.T) {
	r := NewRecognizer(nil)
	r.BeginGesture()
	r.FeedPoint(150, 150)

	r.Clear()
	assert.False(t, r.Active())
	assert.Empty(t, r.CurrentSequence())
	assert.Zero(t, r.Len())

	// Cleared means inactive: no capture until the next pointer-down.
	r.FeedPoint(150, 150)
	assert.Empty(t, r.CurrentSequence())
}

func TestRecognizer_SequenceIsSnapshot(t *testing.T) {
	r := NewRecognizer(nil)
	r.Replay([]int{4, 5})

	seq := r.CurrentSequence()
	seq[0] = 9
	assert.Equal(t, []int{4, 5}, r.CurrentSequence())
}

func TestRecognizer_MissIsNoop(t *testing.T) {
	r := NewRecognizer(nil)
	r.BeginGesture()

	// Midpoint between nodes 1 and 5 is outside every radius.
	_, hit := r.FeedPoint(100, 100)
	assert.False(t, hit)
	assert.Empty(t, r.CurrentSequence())
	assert.True(t, r.Active())
}

func TestRecognizer_ReplayCollapsesRepeats(t *testing.T) {
	r := NewRecognizer(nil)
	assert.Equal(t, []int{1, 5, 9}, r.Replay([]int{1, 5, 1, 9, 0, 12}))
}

// TestRecognizer_RandomGesturesStayValid tests that any gesture yields a
// duplicate-free sequence no longer than the grid.
func TestRecognizer_RandomGesturesStayValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := NewRecognizer(nil)

	for i := 0; i < 500; i++ {
		r.BeginGesture()
		steps := rng.Intn(400)
		for j := 0; j < steps; j++ {
			r.FeedPoint(rng.Float64()*300, rng.Float64()*300)
		}
		r.EndGesture()

		seq := r.CurrentSequence()
		require.LessOrEqual(t, len(seq), NodeCount)
		if len(seq) > 0 {
			require.NoError(t, ValidateSequence(seq))
		}
	}
}
