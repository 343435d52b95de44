// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package pattern converts pointer gestures over a 3x3 grid into the ordered
sequence of node identifiers used by the swipe-pattern unlock.

# Grid

Nodes are identified 1..9 in row-major order:

	1 2 3
	4 5 6
	7 8 9

Each node has a center and every node shares one hit radius. A point hits
a node when its Euclidean distance to the center is at most the radius.
The geometry is fixed once a Recognizer is built, because captured
sequences refer to nodes by position.

# Recognizer

A Recognizer holds one capture session at a time:

	r := pattern.NewRecognizer(pattern.DefaultGrid())
	r.BeginGesture()          // pointer down
	r.FeedPoint(52, 48)       // pointer down position and every move
	r.FeedPoint(150, 50)
	r.EndGesture()            // pointer up
	seq := r.CurrentSequence() // [1 2]

Nodes are scanned in id order and the first unvisited node in range wins,
so overlapping hit circles resolve to the lowest id. A node is appended at
most once per gesture. Points fed while no gesture is active are ignored.
*/
package pattern
