// Package lyrics locates the active lyric line for a playback position and
// keeps a rendered lyric list in sync with playback.
package lyrics

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTimeline = errors.New("lyrics: timeline has no lines")
	ErrUnsorted      = errors.New("lyrics: line times are not in ascending order")
	ErrIndexRange    = errors.New("lyrics: line index out of range")
)

// Node is the lookup record for one rendered lyric line.
type Node struct {
	Index      int     // Zero-based position in document order.
	TimeMillis int64   // Start time in milliseconds.
	Top        float64 // Vertical offset of the rendered line, measured before any scrolling.
}

// Timeline is the ordered set of nodes for one lyric list. Document order and
// time order are identical.
type Timeline struct {
	nodes []Node
}

// NewTimeline builds a timeline from line start times and their rendered
// offsets. tops may be nil, in which case every offset is zero.
func NewTimeline(times []int64, tops []float64) (*Timeline, error) {
	if len(times) == 0 {
		return nil, ErrEmptyTimeline
	}
	if tops != nil && len(tops) != len(times) {
		return nil, fmt.Errorf("lyrics: %d offsets for %d lines", len(tops), len(times))
	}

	nodes := make([]Node, len(times))
	for i, ms := range times {
		if i > 0 && ms < times[i-1] {
			return nil, fmt.Errorf("%w: line %d (%dms) precedes line %d (%dms)", ErrUnsorted, i, ms, i-1, times[i-1])
		}
		nodes[i] = Node{Index: i, TimeMillis: ms}
		if tops != nil {
			nodes[i].Top = tops[i]
		}
	}
	return &Timeline{nodes: nodes}, nil
}

// Len returns the number of lines.
func (tl *Timeline) Len() int { return len(tl.nodes) }

// Node returns the node at index i.
func (tl *Timeline) Node(i int) (Node, error) {
	if i < 0 || i >= len(tl.nodes) {
		return Node{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexRange, i, len(tl.nodes))
	}
	return tl.nodes[i], nil
}

// Locate returns the index of the line that is active at pos: the last line
// whose start time is <= pos, or 0 when pos precedes every line.
func (tl *Timeline) Locate(pos int64) int {
	start, end := 0, len(tl.nodes)
	for {
		mid := (start + end) / 2
		if start == end || end-start == 1 {
			return mid
		}
		if tl.nodes[mid].TimeMillis > pos {
			end = mid
		} else {
			start = mid
		}
	}
}

// LocateLinear is the reference scan for Locate.
func (tl *Timeline) LocateLinear(pos int64) int {
	found := 0
	for i, n := range tl.nodes {
		if n.TimeMillis <= pos {
			found = i
		}
	}
	return found
}

// PositionFromSeconds converts a playback time in seconds to whole
// milliseconds, truncating any remainder.
func PositionFromSeconds(seconds float64) int64 {
	return int64(seconds * 1000)
}
