package lyrics

import "sync"

// View is the presentation side of a synced lyric list.
type View interface {
	Deactivate(index int)
	Activate(index int)
	ScrollBy(delta float64)
}

// Player is the playback collaborator that lines can seek.
type Player interface {
	Seek(millis int64)
}

// Tracker highlights the active line of one lyric list as playback advances.
type Tracker struct {
	mu       sync.Mutex
	timeline *Timeline
	view     View
	player   Player
	anchor   float64 // Offset the active line is scrolled back to.
	scrolled float64 // Total scroll applied so far.
	current  int     // Active index, -1 before the first update.
}

// NewTracker creates a tracker over tl. anchor is the vertical offset of the
// list container; each newly active line is scrolled back to it.
func NewTracker(tl *Timeline, view View, player Player, anchor float64) *Tracker {
	return &Tracker{
		timeline: tl,
		view:     view,
		player:   player,
		anchor:   anchor,
		current:  -1,
	}
}

// OnTimeUpdate handles a playback position sample. It returns the active
// index and whether it changed. When it is unchanged the view is not touched.
func (t *Tracker) OnTimeUpdate(pos int64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.timeline.Locate(pos)
	if idx == t.current {
		return idx, false
	}

	if t.current >= 0 {
		t.view.Deactivate(t.current)
	}
	t.current = idx
	t.view.Activate(idx)

	node := t.timeline.nodes[idx]
	delta := (node.Top - t.scrolled) - t.anchor
	t.scrolled += delta
	t.view.ScrollBy(delta)

	return idx, true
}

// Select seeks the player to the start of the line at index.
func (t *Tracker) Select(index int) error {
	node, err := t.timeline.Node(index)
	if err != nil {
		return err
	}
	t.player.Seek(node.TimeMillis)
	return nil
}

// Current returns the active index, or -1 if no update has been handled.
func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
