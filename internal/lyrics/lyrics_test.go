package lyrics

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestNewTimelineErrors(t *testing.T) {
	if _, err := NewTimeline(nil, nil); !errors.Is(err, ErrEmptyTimeline) {
		t.Errorf("empty: expected ErrEmptyTimeline, got %v", err)
	}
	if _, err := NewTimeline([]int64{100, 50}, nil); !errors.Is(err, ErrUnsorted) {
		t.Errorf("unsorted: expected ErrUnsorted, got %v", err)
	}
	if _, err := NewTimeline([]int64{1, 2}, []float64{0}); err == nil {
		t.Error("mismatched offsets: expected error")
	}
}

func TestLocateBoundaries(t *testing.T) {
	tl, err := NewTimeline([]int64{1000, 2000, 3000, 4000}, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pos  int64
		want int
	}{
		{0, 0},
		{999, 0},
		{1000, 0},
		{1999, 0},
		{2000, 1},
		{2500, 1},
		{3000, 2},
		{3999, 2},
		{4000, 3},
		{999999, 3},
	}
	for _, tt := range tests {
		if got := tl.Locate(tt.pos); got != tt.want {
			t.Errorf("Locate(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestLocateSingleLine(t *testing.T) {
	tl, err := NewTimeline([]int64{500}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, pos := range []int64{0, 500, 10000} {
		if got := tl.Locate(pos); got != 0 {
			t.Errorf("Locate(%d) = %d, want 0", pos, got)
		}
	}
}

func TestLocateMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		times := make([]int64, n)
		for i := range times {
			// Small range so duplicate timestamps occur.
			times[i] = int64(rng.Intn(5000))
		}
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

		tl, err := NewTimeline(times, nil)
		if err != nil {
			t.Fatal(err)
		}

		var pos int64 = -100
		for pos < 5200 {
			if got, want := tl.Locate(pos), tl.LocateLinear(pos); got != want {
				t.Fatalf("trial %d: Locate(%d) = %d, linear = %d (times %v)", trial, pos, got, want, times)
			}
			pos += int64(rng.Intn(120))
		}
	}
}

func TestPositionFromSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{1.5, 1500},
		{2.0009, 2000},
		{12.3456, 12345},
	}
	for _, tt := range tests {
		if got := PositionFromSeconds(tt.in); got != tt.want {
			t.Errorf("PositionFromSeconds(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

type recordingView struct {
	events []string
	scroll []float64
}

func (v *recordingView) Deactivate(index int) { v.events = append(v.events, "off", string(rune('0'+index))) }
func (v *recordingView) Activate(index int)   { v.events = append(v.events, "on", string(rune('0'+index))) }
func (v *recordingView) ScrollBy(delta float64) {
	v.scroll = append(v.scroll, delta)
}

type recordingPlayer struct {
	seeks []int64
}

func (p *recordingPlayer) Seek(ms int64) { p.seeks = append(p.seeks, ms) }

func newTestTracker(t *testing.T) (*Tracker, *recordingView, *recordingPlayer) {
	t.Helper()
	tl, err := NewTimeline([]int64{0, 1000, 2000, 3000}, []float64{100, 140, 180, 220})
	if err != nil {
		t.Fatal(err)
	}
	view := &recordingView{}
	player := &recordingPlayer{}
	return NewTracker(tl, view, player, 100), view, player
}

func TestTrackerHighlightsOnChangeOnly(t *testing.T) {
	tr, view, _ := newTestTracker(t)

	if tr.Current() != -1 {
		t.Fatalf("initial Current = %d, want -1", tr.Current())
	}

	idx, changed := tr.OnTimeUpdate(10)
	if idx != 0 || !changed {
		t.Fatalf("first update = (%d, %v), want (0, true)", idx, changed)
	}

	for _, pos := range []int64{250, 500, 999} {
		if _, changed := tr.OnTimeUpdate(pos); changed {
			t.Errorf("OnTimeUpdate(%d) reported a change", pos)
		}
	}
	if len(view.events) != 2 || len(view.scroll) != 1 {
		t.Fatalf("unchanged updates touched the view: events=%v scroll=%v", view.events, view.scroll)
	}

	idx, changed = tr.OnTimeUpdate(1000)
	if idx != 1 || !changed {
		t.Fatalf("update at 1000 = (%d, %v), want (1, true)", idx, changed)
	}

	want := []string{"on", "0", "off", "0", "on", "1"}
	if len(view.events) != len(want) {
		t.Fatalf("events = %v, want %v", view.events, want)
	}
	for i := range want {
		if view.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, view.events[i], want[i])
		}
	}
}

func TestTrackerScrollsBackToAnchor(t *testing.T) {
	tr, view, _ := newTestTracker(t)

	tr.OnTimeUpdate(0)    // top 100, anchor 100: no movement
	tr.OnTimeUpdate(2000) // top 180: scroll 80
	tr.OnTimeUpdate(3000) // top 220, already scrolled 80: scroll 40
	tr.OnTimeUpdate(1000) // top 140, scrolled 120: scroll -80

	want := []float64{0, 80, 40, -80}
	if len(view.scroll) != len(want) {
		t.Fatalf("scroll = %v, want %v", view.scroll, want)
	}
	for i := range want {
		if view.scroll[i] != want[i] {
			t.Errorf("scroll[%d] = %v, want %v", i, view.scroll[i], want[i])
		}
	}
}

func TestTrackerSelect(t *testing.T) {
	tr, _, player := newTestTracker(t)

	if err := tr.Select(2); err != nil {
		t.Fatalf("Select(2): %v", err)
	}
	if len(player.seeks) != 1 || player.seeks[0] != 2000 {
		t.Errorf("seeks = %v, want [2000]", player.seeks)
	}

	if err := tr.Select(4); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Select(4): expected ErrIndexRange, got %v", err)
	}
	if err := tr.Select(-1); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Select(-1): expected ErrIndexRange, got %v", err)
	}
}
