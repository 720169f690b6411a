package nav

import (
	"sync"
	"testing"
	"time"
)

type countingPanel struct {
	mu    sync.Mutex
	flips int
}

func (p *countingPanel) Toggle() {
	p.mu.Lock()
	p.flips++
	p.mu.Unlock()
}

func (p *countingPanel) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flips
}

type labelTrigger struct {
	labels []string
}

func (l *labelTrigger) SetLabel(text string) { l.labels = append(l.labels, text) }

// fakeTimer is a manually fired timer.
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) schedule(d time.Duration, fn func()) Stopper {
	ft := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, ft)
	return ft
}

// fireAll runs every timer that has not been stopped, in scheduling order.
func (s *fakeScheduler) fireAll() {
	for _, ft := range s.timers {
		if !ft.stopped {
			ft.stopped = true
			ft.fn()
		}
	}
}

func newTestToggle() (*Toggle, *labelTrigger, *countingPanel, *countingPanel, *fakeScheduler) {
	trigger := &labelTrigger{}
	menu := &countingPanel{}
	content := &countingPanel{}
	sched := &fakeScheduler{}
	tg := New(trigger, menu, content, Options{Schedule: sched.schedule})
	return tg, trigger, menu, content, sched
}

func TestActivateOpens(t *testing.T) {
	tg, trigger, menu, content, sched := newTestToggle()

	if !tg.Activate() {
		t.Fatal("first activation should open")
	}
	if menu.count() != 1 {
		t.Errorf("menu flips = %d, want 1", menu.count())
	}
	if trigger.labels[len(trigger.labels)-1] != DefaultCloseLabel {
		t.Errorf("label = %q, want %q", trigger.labels[len(trigger.labels)-1], DefaultCloseLabel)
	}
	if len(sched.timers) != 1 || sched.timers[0].delay != 0 {
		t.Fatalf("opening should schedule an immediate flip, got %+v", sched.timers)
	}
	if content.count() != 0 {
		t.Error("content flipped before the timer fired")
	}

	sched.fireAll()
	if content.count() != 1 {
		t.Errorf("content flips = %d, want 1", content.count())
	}
}

func TestActivateClosesWithDelay(t *testing.T) {
	tg, trigger, menu, content, sched := newTestToggle()

	tg.Activate()
	sched.fireAll()

	if tg.Activate() {
		t.Fatal("second activation should close")
	}
	if menu.count() != 2 {
		t.Errorf("menu flips = %d, want 2", menu.count())
	}
	if trigger.labels[len(trigger.labels)-1] != DefaultOpenLabel {
		t.Errorf("label = %q, want %q", trigger.labels[len(trigger.labels)-1], DefaultOpenLabel)
	}
	last := sched.timers[len(sched.timers)-1]
	if last.delay != DefaultHideDelay {
		t.Errorf("closing delay = %v, want %v", last.delay, DefaultHideDelay)
	}

	sched.fireAll()
	if content.count() != 2 {
		t.Errorf("content flips = %d, want 2", content.count())
	}
}

func TestRapidActivationsCancelEarlierTimer(t *testing.T) {
	tg, _, menu, content, sched := newTestToggle()

	tg.Activate()
	sched.fireAll()

	// Close and reopen inside the hide delay.
	tg.Activate()
	tg.Activate()

	if n := len(sched.timers); n != 3 {
		t.Fatalf("timers = %d, want 3", n)
	}
	if !sched.timers[1].stopped {
		t.Error("the closing timer should have been cancelled")
	}

	sched.fireAll()
	if menu.count() != 3 {
		t.Errorf("menu flips = %d, want 3", menu.count())
	}
	// Only the final timer fires: one flip from the first open, one from the last.
	if content.count() != 2 {
		t.Errorf("content flips = %d, want 2", content.count())
	}
	if !tg.Active() {
		t.Error("toggle should be active")
	}
}

func TestStopCancelsPending(t *testing.T) {
	tg, _, _, content, sched := newTestToggle()

	tg.Activate()
	tg.Stop()
	sched.fireAll()

	if content.count() != 0 {
		t.Errorf("content flips = %d, want 0 after Stop", content.count())
	}
}

func TestRealTimerOnlyLastFires(t *testing.T) {
	trigger := &labelTrigger{}
	menu := &countingPanel{}
	content := &countingPanel{}
	tg := New(trigger, menu, content, Options{HideDelay: 50 * time.Millisecond})

	tg.Activate()
	time.Sleep(20 * time.Millisecond)
	if content.count() != 1 {
		t.Fatalf("content flips after open = %d, want 1", content.count())
	}

	tg.Activate() // close, deferred
	tg.Activate() // reopen, replaces the deferred close

	time.Sleep(150 * time.Millisecond)
	if content.count() != 2 {
		t.Errorf("content flips = %d, want 2", content.count())
	}
}
