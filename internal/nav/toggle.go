// Package nav implements the responsive navigation toggle: a trigger that
// opens and closes a menu panel and hides the page content behind it.
package nav

import (
	"sync"
	"time"
)

const (
	DefaultHideDelay  = 240 * time.Millisecond
	DefaultOpenLabel  = "More"
	DefaultCloseLabel = "Close"
)

// Panel is an element whose visibility marker can be flipped.
type Panel interface {
	Toggle()
}

// Trigger is the control that activates the toggle.
type Trigger interface {
	SetLabel(text string)
}

// Stopper cancels deferred work. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler func(d time.Duration, f func()) Stopper

func afterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// Options configures a Toggle. Zero values select the defaults.
type Options struct {
	HideDelay  time.Duration
	OpenLabel  string
	CloseLabel string
	Schedule   Scheduler
}

// Toggle is the state of one navigation widget.
type Toggle struct {
	mu      sync.Mutex
	trigger Trigger
	menu    Panel
	content Panel
	opts    Options
	active  bool
	pending Stopper
}

// New creates an inactive toggle.
func New(trigger Trigger, menu, content Panel, opts Options) *Toggle {
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}
	if opts.OpenLabel == "" {
		opts.OpenLabel = DefaultOpenLabel
	}
	if opts.CloseLabel == "" {
		opts.CloseLabel = DefaultCloseLabel
	}
	if opts.Schedule == nil {
		opts.Schedule = afterFunc
	}
	return &Toggle{
		trigger: trigger,
		menu:    menu,
		content: content,
		opts:    opts,
	}
}

// Activate handles one trigger activation and returns the new state. The
// menu flips immediately. The content flip is deferred by HideDelay when
// closing and runs without delay when opening; any earlier pending flip is
// cancelled first.
func (t *Toggle) Activate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasActive := t.active
	t.active = !wasActive

	t.menu.Toggle()
	if t.active {
		t.trigger.SetLabel(t.opts.CloseLabel)
	} else {
		t.trigger.SetLabel(t.opts.OpenLabel)
	}

	if t.pending != nil {
		t.pending.Stop()
	}

	var delay time.Duration
	if wasActive {
		delay = t.opts.HideDelay
	}

	var timer Stopper
	timer = t.opts.Schedule(delay, func() {
		t.mu.Lock()
		// A timer that fired while a newer activation held the lock is stale.
		if t.pending != timer {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.mu.Unlock()
		t.content.Toggle()
	})
	t.pending = timer

	return t.active
}

// Active reports whether the menu is open.
func (t *Toggle) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Stop cancels any pending content flip.
func (t *Toggle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
