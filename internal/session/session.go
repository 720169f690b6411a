// Package session drives the synced-lyrics highlighter and the navigation
// toggle for one open page. The page reports events (time updates, clicks)
// and the session answers with the presentation changes to apply.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/lyrics"
	"github.com/inkpress/inkpress/internal/nav"
)

// ErrNoLyrics is returned for lyric events before an init message.
var ErrNoLyrics = errors.New("session: lyrics not initialized")

// LineInfo describes one rendered lyric line as measured by the page.
type LineInfo struct {
	Time int64   `json:"time"`
	Top  float64 `json:"top"`
}

// Request is an inbound page event.
type Request struct {
	Type    string     `json:"type"` // "init", "timeupdate", "select" or "nav"
	Lines   []LineInfo `json:"lines,omitempty"`
	Anchor  float64    `json:"anchor,omitempty"`
	Seconds float64    `json:"seconds,omitempty"`
	Index   int        `json:"index,omitempty"`
}

// Event is an outbound presentation command.
type Event struct {
	Type    string   `json:"type"`
	Session string   `json:"session,omitempty"`
	Index   *int     `json:"index,omitempty"`
	Delta   *float64 `json:"delta,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	Target  string   `json:"target,omitempty"`
	Class   string   `json:"class,omitempty"`
	Text    string   `json:"text,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Sender delivers events to the page. Implementations must be safe for
// concurrent use: timer callbacks send from their own goroutines.
type Sender interface {
	Send(ev Event) error
}

// HandlerFunc handles one inbound request type.
type HandlerFunc func(req Request) error

// Session is the per-page state.
type Session struct {
	ID string

	sender   Sender
	toggle   *nav.Toggle
	handlers map[string]HandlerFunc

	mu      sync.Mutex
	tracker *lyrics.Tracker
}

// New creates a session that sends through sender. navOpts configures the
// navigation toggle.
func New(sender Sender, navOpts nav.Options) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		sender:   sender,
		handlers: make(map[string]HandlerFunc),
	}
	s.toggle = nav.New(
		labelTrigger{s},
		classPanel{s: s, target: "menu", class: "active"},
		classPanel{s: s, target: "content", class: "hide"},
		navOpts,
	)

	s.On("init", s.handleInit)
	s.On("timeupdate", s.handleTimeUpdate)
	s.On("select", s.handleSelect)
	s.On("nav", s.handleNav)
	return s
}

// On registers h for requests of type typ, replacing any earlier handler.
func (s *Session) On(typ string, h HandlerFunc) {
	s.handlers[typ] = h
}

// Dispatch decodes one raw message and runs its handler.
func (s *Session) Dispatch(data []byte) error {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("invalid message format: %w", err)
	}
	h, ok := s.handlers[req.Type]
	if !ok {
		return fmt.Errorf("unknown message type: %q", req.Type)
	}
	return h(req)
}

// Close cancels deferred work owned by the session.
func (s *Session) Close() {
	s.toggle.Stop()
}

// Ready sends the greeting that carries the session id.
func (s *Session) Ready() error {
	return s.sender.Send(Event{Type: "ready", Session: s.ID})
}

// SendError reports a failed request to the page.
func (s *Session) SendError(err error) {
	s.send(Event{Type: "error", Message: err.Error()})
}

func (s *Session) send(ev Event) {
	if err := s.sender.Send(ev); err != nil {
		log.Printf("session %s: send %s: %v", s.ID, ev.Type, err)
	}
}

func (s *Session) handleInit(req Request) error {
	times := make([]int64, len(req.Lines))
	tops := make([]float64, len(req.Lines))
	for i, l := range req.Lines {
		times[i] = l.Time
		tops[i] = l.Top
	}
	tl, err := lyrics.NewTimeline(times, tops)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tracker = lyrics.NewTracker(tl, lyricView{s}, seekPlayer{s}, req.Anchor)
	s.mu.Unlock()
	return nil
}

func (s *Session) currentTracker() (*lyrics.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return nil, ErrNoLyrics
	}
	return s.tracker, nil
}

func (s *Session) handleTimeUpdate(req Request) error {
	tr, err := s.currentTracker()
	if err != nil {
		return err
	}
	tr.OnTimeUpdate(lyrics.PositionFromSeconds(req.Seconds))
	return nil
}

func (s *Session) handleSelect(req Request) error {
	tr, err := s.currentTracker()
	if err != nil {
		return err
	}
	return tr.Select(req.Index)
}

func (s *Session) handleNav(Request) error {
	s.toggle.Activate()
	return nil
}

// lyricView turns tracker callbacks into events.
type lyricView struct{ s *Session }

func (v lyricView) Deactivate(index int) {
	v.s.send(Event{Type: "deactivate", Index: &index})
}

func (v lyricView) Activate(index int) {
	v.s.send(Event{Type: "activate", Index: &index})
}

func (v lyricView) ScrollBy(delta float64) {
	v.s.send(Event{Type: "scroll", Delta: &delta})
}

// seekPlayer asks the page's audio element to seek.
type seekPlayer struct{ s *Session }

func (p seekPlayer) Seek(millis int64) {
	seconds := float64(millis) / 1000
	p.s.send(Event{Type: "seek", Seconds: &seconds})
}

// classPanel flips a class on one of the navigation panels.
type classPanel struct {
	s      *Session
	target string
	class  string
}

func (p classPanel) Toggle() {
	p.s.send(Event{Type: "toggle", Target: p.target, Class: p.class})
}

// labelTrigger updates the menu button text.
type labelTrigger struct{ s *Session }

func (t labelTrigger) SetLabel(text string) {
	t.s.send(Event{Type: "label", Text: text})
}
