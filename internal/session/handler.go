package session

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/inkpress/inkpress/internal/nav"
)

// connSender serializes writes to one websocket connection.
type connSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *connSender) Send(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

// Handler upgrades page connections and runs one Session per connection.
type Handler struct {
	upgrader websocket.Upgrader
	navOpts  nav.Options
}

// NewHandler creates a Handler. With allowAll set, any origin may connect;
// otherwise only same-host and localhost pages are accepted.
func NewHandler(navOpts nav.Options, allowAll bool) *Handler {
	h := &Handler{navOpts: navOpts}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowAll {
				return true
			}
			return localOrigin(r)
		},
	}
	return h
}

// localOrigin accepts requests without an Origin header, from the same host,
// or from a localhost page.
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://")
	if host == r.Host {
		return true
	}
	name, _, _ := strings.Cut(host, ":")
	return name == "localhost" || name == "127.0.0.1"
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s := New(&connSender{conn: conn}, h.navOpts)
	defer s.Close()

	if err := s.Ready(); err != nil {
		log.Printf("session %s: websocket write: %v", s.ID, err)
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: websocket read: %v", s.ID, err)
			}
			return
		}
		if err := s.Dispatch(msg); err != nil {
			s.SendError(err)
		}
	}
}
