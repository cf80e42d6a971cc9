// Copyright (c) 2024 Neomantra Corp
//
// A websocket relay that broadcasts book snapshots to remote observers —
// a second kind of reader alongside the TUI, both sitting behind the
// order-book manager's read-write lock (§5 "Additional reader threads may
// observe the order-book manager... through a read-write lock").

package wsrelay

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
	"github.com/luke-a-thompson/itchbook/internal/snapshot"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Relay accepts websocket connections and periodically pushes the current
// best-bid/best-ask for a fixed set of locates to every connected client.
type Relay struct {
	manager   *book.Manager
	directory *directory.Directory
	locates   []uint16
	logger    *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New returns a Relay that will broadcast state for the given stock_locates.
func New(manager *book.Manager, dir *directory.Directory, locates []uint16) *Relay {
	return &Relay{
		manager:   manager,
		directory: dir,
		locates:   locates,
		logger:    slog.Default(),
		clients:   make(map[*websocket.Conn]struct{}),
	}
}

// SetLogger overrides the logger used for connection and broadcast errors.
func (rl *Relay) SetLogger(logger *slog.Logger) { rl.logger = logger }

// ServeHTTP upgrades the connection to a websocket and registers it as a
// broadcast target until it disconnects.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rl.logger.Warn("itchbook: websocket upgrade failed", "error", err)
		return
	}

	rl.mu.Lock()
	rl.clients[conn] = struct{}{}
	rl.mu.Unlock()

	// Drain and discard client reads so ping/pong control frames keep
	// flowing; this relay is broadcast-only.
	go func() {
		defer rl.disconnect(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (rl *Relay) disconnect(conn *websocket.Conn) {
	rl.mu.Lock()
	delete(rl.clients, conn)
	rl.mu.Unlock()
	conn.Close()
}

// Broadcast sends the current snapshot rows to every connected client.
// The caller invokes it on its own cadence (e.g. every 250ms); the relay
// does not schedule its own broadcasts.
func (rl *Relay) Broadcast() {
	rows := snapshot.Collect(rl.manager, rl.directory, rl.locates)
	payload, err := json.Marshal(rows)
	if err != nil {
		rl.logger.Warn("itchbook: marshal snapshot failed", "error", err)
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for conn := range rl.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			rl.logger.Warn("itchbook: broadcast failed, dropping client", "error", err)
			go rl.disconnect(conn)
		}
	}
}

// ClientCount returns the number of currently connected observers.
func (rl *Relay) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
