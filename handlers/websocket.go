package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is served from any origin; there is no session to protect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMessage is what the board stream sends. The first message is a
// snapshot of the board, then one message per board event.
type streamMessage struct {
	Type          string                  `json:"type"`
	Notification  *entities.Notification  `json:"notification,omitempty"`
	Notifications []entities.Notification `json:"notifications,omitempty"`
}

// clientCommand is what a client may send: {"action":"dismiss","id":"..."}.
type clientCommand struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// ServeNotificationStream upgrades to a websocket and streams board events
func (h *HTTPHandlerImpl) ServeNotificationStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	events, unsubscribe := h.board.Subscribe()
	snapshot := streamMessage{Type: "snapshot", Notifications: h.board.List()}

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, snapshot, events, done)

	unsubscribe()
	conn.Close()
}

// readPump handles dismiss commands and detects the client going away.
func (h *HTTPHandlerImpl) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Action != "dismiss" {
			logging.Debug("Ignoring websocket message", "message", string(raw))
			continue
		}
		if err := h.board.Dismiss(cmd.ID); err != nil {
			logging.Debug("Websocket dismiss failed", "id", cmd.ID, "error", err)
		}
	}
}

func (h *HTTPHandlerImpl) writePump(conn *websocket.Conn, snapshot streamMessage, events <-chan entities.BoardEvent, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if snapshot.Notifications == nil {
		snapshot.Notifications = []entities.Notification{}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(snapshot); err != nil {
		return
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			n := ev.Notification
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(streamMessage{Type: string(ev.Type), Notification: &n}); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
