package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

const (
	wsEventStatus   = "status"
	wsEventResponse = "response"
	wsEventSession  = "session_event"
	wsEventError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMessage is every frame the server sends on /ws.
type wsMessage struct {
	Event   string           `json:"event"`
	Session string           `json:"session"`
	Message string           `json:"message,omitempty"`
	Status  *commands.Status `json:"status,omitempty"`
	Data    json.RawMessage  `json:"data,omitempty"`
}

type wsClient struct {
	conn      *websocket.Conn
	sessionID string
	send      chan wsMessage

	closeOnce sync.Once
	done      chan struct{}
}

func (c *wsClient) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// enqueue drops the frame if the client has stopped reading.
func (c *wsClient) enqueue(m wsMessage) {
	select {
	case c.send <- m:
	case <-c.done:
	default:
		slog.Warn("websocket client is not keeping up, dropping frame", "session", c.sessionID, "event", m.Event)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		respondError(w, http.StatusBadRequest, "session query parameter is required")
		return
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", "session", id, "error", err)
		return
	}

	c := &wsClient{
		conn:      conn,
		sessionID: id,
		send:      make(chan wsMessage, sendBuffer),
		done:      make(chan struct{}),
	}

	// The request context ends when the handler returns, so the client
	// lives on its own.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))

	if s.events != nil {
		unsubscribe, err := s.events.Subscribe(session.Subject(id, "*"), func(data []byte) {
			c.enqueue(wsMessage{Event: wsEventSession, Session: id, Data: json.RawMessage(data)})
		})
		if err != nil {
			slog.WarnContext(ctx, "subscribing to session events", "session", id, "error", err)
		} else {
			go func() {
				<-c.done
				unsubscribe()
			}()
		}
	}

	status := sess.Status()
	c.enqueue(wsMessage{Event: wsEventStatus, Session: id, Message: sess.Intro(), Status: &status})

	go c.writePump()
	go func() {
		defer cancel()
		s.readPump(ctx, c)
	}()
}

func (s *Server) readPump(ctx context.Context, c *wsClient) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req commandRequest
		err := c.conn.ReadJSON(&req)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket read", "session", c.sessionID, "error", err)
			}
			return
		}

		cmd := req.Command
		if strings.TrimSpace(req.Line) != "" {
			cmd = commands.ParseLine(req.Line)
			cmd.PlayerName = req.PlayerName
		}

		out, err := s.sessions.Dispatch(ctx, c.sessionID, cmd)
		if err != nil {
			c.enqueue(wsMessage{Event: wsEventError, Session: c.sessionID, Message: err.Error()})
			return
		}

		msg := wsMessage{Event: wsEventResponse, Session: c.sessionID, Message: out}
		if sess, err := s.sessions.Get(c.sessionID); err == nil {
			status := sess.Status()
			msg.Status = &status
		}
		c.enqueue(msg)
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case m := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteJSON(m)
			if err != nil {
				c.close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				c.close()
				return
			}

		case <-c.done:
			c.flush()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// flush writes frames queued before the client closed.
func (c *wsClient) flush() {
	for {
		select {
		case m := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(m); err != nil {
				return
			}
		default:
			return
		}
	}
}
