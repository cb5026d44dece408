package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const wsWriteWait = 10 * time.Second

type wsClient struct {
	conn *websocket.Conn

	// gorilla allows one concurrent writer per connection
	writeMu sync.Mutex

	practitionerID string
}

func (c *wsClient) send(msg shared.WebSocketMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(msg)
}

// Hub tracks the sessions announced on /websocket and tells every connected
// companion when someone joins or leaves.
type Hub struct {
	svc      *Service
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  []*wsClient
	sessions map[*wsClient][]data.Session
}

func NewHub(svc *Service, logger *zap.Logger) *Hub {
	return &Hub{
		svc: svc,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sessions: map[*wsClient][]data.Session{},
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Info("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &wsClient{conn: conn}
	h.mu.Lock()
	h.clients = append(h.clients, c)
	h.mu.Unlock()
	defer h.leave(c)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg shared.WebSocketMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.sendError(c, "bad message")
			continue
		}
		h.handle(r.Context(), c, msg)
	}
}

func (h *Hub) handle(ctx context.Context, c *wsClient, msg shared.WebSocketMessage) {
	switch msg.Event {
	case shared.EventStartSession:
		h.startSession(ctx, c, msg.Data)
	case shared.EventConnectVirtual:
		h.connectVirtual(ctx, c, msg.Data)
	default:
		h.sendError(c, "unknown event "+msg.Event)
	}
}

func (h *Hub) startSession(ctx context.Context, c *wsClient, practitionerID string) {
	p, err := h.svc.Practitioner(ctx, practitionerID)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	last := p.LastSession()
	if last == nil {
		h.sendError(c, "Practitioner has no session")
		return
	}

	h.mu.Lock()
	c.practitionerID = practitionerID
	h.sessions[c] = []data.Session{*last}
	all := h.allSessionsLocked()
	others := h.othersLocked(c)
	h.mu.Unlock()

	h.log.Debug("companion joined", zap.String("practitioner", practitionerID), zap.Int("sessions", len(all)))
	h.broadcast(others, shared.WebSocketMessage{
		Event:                shared.EventNewCompanion,
		Data:                 mustJSON(all),
		PractitionersSession: mustJSON(last),
	})
	h.sendTo(c, shared.WebSocketMessage{Event: shared.EventCompanionsSessions, Data: mustJSON(all)})
}

func (h *Hub) connectVirtual(ctx context.Context, c *wsClient, countData string) {
	count, err := strconv.ParseInt(countData, 10, 64)
	if err != nil || count <= 0 {
		h.sendError(c, shared.MsgNegativeIntegerValue)
		return
	}
	h.mu.Lock()
	id := c.practitionerID
	h.mu.Unlock()
	if id == "" {
		h.sendError(c, "Start a session before adding virtual sessions")
		return
	}

	virtual, err := h.svc.VirtualSessions(ctx, id, count)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	h.mu.Lock()
	h.sessions[c] = append(h.sessions[c], virtual...)
	all := h.allSessionsLocked()
	everyone := append([]*wsClient(nil), h.clients...)
	h.mu.Unlock()

	h.broadcast(everyone, shared.WebSocketMessage{Event: shared.EventCompanionsSessions, Data: mustJSON(all)})
}

func (h *Hub) leave(c *wsClient) {
	h.mu.Lock()
	removed := h.sessions[c]
	delete(h.sessions, c)
	for i, other := range h.clients {
		if other == c {
			h.clients = append(h.clients[:i], h.clients[i+1:]...)
			break
		}
	}
	all := h.allSessionsLocked()
	others := append([]*wsClient(nil), h.clients...)
	h.mu.Unlock()

	_ = c.conn.Close()
	if len(removed) == 0 {
		return
	}
	h.broadcast(others, shared.WebSocketMessage{
		Event:                shared.EventCompanionLeft,
		Data:                 mustJSON(all),
		PractitionersSession: mustJSON(removed[0]),
	})
}

// Sessions lists every announced session in connection order.
func (h *Hub) Sessions() []data.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allSessionsLocked()
}

// Close drops every connection. Hijacked connections are not closed by
// http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := append([]*wsClient(nil), h.clients...)
	h.mu.Unlock()
	for _, c := range clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) allSessionsLocked() []data.Session {
	all := []data.Session{}
	for _, c := range h.clients {
		all = append(all, h.sessions[c]...)
	}
	return all
}

func (h *Hub) othersLocked(c *wsClient) []*wsClient {
	var out []*wsClient
	for _, other := range h.clients {
		if other != c {
			out = append(out, other)
		}
	}
	return out
}

func (h *Hub) broadcast(clients []*wsClient, msg shared.WebSocketMessage) {
	for _, c := range clients {
		h.sendTo(c, msg)
	}
}

func (h *Hub) sendTo(c *wsClient, msg shared.WebSocketMessage) {
	if err := c.send(msg); err != nil {
		h.log.Debug("websocket send failed", zap.Error(err))
	}
}

func (h *Hub) sendError(c *wsClient, text string) {
	h.sendTo(c, shared.WebSocketMessage{Event: shared.EventError, Data: text})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
