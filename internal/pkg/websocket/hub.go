package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/tukang/internal/pkg/constants"
	jwtpkg "github.com/piresc/tukang/internal/pkg/jwt"
	"github.com/piresc/tukang/internal/pkg/logger"
	"github.com/piresc/tukang/internal/pkg/middleware"
	"github.com/piresc/tukang/internal/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one authenticated socket
type Client struct {
	ID     string
	Role   models.Role
	groups []string
	send   chan []byte
	conn   *websocket.Conn
	once   sync.Once
}

func newClient(id string, role models.Role, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		Role:   role,
		groups: []string{models.IDGroup(id), models.RoleGroup(role), models.GroupEveryone},
		send:   make(chan []byte, sendBuffer),
		conn:   conn,
	}
}

func (cl *Client) close() {
	cl.once.Do(func() { close(cl.send) })
}

// Hub keeps group membership for connected clients and delivers channel events.
// A client joins its id group, its role group and the everyone group.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	groups   map[string]map[*Client]struct{}
	cfg      models.JWTConfig
	upgrader websocket.Upgrader
}

// NewHub creates a hub authenticating sockets with cfg
func NewHub(cfg models.JWTConfig) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		groups:  make(map[string]map[*Client]struct{}),
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) register(cl *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
	for _, g := range cl.groups {
		members, ok := h.groups[g]
		if !ok {
			members = make(map[*Client]struct{})
			h.groups[g] = members
		}
		members[cl] = struct{}{}
	}
}

func (h *Hub) unregister(cl *Client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, cl)
	for _, g := range cl.groups {
		if members, ok := h.groups[g]; ok {
			delete(members, cl)
			if len(members) == 0 {
				delete(h.groups, g)
			}
		}
	}
	h.mu.Unlock()
	cl.close()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GroupSize returns the number of clients in group
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Deliver writes the event once to every client in the union of its groups.
// Slow clients whose buffer is full miss the event. Returns the number of
// clients the event was queued for.
func (h *Hub) Deliver(ev models.ChannelEvent) int {
	frame, err := json.Marshal(models.WSMessage{Event: ev.Event, Data: ev.Payload})
	if err != nil {
		logger.Warn("Failed to encode channel event",
			logger.String("event", ev.Event),
			logger.BookingID(ev.BookingID),
			logger.Err(err))
		return 0
	}

	h.mu.RLock()
	targets := make(map[*Client]struct{})
	for _, g := range ev.Groups {
		for cl := range h.groups[g] {
			targets[cl] = struct{}{}
		}
	}
	delivered := 0
	for cl := range targets {
		select {
		case cl.send <- frame:
			delivered++
		default:
			logger.Warn("Dropping event for slow client",
				logger.String("client_id", cl.ID),
				logger.String("event", ev.Event))
		}
	}
	h.mu.RUnlock()

	return delivered
}

func (h *Hub) authenticate(c echo.Context) (*jwtpkg.Claims, error) {
	token := c.QueryParam("token")
	if header := c.Request().Header.Get("Authorization"); header != "" {
		var ok bool
		if token, ok = middleware.BearerToken(header); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
	}
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization is required")
	}

	claims, err := jwtpkg.ValidateToken(token, h.cfg.Secret)
	if err != nil {
		logger.Warn("Socket token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}

// HandleConnection authenticates, upgrades and serves one socket until it closes
func (h *Hub) HandleConnection(c echo.Context) error {
	claims, err := h.authenticate(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := newClient(claims.UserID, claims.Role, conn)
	h.register(cl)
	logger.Debug("Socket connected",
		logger.String("client_id", cl.ID),
		logger.String("role", string(cl.Role)))

	go h.writePump(cl)
	h.readPump(cl)
	return nil
}

func (h *Hub) readPump(cl *Client) {
	defer func() {
		h.unregister(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Socket read failed",
					logger.String("client_id", cl.ID),
					logger.Err(err))
			}
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(cl, constants.EventError, models.WSErrorMessage{
				Code:    constants.ErrorInvalidFormat,
				Message: "invalid message format",
			})
			continue
		}

		// Clients only send keepalives; everything else flows server to client.
		switch msg.Event {
		case constants.EventPing:
			h.reply(cl, constants.EventPong, nil)
		default:
			h.reply(cl, constants.EventError, models.WSErrorMessage{
				Code:    constants.ErrorUnknownEvent,
				Message: "unsupported event " + msg.Event,
			})
		}
	}
}

func (h *Hub) reply(cl *Client, event string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	frame, err := json.Marshal(models.WSMessage{Event: event, Data: raw})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[cl]; !ok {
		return
	}
	select {
	case cl.send <- frame:
	default:
	}
}

func (h *Hub) writePump(cl *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		h.unregister(cl)
	}
}
