package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"food-delivery/metrics"
	"food-delivery/models"
	"food-delivery/notifications"
	"food-delivery/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 4096
	sendBufferSize = 64
)

// Authorizer decides whether an actor may subscribe to a channel.
type Authorizer interface {
	CanSubscribe(ctx context.Context, actor models.Actor, channel string) error
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, actor models.Actor, channel string) error

func (f AuthorizerFunc) CanSubscribe(ctx context.Context, actor models.Actor, channel string) error {
	return f(ctx, actor, channel)
}

type TokenValidator interface {
	ValidateToken(token string, want utils.TokenType) (*utils.Claims, error)
}

type clientFrame struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

type serverFrame struct {
	Type         string                      `json:"type"`
	Channel      string                      `json:"channel,omitempty"`
	Notification *notifications.Notification `json:"notification,omitempty"`
	Error        string                      `json:"error,omitempty"`
}

type client struct {
	hub   *Hub
	conn  *websocket.Conn
	actor models.Actor
	send  chan []byte

	mu     sync.Mutex
	closed bool
}

// Hub keeps WebSocket subscribers per channel and implements
// notifications.Publisher for them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*client]struct{}
	clients  map[*client]map[string]struct{}

	authorizer Authorizer
	tokens     TokenValidator
	upgrader   websocket.Upgrader
}

func NewHub(authorizer Authorizer, tokens TokenValidator, allowedOrigins []string) *Hub {
	return &Hub{
		channels:   make(map[string]map[*client]struct{}),
		clients:    make(map[*client]map[string]struct{}),
		authorizer: authorizer,
		tokens:     tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Publish queues n for every subscriber of channel. Subscribers whose
// buffer is full are disconnected.
func (h *Hub) Publish(ctx context.Context, channel string, n notifications.Notification) error {
	payload, err := json.Marshal(serverFrame{Type: "notification", Channel: channel, Notification: &n})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	h.mu.RLock()
	subscribers := make([]*client, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	for _, c := range subscribers {
		if !c.enqueue(payload) {
			log.WithFields(log.Fields{"user_id": c.actor.ID, "channel": channel}).Warn("Dropping slow websocket subscriber")
			h.remove(c)
		}
	}
	return ctx.Err()
}

// Subscribers reports how many connections listen on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// HandleWebSocket authenticates with the access token passed as the
// "token" query parameter or bearer header, then upgrades the connection.
// Every connection starts subscribed to its user channel.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	claims, err := h.tokens.ValidateToken(token, utils.TokenAccess)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
			Error:   models.CodeUnauthorized,
		})
		return
	}
	actor, err := claims.Actor()
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: "Invalid token subject", Error: models.CodeUnauthorized})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	cl := &client{
		hub:   h,
		conn:  conn,
		actor: actor,
		send:  make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[cl] = make(map[string]struct{})
	h.mu.Unlock()
	metrics.WebSocketConnections.Inc()

	go cl.writePump()

	userChannel := notifications.UserChannel(actor.ID)
	h.subscribe(cl, userChannel)
	cl.reply(serverFrame{Type: "subscribed", Channel: userChannel})

	go cl.readPump()
}

func (h *Hub) subscribe(c *client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c]
	if !ok {
		return
	}
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*client]struct{})
	}
	h.channels[channel][c] = struct{}{}
	subs[channel] = struct{}{}
}

func (h *Hub) unsubscribe(c *client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.clients[c]; ok {
		delete(subs, channel)
	}
	h.dropFromChannel(c, channel)
}

func (h *Hub) dropFromChannel(c *client, channel string) {
	delete(h.channels[channel], c)
	if len(h.channels[channel]) == 0 {
		delete(h.channels, channel)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	subs, ok := h.clients[c]
	if ok {
		for channel := range subs {
			h.dropFromChannel(c, channel)
		}
		delete(h.clients, c)
	}
	h.mu.Unlock()

	if ok {
		metrics.WebSocketConnections.Dec()
	}
	c.close()
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// enqueue reports false only when the send buffer is full.
func (c *client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// reply queues a control frame without blocking the reader.
func (c *client) reply(frame serverFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.enqueue(payload)
}

func (c *client) readPump() {
	defer c.hub.remove(c)

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame clientFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).WithField("user_id", c.actor.ID).Debug("websocket read error")
			}
			return
		}
		c.handle(frame)
	}
}

func (c *client) handle(frame clientFrame) {
	switch frame.Action {
	case "subscribe":
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := c.hub.authorizer.CanSubscribe(ctx, c.actor, frame.Channel)
		cancel()
		if err != nil {
			message := "Subscription denied"
			if appErr, ok := models.AsAppError(err); ok {
				message = appErr.Message
			} else {
				log.WithError(err).WithField("channel", frame.Channel).Error("Subscription check failed")
			}
			c.reply(serverFrame{Type: "error", Channel: frame.Channel, Error: message})
			return
		}
		c.hub.subscribe(c, frame.Channel)
		c.reply(serverFrame{Type: "subscribed", Channel: frame.Channel})
	case "unsubscribe":
		c.hub.unsubscribe(c, frame.Channel)
		c.reply(serverFrame{Type: "unsubscribed", Channel: frame.Channel})
	default:
		c.reply(serverFrame{Type: "error", Error: fmt.Sprintf("unknown action '%s'", frame.Action)})
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.hub.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.remove(c)
				return
			}
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
