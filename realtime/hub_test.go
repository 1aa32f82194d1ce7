package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery/models"
	"food-delivery/notifications"
	"food-delivery/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *utils.TokenIssuer, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := utils.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
	authorizer := AuthorizerFunc(func(_ context.Context, actor models.Actor, channel string) error {
		if strings.HasPrefix(channel, "order:") {
			return nil
		}
		return models.Forbidden("You are not the owner of %s", channel)
	})
	hub := NewHub(authorizer, issuer, nil)

	router := gin.New()
	router.GET("/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return hub, issuer, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame serverFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestHubRejectsMissingToken(t *testing.T) {
	_, issuer, url := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	refresh, _, err := issuer.GenerateRefreshToken(1, models.RoleClient)
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(url+"?token="+refresh, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestHubDeliversToSubscribedChannels(t *testing.T) {
	hub, issuer, url := newTestServer(t)
	token, err := issuer.GenerateAccessToken(1, models.RoleClient)
	require.NoError(t, err)

	conn := dial(t, url+"?token="+token)

	frame := readFrame(t, conn)
	assert.Equal(t, "subscribed", frame.Type)
	assert.Equal(t, "user:1", frame.Channel)

	require.NoError(t, conn.WriteJSON(clientFrame{Action: "subscribe", Channel: "order:42"}))
	frame = readFrame(t, conn)
	assert.Equal(t, "subscribed", frame.Type)
	assert.Equal(t, "order:42", frame.Channel)
	assert.Equal(t, 1, hub.Subscribers("order:42"))

	require.NoError(t, hub.Publish(context.Background(), notifications.OrderChannel(42), notifications.Notification{
		Kind:    notifications.KindOrderConfirmed,
		Title:   notifications.TitleStatusUpdated,
		OrderID: 42,
	}))
	frame = readFrame(t, conn)
	assert.Equal(t, "notification", frame.Type)
	assert.Equal(t, "order:42", frame.Channel)
	require.NotNil(t, frame.Notification)
	assert.Equal(t, int64(42), frame.Notification.OrderID)
	assert.Equal(t, notifications.KindOrderConfirmed, frame.Notification.Kind)

	require.NoError(t, hub.Publish(context.Background(), "user:1", notifications.Notification{OrderID: 43}))
	frame = readFrame(t, conn)
	assert.Equal(t, "user:1", frame.Channel)

	require.NoError(t, conn.WriteJSON(clientFrame{Action: "unsubscribe", Channel: "order:42"}))
	frame = readFrame(t, conn)
	assert.Equal(t, "unsubscribed", frame.Type)
	assert.Zero(t, hub.Subscribers("order:42"))
}

func TestHubDeniesUnauthorizedSubscription(t *testing.T) {
	hub, issuer, url := newTestServer(t)
	token, err := issuer.GenerateAccessToken(2, models.RoleRestaurantOwner)
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(clientFrame{Action: "subscribe", Channel: "restaurant:10"}))
	frame := readFrame(t, conn)
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, "restaurant:10", frame.Channel)
	assert.Equal(t, "You are not the owner of restaurant:10", frame.Error)
	assert.Zero(t, hub.Subscribers("restaurant:10"))

	require.NoError(t, conn.WriteJSON(clientFrame{Action: "listen"}))
	frame = readFrame(t, conn)
	assert.Equal(t, "error", frame.Type)
	assert.Contains(t, frame.Error, "unknown action")
}

func TestHubForgetsClosedConnections(t *testing.T) {
	hub, issuer, url := newTestServer(t)
	token, err := issuer.GenerateAccessToken(5, models.RoleClient)
	require.NoError(t, err)

	conn := dial(t, url+"?token="+token)
	readFrame(t, conn)
	assert.Equal(t, 1, hub.Subscribers("user:5"))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.Subscribers("user:5") == 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.NoError(t, hub.Publish(context.Background(), "user:5", notifications.Notification{}))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
