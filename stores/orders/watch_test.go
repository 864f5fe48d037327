package orderstore

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/storefront-client/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestWatchOrdersReceivesBroadcasts(t *testing.T) {
	var gotAuth string
	s := newTestStore(t, Config{}, func(r *gin.Engine) {
		r.GET("/orders/ws", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
			if err != nil {
				return
			}
			defer conn.Close()

			orders := []models.Order{
				{ID: "o1", Status: models.OrderStatusConfirmed, PaymentStatus: models.PaymentStatusPaid},
				{ID: "o1", Status: models.OrderStatusShipped, PaymentStatus: models.PaymentStatusPaid},
			}
			for _, o := range orders {
				if err := conn.WriteJSON(o); err != nil {
					return
				}
			}
			// Hold the connection open until the client goes away.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := s.WatchOrders(ctx)
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, models.OrderStatusConfirmed, first.Status)

	second := <-updates
	assert.Equal(t, models.OrderStatusShipped, second.Status)

	assert.Equal(t, "Bearer tok", gotAuth)

	cancel()
	select {
	case _, open := <-updates:
		assert.False(t, open, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestWatchOrdersClosesWhenConnectionDrops(t *testing.T) {
	s := newTestStore(t, Config{}, func(r *gin.Engine) {
		r.GET("/orders/ws", func(c *gin.Context) {
			conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
			if err != nil {
				return
			}
			// One frame, then hang up without waiting for the client.
			_ = conn.WriteJSON(models.Order{ID: "o1", Status: models.OrderStatusDelivered})
			conn.Close()
		})
	})

	// A background context never cancels; the feed must still wind down.
	updates, err := s.WatchOrders(context.Background())
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, models.OrderStatusDelivered, first.Status)

	select {
	case _, open := <-updates:
		assert.False(t, open, "channel should close when the server hangs up")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after the server hung up")
	}
}

func TestWatchOrdersDialFailure(t *testing.T) {
	s := newTestStore(t, Config{}, func(r *gin.Engine) {
		// No websocket route; the upgrade request 404s.
	})

	_, err := s.WatchOrders(context.Background())
	require.Error(t, err)
}
