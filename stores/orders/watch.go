package orderstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/junaidrashid-git/storefront-client/models"
)

// WatchOrders subscribes to the backend's order broadcast feed. Each frame
// is a JSON order record. The channel closes when ctx ends or the
// connection drops; there is no automatic reconnect.
func (s *Store) WatchOrders(ctx context.Context) (<-chan models.Order, error) {
	endpoint, err := wsEndpoint(s.client.BaseURL(), "/orders/ws")
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if token := s.client.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("dial order feed: %w", err)
	}

	updates := make(chan models.Order)
	done := make(chan struct{})

	// Closing the connection on cancel unblocks the reader; done lets this
	// goroutine exit when the connection drops on its own.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(updates)
		defer close(done)
		defer conn.Close()
		for {
			var order models.Order
			if err := conn.ReadJSON(&order); err != nil {
				return
			}
			select {
			case updates <- order:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}

// wsEndpoint rewrites the API base URL onto the websocket scheme.
func wsEndpoint(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + path
	return u.String(), nil
}
