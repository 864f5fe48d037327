package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/storage"
	cartstore "github.com/junaidrashid-git/storefront-client/stores/cart"
	catalogstore "github.com/junaidrashid-git/storefront-client/stores/catalog"
	notifystore "github.com/junaidrashid-git/storefront-client/stores/notify"
	orderstore "github.com/junaidrashid-git/storefront-client/stores/orders"
	sessionstore "github.com/junaidrashid-git/storefront-client/stores/session"
)

// newTestApp wires the stores against an address nothing listens on;
// argument validation runs before any request goes out.
func newTestApp(t *testing.T) *app {
	t.Helper()

	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	client := api.New(api.Config{BaseURL: "http://127.0.0.1:1"})
	notify := notifystore.New()

	session, err := sessionstore.New(client, st, notify)
	require.NoError(t, err)

	return &app{
		session: session,
		catalog: catalogstore.New(client),
		cart:    cartstore.New(client),
		orders:  orderstore.New(orderstore.Config{Client: client}),
		notify:  notify,
	}
}

func TestRunRejectsBadNumericArgs(t *testing.T) {
	cases := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"cart-add quantity", "cart-add", []string{"p1", "abc"}, "invalid quantity"},
		{"cart-set quantity", "cart-set", []string{"p1", "abc"}, "invalid quantity"},
		{"add-product price", "add-product", []string{"Cookie", "ten"}, "invalid price"},
		{"add-product stock", "add-product", []string{"Cookie", "10", "lots"}, "invalid stock"},
		{"pay-card amount", "pay-card", []string{"o1", "free"}, "invalid amount"},
		{"pay-gcash amount", "pay-gcash", []string{"o1", "free", "REF-001"}, "invalid amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestApp(t)
			err := a.run(context.Background(), tc.cmd, tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	a := newTestApp(t)
	err := a.run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
