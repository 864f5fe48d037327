// Package orderstore drives checkout and payment: creating the order
// record, opening a hosted card-payment session, submitting manual
// (GCash/bank) payment references, downloading receipts and fetching order
// history.
//
// Error contract, per operation: every action records a UI-facing message
// in Err and also returns the error, so callers can choose to handle it
// directly. FetchMyOrders additionally empties the history on failure.
package orderstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
)

// ErrStripeURLMissing is returned when the payment-session response carries
// no hosted checkout URL.
var ErrStripeURLMissing = errors.New("stripe session URL missing")

// RedirectFunc sends the user to the hosted payment page. The CLI opens or
// prints the URL; a browser shell would navigate.
type RedirectFunc func(url string) error

// Config holds order store configuration.
type Config struct {
	Client      *api.Client
	Redirect    RedirectFunc // nil disables the post-session redirect
	DownloadDir string       // receipt destination, "." when empty
}

// Store holds order history and drives the payment flows.
type Store struct {
	client      *api.Client
	redirect    RedirectFunc
	downloadDir string

	mu      sync.RWMutex
	mine    []models.Order
	loading bool
	errMsg  string
}

// New builds an order store.
func New(cfg Config) *Store {
	dir := cfg.DownloadDir
	if dir == "" {
		dir = "."
	}
	return &Store{
		client:      cfg.Client,
		redirect:    cfg.Redirect,
		downloadDir: dir,
		mine:        []models.Order{},
	}
}

// Checkout creates the pre-payment order record and returns the raw
// response for the caller to interpret.
func (s *Store) Checkout(ctx context.Context) (json.RawMessage, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var raw json.RawMessage
	if err := s.client.Post(ctx, "/orders/checkout", nil, &raw); err != nil {
		s.setErr("Checkout failed.")
		return nil, err
	}
	return raw, nil
}

// CreateStripeSession requests a hosted card-payment session and hands its
// URL to the redirect func. Success has no return value; navigation is the
// outcome. MethodType defaults to "card" and SaveCard to true when unset.
func (s *Store) CreateStripeSession(ctx context.Context, payload models.StripeSessionPayload) error {
	if payload.MethodType == "" {
		payload.MethodType = "card"
	}
	if payload.SaveCard == nil {
		saveCard := true
		payload.SaveCard = &saveCard
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := s.client.Post(ctx, "/payments/stripe", payload, &session); err != nil {
		s.setErr("Stripe initiation failed.")
		return err
	}
	if session.URL == "" {
		s.setErr("Stripe initiation failed.")
		return ErrStripeURLMissing
	}

	if s.redirect != nil {
		if err := s.redirect(session.URL); err != nil {
			s.setErr("Stripe initiation failed.")
			return err
		}
	}
	return nil
}

// SubmitManualPayment sends a payment reference to the endpoint selected by
// the method discriminator: "gcash" to the GCash endpoint, anything else to
// the bank endpoint. Returns the raw response.
func (s *Store) SubmitManualPayment(ctx context.Context, payload models.ManualPaymentPayload) (json.RawMessage, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	endpoint := "/payments/bank"
	if payload.Method == "gcash" {
		endpoint = "/payments/gcash"
	}

	var raw json.RawMessage
	if err := s.client.Post(ctx, endpoint, payload, &raw); err != nil {
		s.setErr("Failed to submit payment reference.")
		return nil, err
	}
	return raw, nil
}

// DownloadReceipt fetches the PDF receipt for a payment and writes it to
// receipt-<id>.pdf in the download directory, returning the path.
func (s *Store) DownloadReceipt(ctx context.Context, paymentID string) (string, error) {
	raw, err := s.client.GetRaw(ctx, "/payments/"+paymentID+"/receipt")
	if err != nil {
		return "", receiptError(err)
	}

	path := filepath.Join(s.downloadDir, "receipt-"+paymentID+".pdf")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("save receipt: %w", err)
	}
	return path, nil
}

// FetchMyOrders refreshes order history. The timestamp query defeats any
// intermediary cache. A body without an orders array empties the list
// without error; a failed request empties it and records the message.
func (s *Store) FetchMyOrders(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	path := fmt.Sprintf("/orders/my-orders?t=%d", time.Now().UnixMilli())

	var raw json.RawMessage
	if err := s.client.Get(ctx, path, &raw); err != nil {
		s.mu.Lock()
		s.mine = []models.Order{}
		s.errMsg = "Unable to retrieve your order history."
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.mine = coerceOrders(raw)
	s.mu.Unlock()
	return nil
}

// ResetOrders clears the cached history and error.
func (s *Store) ResetOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mine = []models.Order{}
	s.errMsg = ""
}

// Mine returns the order history snapshot.
func (s *Store) Mine() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.mine))
	copy(out, s.mine)
	return out
}

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error message, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
	if v {
		s.errMsg = ""
	}
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

func coerceOrders(raw json.RawMessage) []models.Order {
	var envelope struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Orders == nil {
		return []models.Order{}
	}
	return envelope.Orders
}

// receiptError extracts the most useful message: the backend envelope's
// message when present, otherwise the transport error itself.
func receiptError(err error) error {
	if apiErr, ok := api.AsAPIError(err); ok && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	if err != nil {
		return err
	}
	return errors.New("could not download receipt")
}
