// Package cartstore manages the shopping cart. The backend owns the cart
// document; this store caches it and derives the enriched item list the UI
// renders, joining each line with live product details.
package cartstore

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
)

// Store holds the raw cart document and its enriched view.
type Store struct {
	client *api.Client

	mu       sync.RWMutex
	cartDoc  models.CartDocument
	enriched []models.EnrichedCartItem
	loading  bool
	errMsg   string
}

// New builds a cart store over the given API client.
func New(client *api.Client) *Store {
	return &Store{
		client:   client,
		enriched: []models.EnrichedCartItem{},
	}
}

// FetchCart pulls the cart document and rebuilds the enriched view. A user
// with no cart record yet (404 or a "cart not found" message) and a
// malformed document both normalize to an empty cart without error. Each
// line's product lookup runs in parallel; a failed lookup degrades that
// line to the "Unknown product" placeholder instead of failing the fetch.
// Genuine failures are recorded in Err and returned.
func (s *Store) FetchCart(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var raw json.RawMessage
	if err := s.client.Get(ctx, "/cart/get-cart", &raw); err != nil {
		if isCartMissing(err) {
			s.resetEmpty()
			return nil
		}
		s.setErr("Failed to load cart.")
		return err
	}

	doc := coerceCart(raw)
	if doc == nil {
		s.resetEmpty()
		return nil
	}

	enriched := make([]models.EnrichedCartItem, len(doc.CartItems))
	var wg sync.WaitGroup
	for i, item := range doc.CartItems {
		wg.Add(1)
		go func(i int, item models.CartItem) {
			defer wg.Done()
			enriched[i] = s.enrichItem(ctx, item)
		}(i, item)
	}
	wg.Wait()

	s.mu.Lock()
	s.cartDoc = *doc
	s.enriched = enriched
	s.mu.Unlock()
	return nil
}

// AddToCart adds a product, then re-fetches the cart so local state matches
// the backend. There is no optimistic update.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) error {
	payload := models.AddToCartPayload{ProductID: productID, Quantity: quantity}
	if err := s.client.Post(ctx, "/cart/add-to-cart", payload, nil); err != nil {
		return err
	}
	return s.FetchCart(ctx)
}

// UpdateQuantity sets a line's quantity, then re-fetches.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, newQuantity int) error {
	payload := models.UpdateQuantityPayload{ProductID: productID, NewQuantity: newQuantity}
	if err := s.client.Patch(ctx, "/cart/update-cart-quantity", payload, nil); err != nil {
		return err
	}
	return s.FetchCart(ctx)
}

// RemoveItem removes a line, then re-fetches.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	if err := s.client.Patch(ctx, "/cart/"+productID+"/remove-from-cart", nil, nil); err != nil {
		return err
	}
	return s.FetchCart(ctx)
}

// ClearCart empties the cart, then re-fetches.
func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.client.Put(ctx, "/cart/clear-cart", nil, nil); err != nil {
		return err
	}
	return s.FetchCart(ctx)
}

// Items returns the enriched view snapshot.
func (s *Store) Items() []models.EnrichedCartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EnrichedCartItem, len(s.enriched))
	copy(out, s.enriched)
	return out
}

// Doc returns the raw cart document.
func (s *Store) Doc() models.CartDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartDoc
}

// Total returns the server-computed total, 0 for an empty cart.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartDoc.TotalPrice
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last fetch error message, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) enrichItem(ctx context.Context, item models.CartItem) models.EnrichedCartItem {
	enriched := models.EnrichedCartItem{
		ProductID: item.ProductID,
		Name:      "Unknown product",
		Quantity:  item.Quantity,
		Subtotal:  item.Subtotal,
	}

	var product models.Product
	if err := s.client.Get(ctx, "/products/"+item.ProductID, &product); err != nil {
		// Product deleted or lookup failed; keep the placeholder.
		return enriched
	}
	if product.Name != "" {
		enriched.Name = product.Name
	}
	enriched.Price = product.Price
	return enriched
}

func (s *Store) resetEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartDoc = models.EmptyCart()
	s.enriched = []models.EnrichedCartItem{}
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

// coerceCart unwraps the {"cart": {...}} envelope. Returns nil when the
// body is malformed or carries no item array, which callers treat as an
// empty cart.
func coerceCart(raw json.RawMessage) *models.CartDocument {
	var envelope struct {
		Cart *models.CartDocument `json:"cart"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	if envelope.Cart == nil || envelope.Cart.CartItems == nil {
		return nil
	}
	return envelope.Cart
}

// isCartMissing detects the expected "no cart yet" condition for new users.
func isCartMissing(err error) bool {
	apiErr, ok := api.AsAPIError(err)
	if !ok {
		return false
	}
	if apiErr.IsNotFound() {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "cart not found")
}
