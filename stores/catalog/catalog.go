// Package catalogstore caches the product catalog: the active list shown to
// customers, the full admin list, and the currently selected product. The
// three caches are independent and can disagree until re-fetched.
package catalogstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
)

// Store holds the catalog caches.
type Store struct {
	client *api.Client

	mu       sync.RWMutex
	active   []models.Product
	all      []models.Product
	selected *models.Product
	loading  bool
	errMsg   string
}

// New builds a catalog store over the given API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// FetchActive refreshes the customer-facing product list. A non-array body
// coerces to an empty list without error; a failed request records the
// server's message (falling back to a generic one) in Err.
func (s *Store) FetchActive(ctx context.Context) error {
	return s.fetchList(ctx, "/products/active", &s.active)
}

// FetchAllAdmin refreshes the admin master list, including archived items.
func (s *Store) FetchAllAdmin(ctx context.Context) error {
	return s.fetchList(ctx, "/products/all", &s.all)
}

func (s *Store) fetchList(ctx context.Context, path string, dst *[]models.Product) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var raw json.RawMessage
	if err := s.client.Get(ctx, path, &raw); err != nil {
		s.setErr(fetchErrorMessage(err))
		return err
	}

	products := coerceProductList(raw)
	s.mu.Lock()
	*dst = products
	s.mu.Unlock()
	return nil
}

// FetchOne loads full details for a single product into the selected slot
// and returns it. Failures are recorded in Err and returned.
func (s *Store) FetchOne(ctx context.Context, id string) (*models.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var product models.Product
	if err := s.client.Get(ctx, "/products/"+id, &product); err != nil {
		s.setErr(fetchErrorMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.selected = &product
	s.mu.Unlock()
	return &product, nil
}

// AddProduct creates a product and returns the raw response. Caches are not
// updated; callers re-fetch.
func (s *Store) AddProduct(ctx context.Context, payload models.ProductPayload) (json.RawMessage, error) {
	return s.mutate(ctx, func(ctx context.Context, out *json.RawMessage) error {
		return s.client.Post(ctx, "/products", payload, out)
	})
}

// UpdateProduct updates a product and returns the raw response.
func (s *Store) UpdateProduct(ctx context.Context, id string, payload models.ProductPayload) (json.RawMessage, error) {
	return s.mutate(ctx, func(ctx context.Context, out *json.RawMessage) error {
		return s.client.Patch(ctx, "/products/"+id+"/update", payload, out)
	})
}

// ArchiveProduct soft-deletes a product: the backend flips its active flag
// so historical orders keep resolving. Nothing is ever hard-deleted.
func (s *Store) ArchiveProduct(ctx context.Context, id string) (json.RawMessage, error) {
	return s.mutate(ctx, func(ctx context.Context, out *json.RawMessage) error {
		return s.client.Patch(ctx, "/products/"+id+"/archive", nil, out)
	})
}

// ActivateProduct re-lists an archived product.
func (s *Store) ActivateProduct(ctx context.Context, id string) (json.RawMessage, error) {
	return s.mutate(ctx, func(ctx context.Context, out *json.RawMessage) error {
		return s.client.Patch(ctx, "/products/"+id+"/activate", nil, out)
	})
}

func (s *Store) mutate(ctx context.Context, call func(context.Context, *json.RawMessage) error) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := call(ctx, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Active returns the customer-facing list snapshot.
func (s *Store) Active() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.active)
}

// All returns the admin list snapshot.
func (s *Store) All() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.all)
}

// Selected returns the last product loaded by FetchOne, or nil.
func (s *Store) Selected() *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	p := *s.selected
	return &p
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

func snapshot(src []models.Product) []models.Product {
	out := make([]models.Product, len(src))
	copy(out, src)
	return out
}

// coerceProductList decodes a product array, treating anything else (null,
// an object, garbage) as an empty catalog.
func coerceProductList(raw json.RawMessage) []models.Product {
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil || products == nil {
		return []models.Product{}
	}
	return products
}

// fetchErrorMessage picks the first of: server message, server error field,
// generic fallback.
func fetchErrorMessage(err error) string {
	if apiErr, ok := api.AsAPIError(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.ErrField != "" {
			return apiErr.ErrField
		}
	}
	return "Failed to load products."
}
