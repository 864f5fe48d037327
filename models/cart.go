package models

// CartItem is one line of the server-side cart document. Subtotal is
// computed by the backend; the client never recalculates it.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartDocument is the raw cart record owned by the backend. TotalPrice is
// authoritative; an empty document is {CartItems: [], TotalPrice: 0}.
type CartDocument struct {
	CartItems  []CartItem `json:"cartItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// EmptyCart is the normalized form used when the user has no cart record yet.
func EmptyCart() CartDocument {
	return CartDocument{CartItems: []CartItem{}}
}

// EnrichedCartItem is a cart line joined with live product details for
// display. It is derived state, rebuilt on every fetch and never persisted.
type EnrichedCartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// AddToCartPayload is the body for POST /cart/add-to-cart.
type AddToCartPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityPayload is the body for PATCH /cart/update-cart-quantity.
type UpdateQuantityPayload struct {
	ProductID   string `json:"productId"`
	NewQuantity int    `json:"newQuantity"`
}
