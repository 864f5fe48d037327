package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting payment
	OrderStatusConfirmed OrderStatus = "confirmed" // Payment verified by seller
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

// OrderProduct is one line of an order as returned by GET /orders/my-orders.
type OrderProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is an order record. The client treats it as opaque history apart
// from PaymentID, which feeds the receipt download.
type Order struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId,omitempty"`
	Products      []OrderProduct `json:"productsOrdered,omitempty"`
	TotalAmount   float64        `json:"totalPrice"`
	Status        OrderStatus    `json:"status,omitempty"`
	PaymentStatus PaymentStatus  `json:"paymentStatus,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty"` // e.g. "card", "gcash", "bank"
	PaymentID     string         `json:"paymentId,omitempty"`
	OrderedOn     time.Time      `json:"orderedOn,omitempty"`
}

// StripeSessionPayload is the body for POST /payments/stripe. The orders
// store fills MethodType and SaveCard with their defaults ("card", true)
// when unset; SaveCard is a pointer so leaving it nil means "default", not
// "opt out".
type StripeSessionPayload struct {
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
	MethodType string  `json:"methodType"`
	SaveCard   *bool   `json:"saveCard"`
}

// ManualPaymentPayload is the body for POST /payments/gcash and
// POST /payments/bank. Method selects the endpoint and ReferenceNo carries
// the customer's transfer reference.
type ManualPaymentPayload struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"` // "gcash" routes to gcash, anything else to bank
	ReferenceNo string  `json:"referenceNo"`
	AccountName string  `json:"accountName,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
