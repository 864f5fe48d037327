package models

import "time"

// Product is a catalog entry as served by the backend. The client holds
// read-only copies; archiving flips IsActive instead of deleting so old
// order records keep resolving.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ProductPayload is the body for POST /products and PATCH /products/:id/update.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Stock       int     `json:"stock,omitempty"`
}
