package models

import "time"

// Profile is the account record returned by GET /users/details. The backend
// wraps it in a "user" envelope on some deployments and returns it bare on
// others; the session store accepts both.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Mobile    string    `json:"mobileNo,omitempty"`
	Role      string    `json:"role,omitempty"`
	IsAdmin   bool      `json:"isAdmin,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// RegisterPayload is the body for POST /users/register.
type RegisterPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Mobile    string `json:"mobileNo,omitempty"`
}

// LoginPayload is the body for POST /users/login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
