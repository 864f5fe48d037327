// Package notifystore holds ephemeral UI notifications: a stacked toast
// queue and a single-slot centered toast.
package notifystore

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultToastTTL  = 2400 * time.Millisecond
	defaultCenterTTL = 2200 * time.Millisecond
)

// Toast is one entry of the stacked queue.
type Toast struct {
	ID      string
	Message string
	Type    string // "success", "error", ...
}

// CenterToast is the single centered notification. At most one is visible;
// a new one replaces any prior occupant.
type CenterToast struct {
	Message string
}

// Store manages both notification queues. The zero TTLs mean defaults; tests
// shorten them.
type Store struct {
	mu          sync.Mutex
	toasts      []Toast
	centerToast *CenterToast

	ToastTTL  time.Duration
	CenterTTL time.Duration
}

// New returns a notification store with default expiry delays.
func New() *Store {
	return &Store{ToastTTL: defaultToastTTL, CenterTTL: defaultCenterTTL}
}

// Toast pushes a stacked toast. It expires on its own after ToastTTL; rapid
// calls stack freely, there is no dedup or backpressure.
func (s *Store) Toast(message, toastType string) string {
	if toastType == "" {
		toastType = "success"
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{ID: id, Message: message, Type: toastType})
	ttl := s.ToastTTL
	s.mu.Unlock()

	time.AfterFunc(ttl, func() { s.RemoveToast(id) })
	return id
}

// RemoveToast drops the toast with the given id, if still present.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// Toasts returns a snapshot of the stacked queue.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// CenterToastNotify replaces the centered toast. A pending expiry from an
// earlier occupant still fires and may clear the new one early; the web
// storefront behaves the same way.
func (s *Store) CenterToastNotify(message string) {
	s.mu.Lock()
	s.centerToast = &CenterToast{Message: message}
	ttl := s.CenterTTL
	s.mu.Unlock()

	time.AfterFunc(ttl, s.ClearCenterToast)
}

// ClearCenterToast empties the center slot.
func (s *Store) ClearCenterToast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerToast = nil
}

// Center returns the current centered toast, or nil.
func (s *Store) Center() *CenterToast {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.centerToast == nil {
		return nil
	}
	c := *s.centerToast
	return &c
}
