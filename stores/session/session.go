// Package sessionstore manages the user's session: login, logout, the
// persisted token and profile, and the derived login/admin flags.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
	"github.com/junaidrashid-git/storefront-client/storage"
)

// ErrTokenMissing is returned by Login when the backend response carries
// none of the accepted token fields. No session state is touched on this
// path.
var ErrTokenMissing = errors.New("token not found in login response")

// Notifier receives user-facing notifications. The caller decides what to
// wire here; nil disables notifications.
type Notifier interface {
	CenterToastNotify(message string)
}

// Store holds the session. Token and profile are kept in memory and
// mirrored to persistent storage; both are loaded once at construction.
type Store struct {
	client  *api.Client
	storage *storage.Store
	notify  Notifier

	mu    sync.RWMutex
	token string
	user  *models.Profile
}

// New builds a session store, restoring any persisted session. A profile
// entry that no longer parses is treated as absent rather than fatal.
func New(client *api.Client, st *storage.Store, notify Notifier) (*Store, error) {
	s := &Store{client: client, storage: st, notify: notify}

	token, err := st.Get(storage.KeyToken)
	if err != nil {
		return nil, err
	}
	s.token = token

	rawUser, err := st.Get(storage.KeyUser)
	if err != nil {
		return nil, err
	}
	if rawUser != "" {
		var profile models.Profile
		if err := json.Unmarshal([]byte(rawUser), &profile); err == nil {
			s.user = &profile
		}
	}
	return s, nil
}

// Register proxies POST /users/register and returns the raw response. It
// never mutates session state.
func (s *Store) Register(ctx context.Context, payload models.RegisterPayload) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.client.Post(ctx, "/users/register", payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Login exchanges credentials for a token, then fetches the full profile
// with it. The token and profile are stored in memory first, then
// persisted. Network errors propagate unmodified; there are no retries.
func (s *Store) Login(ctx context.Context, payload models.LoginPayload) error {
	var raw json.RawMessage
	if err := s.client.Post(ctx, "/users/login", payload, &raw); err != nil {
		return err
	}

	token, err := decodeLoginToken(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if err := s.storage.Set(storage.KeyToken, token); err != nil {
		return err
	}

	var details json.RawMessage
	if err := s.client.Get(ctx, "/users/details", &details); err != nil {
		return err
	}
	profile, err := decodeProfile(details)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = profile
	s.mu.Unlock()
	buf, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.storage.Set(storage.KeyUser, string(buf)); err != nil {
		return err
	}

	if s.notify != nil {
		s.notify.CenterToastNotify("Successfully logged in")
	}
	return nil
}

// Logout clears the in-memory session and removes both persisted entries.
// It succeeds regardless of prior state.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	_ = s.storage.Delete(storage.KeyToken)
	_ = s.storage.Delete(storage.KeyUser)

	if s.notify != nil {
		s.notify.CenterToastNotify("Successfully logged out")
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, or nil when logged out.
func (s *Store) User() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoggedIn reports whether a token is held.
func (s *Store) IsLoggedIn() bool { return s.Token() != "" }

// IsAdmin reports whether the profile grants admin capability.
func (s *Store) IsAdmin() bool {
	u := s.User()
	if u == nil {
		return false
	}
	return u.Role == "Admin" || u.Role == "admin" || u.IsAdmin
}

// Claims peeks at the token claims without verifying the signature; the
// client holds no signing secret. Returns nil when there is no token or it
// is not a JWT.
func (s *Store) Claims() jwt.MapClaims {
	tokenString := s.Token()
	if tokenString == "" {
		return nil
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without a readable exp claim are reported as not expired; the
// backend remains the authority either way.
func (s *Store) TokenExpired(now time.Time) bool {
	claims := s.Claims()
	if claims == nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// decodeLoginToken enumerates the token field names the backend has shipped
// under, in order of preference.
func decodeLoginToken(raw json.RawMessage) (string, error) {
	var body struct {
		Access      string `json:"access"`
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", ErrTokenMissing
	}
	for _, candidate := range []string{body.Access, body.Token, body.AccessToken} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", ErrTokenMissing
}

// decodeProfile accepts both the {"user": {...}} envelope and a bare
// profile object.
func decodeProfile(raw json.RawMessage) (*models.Profile, error) {
	var envelope struct {
		User *models.Profile `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}

	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
