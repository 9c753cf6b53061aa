// Package session is the single source of truth for login state. The
// bearer token and user record persist in the local store and are
// restored at startup; every screen receives the same injected
// instance instead of reading shared flags ad hoc.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agrilearn/agrilearn/internal/storage"
)

type record struct {
	Token   string       `json:"token"`
	User    storage.User `json:"user"`
	SavedAt time.Time    `json:"saved_at"`
}

type Session struct {
	store *storage.Store

	mu    sync.RWMutex
	token string
	user  storage.User
}

// Load restores the persisted session, if any. A corrupt record is
// treated as logged out rather than an error.
func Load(store *storage.Store) (*Session, error) {
	s := &Session{store: store}

	data, err := store.GetSession()
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if data == nil {
		return s, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = store.DeleteSession()
		return s, nil
	}

	s.token = rec.Token
	s.user = rec.User
	return s, nil
}

// Login stores the bearer token and user for subsequent authenticated
// calls. When the API response carries no user record, claims are
// decoded from the token payload instead.
func (s *Session) Login(token string, user storage.User) error {
	if user == (storage.User{}) {
		if claims, err := DecodeClaims(token); err == nil {
			user = claims
		}
	}

	data, err := json.Marshal(record{Token: token, User: user, SavedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.SaveSession(data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout() error {
	if err := s.store.DeleteSession(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = storage.User{}
	s.mu.Unlock()
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() storage.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user.IsAdmin()
}

// DecodeClaims extracts the user record from a JWT payload segment
// without verifying the signature; verification is the API's job, the
// client only needs the display fields.
func DecodeClaims(token string) (storage.User, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return storage.User{}, fmt.Errorf("not a JWT token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return storage.User{}, fmt.Errorf("decoding token payload: %w", err)
	}

	var claims struct {
		ID    storage.FlexID `json:"id"`
		Name  string         `json:"name"`
		Email string         `json:"email"`
		Role  string         `json:"role"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return storage.User{}, fmt.Errorf("parsing token claims: %w", err)
	}

	return storage.User{
		ID:    string(claims.ID),
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
