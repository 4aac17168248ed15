// Package session holds the authenticated identity for the lifetime of the
// app. The session is produced by login or registration and threaded
// explicitly into every component that needs the identity; components treat
// it as read-only except for the explicit update operations.
package session

import (
	"context"
	"errors"
	"sync"

	"docemarce/internal/api"
	"docemarce/internal/models"
)

var (
	// ErrInvalidCredentials is returned when login finds no matching account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields is returned when registration input is incomplete.
	ErrMissingFields = errors.New("missing required fields")
)

// Session is the current identity. Identity persists only in memory for the
// app's lifetime; there is no durable local storage.
type Session struct {
	mu   sync.RWMutex
	user models.User
}

// Login authenticates against the fetch-user endpoint. The endpoint answers
// with a sequence of records; the first element becomes the session identity
// and an empty sequence means the credentials are wrong.
func Login(ctx context.Context, client *api.Client, email, password string) (*Session, error) {
	users, err := client.FetchUsers(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	u := users[0]
	// The credential is needed to parameterize later requests.
	u.Password = password
	return &Session{user: u}, nil
}

// Register creates a new account. Name, email and password are required;
// phone and photo are optional at sign-up.
func Register(ctx context.Context, client *api.Client, u models.User) error {
	if u.Name == "" || u.Email == "" || u.Password == "" {
		return ErrMissingFields
	}
	return client.CreateUser(ctx, u)
}

// User returns a copy of the current identity.
func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Email returns the account identifier.
func (s *Session) Email() string { return s.User().Email }

// Password returns the credential used to parameterize requests.
func (s *Session) Password() string { return s.User().Password }

// IsAdmin reports whether the identity carries the admin flag.
func (s *Session) IsAdmin() bool { return s.User().IsAdmin }

// SetUser replaces the identity, the explicit update operation for
// profile-driven changes.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// SetPassword updates only the stored credential.
func (s *Session) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Password = password
}
