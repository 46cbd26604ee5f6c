// Package session holds the operator's access token. The Store is the only
// way to read or change it; the API client and the route guard receive one
// at construction time.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
)

// TokenKey is the storage key of the access token.
const TokenKey = "cw_token"

// Store keeps at most one access token in a durable backend.
type Store struct {
	backend storage.Backend
	mu      sync.Mutex
}

// NewStore returns a Store persisting to backend.
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// Get returns the current token. ok is false when nobody is logged in.
func (s *Store) Get(ctx context.Context) (token string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err = s.backend.Get(ctx, TokenKey)
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(token) == "" {
		return "", false, nil
	}
	return token, ok, nil
}

// Set replaces the current token.
func (s *Store) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New(errors.ErrCodeAuthInvalidCredentials, "refusing to store an empty access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Set(ctx, TokenKey, token)
}

// Clear removes the token. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Delete(ctx, TokenKey)
}

// Token satisfies platform.TokenSource.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	return s.Get(ctx)
}

// Location reports where the token is persisted.
func (s *Store) Location() string {
	return s.backend.Location()
}
