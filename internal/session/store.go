package session

import (
	"context"
	"errors"
	"sync"
)

// ErrTokenNotFound signals a lookup for a token or user with no live session.
var ErrTokenNotFound = errors.New("session token not found")

// Store maps opaque bearer tokens to user ids. A user holds at most one live
// token at any time; Save returns the already-stored token when one exists so
// repeated logins never churn sessions. Implementations must be safe for
// concurrent use by request handlers.
type Store interface {
	// Save stores token -> userID and returns the token that is live after
	// the call. When the user already has a token, the existing one wins and
	// is returned instead of the candidate.
	Save(ctx context.Context, token, userID string) (string, error)
	// UserID resolves a token to its user. Returns ErrTokenNotFound when the
	// token is unknown or revoked.
	UserID(ctx context.Context, token string) (string, error)
	// TokenForUser returns the user's live token, or ErrTokenNotFound.
	TokenForUser(ctx context.Context, userID string) (string, error)
	// Delete revokes a token. Reports whether it existed.
	Delete(ctx context.Context, token string) (bool, error)
	// DeleteAllForUser revokes every token of the user and returns how many
	// were removed.
	DeleteAllForUser(ctx context.Context, userID string) (int, error)
}

// MemoryStore is the in-process Store used by default and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byToken map[string]string
	byUser  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

func (s *MemoryStore) Save(ctx context.Context, token, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byUser[userID]; ok {
		return existing, nil
	}
	s.byToken[token] = userID
	s.byUser[userID] = token
	return token, nil
}

func (s *MemoryStore) UserID(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byToken[token]
	if !ok {
		return "", ErrTokenNotFound
	}
	return userID, nil
}

func (s *MemoryStore) TokenForUser(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.byUser[userID]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.byToken[token]
	if !ok {
		return false, nil
	}
	delete(s.byToken, token)
	if s.byUser[userID] == token {
		delete(s.byUser, userID)
	}
	return true, nil
}

func (s *MemoryStore) DeleteAllForUser(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byUser[userID]
	if !ok {
		return 0, nil
	}
	delete(s.byUser, userID)
	delete(s.byToken, token)
	return 1, nil
}
