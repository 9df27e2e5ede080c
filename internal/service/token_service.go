package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mediarate/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates bearer tokens. Tokens are HS256-signed
// strings carrying the username, but validation is always a store lookup, so
// revocation works and a user holds at most one live token at a time
// (repeated logins return the same token instead of minting new ones).
type TokenService struct {
	store  session.Store
	secret string
}

func NewTokenService(store session.Store, secret string) *TokenService {
	return &TokenService{store: store, secret: secret}
}

// Issue returns the user's live token, minting one when none exists. The jti
// claim makes every minted token unique.
func (s *TokenService) Issue(ctx context.Context, username, userID string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("username must not be empty")
	}

	if existing, err := s.store.TokenForUser(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, session.ErrTokenNotFound) {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      time.Now().Unix(),
		"jti":      uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}

	// Save resolves concurrent issuance: whichever token lands first wins and
	// is returned to every caller.
	return s.store.Save(ctx, signed, userID)
}

// Validate resolves a token to its user id. Unknown and revoked tokens fail
// with ErrInvalidToken.
func (s *TokenService) Validate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	userID, err := s.store.UserID(ctx, token)
	if errors.Is(err, session.ErrTokenNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// ExtractBearer parses an Authorization header value of the form
// "Bearer <token>". The scheme match is case-insensitive and surrounding
// whitespace is trimmed.
func (s *TokenService) ExtractBearer(headerValue string) (string, bool) {
	const bearerPrefix = "bearer "
	headerValue = strings.TrimSpace(headerValue)
	if len(headerValue) <= len(bearerPrefix) {
		return "", false
	}
	if !strings.EqualFold(headerValue[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(headerValue[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// Revoke removes a token mapping. Reports whether it existed.
func (s *TokenService) Revoke(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	existed, err := s.store.Delete(ctx, token)
	if err != nil {
		return false
	}
	return existed
}

// RevokeAll removes every token of the user, for forced logout of all
// sessions. Returns how many tokens were revoked.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) int {
	count, err := s.store.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0
	}
	return count
}
