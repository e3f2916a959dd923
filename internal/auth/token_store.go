package auth

import (
	"context"
	"time"

	"smartattend/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// TokenStoreInterface defines revocation bookkeeping for access tokens.
type TokenStoreInterface interface {
	RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in Redis until the token would have expired anyway.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeAccessToken marks a token id as revoked for ttl.
func (s *TokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenRevoked checks if an access token has been revoked.
// An unreachable Redis reads as "not revoked".
func (s *TokenStore) IsAccessTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
