package client

import (
	"context"
	"errors"

	"github.com/uni-jay/ican-portal/internal/client/repositories/metadata"
	"github.com/uni-jay/ican-portal/internal/common"
)

// TokenStore persists the token pair in a key/value repository.
type TokenStore struct {
	repo metadata.Repository
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// AccessToken returns the stored access token, or "" when none is stored.
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.AuthTokenKey)
}

// RefreshToken returns the stored refresh token, or "" when none is stored.
func (s *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.RefreshTokenKey)
}

func (s *TokenStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save writes the pair in one batch. An empty refresh token removes a stale
// one in the same batch.
func (s *TokenStore) Save(ctx context.Context, access, refresh string) error {
	values := map[string]string{common.AuthTokenKey: access}
	if refresh == "" {
		return s.repo.Update(ctx, values, common.RefreshTokenKey)
	}
	values[common.RefreshTokenKey] = refresh
	return s.repo.Update(ctx, values)
}

// Clear removes both tokens.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AuthTokenKey, common.RefreshTokenKey)
}
