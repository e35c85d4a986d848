package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/carmarket-service/internal/domain"
)

// ErrTokenNotFound signals an unknown or expired refresh token.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores issued refresh tokens until they expire.
// Redis TTLs handle expiry, so no cleanup job is needed.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token *domain.RefreshToken) error
	Get(ctx context.Context, token string) (*domain.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

type refreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository builds a Redis-backed implementation.
func NewRefreshTokenRepository(client *redis.Client) RefreshTokenRepository {
	return &refreshTokenRepository{client: client}
}

func tokenKey(token string) string {
	return "refresh_token:" + token
}

func (r *refreshTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return errors.New("refresh token already expired")
	}
	return r.client.Set(ctx, tokenKey(token.Token), token.UserID, ttl).Err()
}

func (r *refreshTokenRepository) Get(ctx context.Context, token string) (*domain.RefreshToken, error) {
	pipe := r.client.Pipeline()
	get := pipe.Get(ctx, tokenKey(token))
	ttl := pipe.TTL(ctx, tokenKey(token))
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &domain.RefreshToken{
		Token:     token,
		UserID:    get.Val(),
		ExpiresAt: time.Now().Add(ttl.Val()),
	}, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, tokenKey(token)).Err()
}
