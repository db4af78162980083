package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// PasswordResetRepositoryImpl implements domain.PasswordResetRepository
// using Redis. Rows live under a token key with a TTL matching the row's
// expiry; a parallel per-user index key enforces the at-most-one-live-token
// invariant.
type PasswordResetRepositoryImpl struct {
	client      *redis.Client
	tokenPrefix string
	userPrefix  string
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(client *redis.Client) domain.PasswordResetRepository {
	return &PasswordResetRepositoryImpl{
		client:      client,
		tokenPrefix: "pwdreset:",
		userPrefix:  "pwdreset:user:",
	}
}

func (r *PasswordResetRepositoryImpl) tokenKey(token string) string {
	return r.tokenPrefix + token
}

func (r *PasswordResetRepositoryImpl) userKey(userID uint) string {
	return fmt.Sprintf("%s%d", r.userPrefix, userID)
}

// Create implements domain.PasswordResetRepository. Any prior token for the
// same user is removed first.
func (r *PasswordResetRepositoryImpl) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	if err := r.DeleteAllForUser(ctx, token.UserID); err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal reset token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("reset token already expired at creation")
	}

	if err := r.client.Set(ctx, r.tokenKey(token.Token), data, ttl).Err(); err != nil {
		return err
	}
	return r.client.Set(ctx, r.userKey(token.UserID), token.Token, ttl).Err()
}

// FindByToken implements domain.PasswordResetRepository. A row found past
// its expiry is deleted lazily and reported as expired.
func (r *PasswordResetRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}

	var row domain.PasswordResetToken
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reset token: %w", err)
	}

	if row.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, r.tokenKey(token), r.userKey(row.UserID))
		return nil, domain.ErrResetTokenExpired
	}

	return &row, nil
}

// DeleteByToken implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	var row domain.PasswordResetToken
	if err := json.Unmarshal([]byte(data), &row); err == nil {
		r.client.Del(ctx, r.userKey(row.UserID))
	}
	return r.client.Del(ctx, r.tokenKey(token)).Err()
}

// DeleteAllForUser implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uint) error {
	prior, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return r.client.Del(ctx, r.tokenKey(prior), r.userKey(userID)).Err()
}
