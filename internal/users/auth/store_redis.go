// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/constants"
)

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client redis.Cmdable
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client redis.Cmdable) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func resetTokenKey(tokenHash string) string {
	return constants.RedisPrefixResetToken + tokenHash
}

/*
Set stores a reset token hash with its associated userID and TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, resetTokenKey(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

/*
Consume returns the userID for a token hash and deletes it in one round trip.

Description: GETDEL makes the token single use even when two resets race.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Consume(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.GetDel(context, resetTokenKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_consume_failed: %w", err)
	}
	return userID, nil
}
