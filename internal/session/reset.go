// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// reset.go stores one-time password reset tokens in Valkey. A token is
// a random identifier mapped to the user ID with a short TTL, consumed
// atomically on first use.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	resetKeyPrefix = "pwreset:"

	// ResetTTL is how long a reset token stays valid.
	ResetTTL = time.Hour
)

// ResetTokens manages one-time password reset tokens.
type ResetTokens struct {
	client *redis.Client
}

// NewResetTokens creates a reset token store backed by the given Valkey client.
func NewResetTokens(client *redis.Client) *ResetTokens {
	return &ResetTokens{client: client}
}

// Create issues a new token for the user.
func (t *ResetTokens) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateID()
	if err != nil {
		return "", fmt.Errorf("reset token create: %w", err)
	}

	if err := t.client.Set(ctx, resetKeyPrefix+token, userID.String(), ResetTTL).Err(); err != nil {
		return "", fmt.Errorf("reset token store: %w", err)
	}
	return token, nil
}

// Consume validates a token and deletes it, returning the user it was
// issued for. Returns uuid.Nil if the token is unknown or expired.
func (t *ResetTokens) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := t.client.GetDel(ctx, resetKeyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("reset token get: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("reset token parse: %w", err)
	}
	return userID, nil
}
