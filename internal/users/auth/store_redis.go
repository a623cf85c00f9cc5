// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davitran/acadia/internal/platform/apperr"
)

// # Session Repository

// Redis key layout for the session store.
//
//	auth:session:<tokenhash>  -> JSON-encoded Session (expires with the token)
//	auth:user_sessions:<uid>  -> SET of token hashes (for bulk revocation)
const (
	sessionKeyPrefix      = "auth:session:"
	userSessionsKeyPrefix = "auth:user_sessions:"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Sessions expire naturally via TTL, so no background cleanup job is needed.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores the session keyed by its token hash, expiring with the token.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Encoding or storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	// Serialize the full session so FindByTokenHash can rehydrate it
	payload, err := json.Marshal(redisSession{
		ID:        session.ID,
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_repo_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_repo_create_failed: session already expired")
	}

	key := sessionKeyPrefix + session.TokenHash
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}

	// Track the hash under the user's session set for RevokeAll.
	// Best-effort: a stale set member simply resolves to a missing session key.
	userKey := userSessionsKeyPrefix + session.UserID
	_ = repository.client.SAdd(context, userKey, session.TokenHash).Err()
	_ = repository.client.Expire(context, userKey, RefreshTokenTTL).Err()

	return nil
}

/*
FindByTokenHash resolves a refresh token hash into an active session.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {

	key := sessionKeyPrefix + tokenHash

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session not found or expired")
		}
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	var stored redisSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("redis_session_repo_unmarshal_failed: %w", err)
	}

	return &Session{
		ID:        stored.ID,
		UserID:    stored.UserID,
		TokenHash: stored.TokenHash,
		UserAgent: stored.UserAgent,
		IPAddress: stored.IPAddress,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
	}, nil
}

/*
Revoke deletes the session with the given token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {

	key := sessionKeyPrefix + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every tracked session belonging to the userID.

Description: Security nuking of all active sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {

	userKey := userSessionsKeyPrefix + userID

	// Resolve every token hash tracked for this user
	hashes, err := repository.client.SMembers(context, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_revoke_all_failed: %w", err)
	}

	// Delete each session key followed by the tracking set itself
	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKeyPrefix+hash)
	}
	keys = append(keys, userKey)

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_all_failed: %w", err)
	}

	return nil
}

// redisSession is the wire representation of a Session in Redis.
// TokenHash is persisted here (unlike the JSON API view) because the
// stored copy never leaves the trust boundary.
type redisSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
