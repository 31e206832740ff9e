package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/pkg/store"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "cooking:session:"

// SessionRepository keeps sessions as JSON values with a sliding TTL, so
// several API instances can share conversational state.
type SessionRepository struct {
	rdb *goredis.Client
	ttl time.Duration
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(rdb *goredis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func Key(sessionKey string) string {
	return keyPrefix + sessionKey
}

func (r *SessionRepository) Get(ctx context.Context, key string) (*store.Session, bool, error) {
	data, err := r.rdb.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	session.ID = key
	session.EnsureDefaults()
	return &session, true, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, Key(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, Key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
