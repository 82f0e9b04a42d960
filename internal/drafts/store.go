package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/redis"
)

// Store persists drafts for the lifetime of an editing session.
type Store interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type draftKeyer interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DraftKey(draftID string) string
}

type redisStore struct {
	client draftKeyer
	ttl    time.Duration
}

// NewRedisStore builds a draft store on top of the shared Redis client.
// Every save refreshes the TTL, so active sessions never expire mid-edit.
func NewRedisStore(client draftKeyer, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Save(ctx context.Context, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft")
	}
	if err := s.client.Set(ctx, s.client.DraftKey(draft.ID.String()), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store draft")
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	raw, err := s.client.Get(ctx, s.client.DraftKey(id.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found or expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode draft")
	}
	return &draft, nil
}

func (s *redisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.client.DraftKey(id.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete draft")
	}
	return nil
}
