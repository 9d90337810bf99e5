package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "roomdesk:proposal:"

// RedisStore keeps proposals as JSON values that expire with the proposal.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, p *domain.Proposal) error {
	d := ttl(p, time.Now())
	if d == 0 {
		return fmt.Errorf("proposal %s already expired", p.ID)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	logger.ExternalServiceCall("redis", "SET", "key", key(p.ID), "ttl", d.String())
	if err := s.rdb.Set(ctx, key(p.ID), data, d).Err(); err != nil {
		logger.ExternalServiceResult("redis", "SET", err)
		return err
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	logger.ExternalServiceCall("redis", "GET", "key", key(id))
	data, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.ExternalServiceResult("redis", "GET", err)
		return nil, err
	}
	var p domain.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode proposal %s: %w", id, err)
	}
	return &p, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}
