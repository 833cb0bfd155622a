package store

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	cfg    config
}

var _ Store = (*redisStore)(nil)

// NewRedis returns a Store backed by Redis. Each tenant's record is one hash
// keyed "<prefix>:<tenant>" with one hash field per settings field.
// The caller owns the redis.Client lifecycle — Close is a no-op on the client.
func NewRedis(client *redis.Client, opts ...Option) Store {
	return &redisStore{
		client: client,
		cfg:    applyOptions(opts),
	}
}

func (s *redisStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.cfg.queryTimeout)
}

func (s *redisStore) recordKey(tenant string) string {
	return s.cfg.prefix + ":" + encodeTenant(tenant)
}

func (s *redisStore) LoadAll(ctx context.Context) ([]Record, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var records []Record
	iter := s.client.Scan(qctx, 0, s.cfg.prefix+":*", 0).Iterator()
	for iter.Next(qctx) {
		key := iter.Val()
		fields, err := s.client.HGetAll(qctx, key).Result()
		if err != nil {
			return nil, err
		}
		// Raced with a concurrent DeleteRecord; skip.
		if len(fields) == 0 {
			continue
		}
		doc := make(map[string]any, len(fields))
		for field, raw := range fields {
			val, err := decodeValue([]byte(raw))
			if err != nil {
				return nil, err
			}
			doc[field] = val
		}
		records = append(records, Record{
			Tenant:   decodeTenant(strings.TrimPrefix(key, s.cfg.prefix+":")),
			Document: doc,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *redisStore) UpsertField(ctx context.Context, tenant, field string, value any) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.HSet(qctx, s.recordKey(tenant), field, data).Err()
}

func (s *redisStore) UnsetField(ctx context.Context, tenant, field string) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.HDel(qctx, s.recordKey(tenant), field).Err()
}

func (s *redisStore) DeleteRecord(ctx context.Context, tenant string) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	return s.client.Del(qctx, s.recordKey(tenant)).Err()
}

// Close is a no-op — the caller owns the redis.Client lifecycle.
func (s *redisStore) Close() error {
	return nil
}
