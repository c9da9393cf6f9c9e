package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStorage(rdb *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

func (r *RedisStorage) key(namespace string) string {
	return r.prefix + namespace
}

func (r *RedisStorage) Load(ctx context.Context, namespace string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *RedisStorage) Save(ctx context.Context, namespace string, data []byte) error {
	return r.rdb.Set(ctx, r.key(namespace), data, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, namespace string) error {
	return r.rdb.Del(ctx, r.key(namespace)).Err()
}

var _ Storage = (*RedisStorage)(nil)
