package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisKVStore struct {
	client *redis.Client
	prefix string
}

// NewRedisKVStore crea un KVStore respaldado en Redis. Las claves se
// prefijan para convivir con otros usos de la misma instancia.
func NewRedisKVStore(client *redis.Client) KVStore {
	return &redisKVStore{client: client, prefix: "pokecontact:kv:"}
}

func (s *redisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisKVStore) Set(ctx context.Context, key, value string) error {
	// Sin TTL: el documento de asociaciones es estado durable, no cache.
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
