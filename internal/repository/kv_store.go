package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const kvMaxRetries = 8

// kvBlobs keeps each document under one key of a Redis-compatible store.
// Mutations are optimistic WATCH/MULTI transactions retried on conflict.
type kvBlobs struct {
	rdb    redis.UniversalClient
	prefix string
}

func newKVBlobs(rdb redis.UniversalClient, prefix string) *kvBlobs {
	return &kvBlobs{rdb: rdb, prefix: prefix}
}

func (k *kvBlobs) key(name string) string { return k.prefix + name }

func (k *kvBlobs) Read(ctx context.Context, name string) ([]byte, error) {
	b, err := k.rdb.Get(ctx, k.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", name, err)
	}
	return b, nil
}

func (k *kvBlobs) Mutate(ctx context.Context, name string, fn func([]byte) ([]byte, error)) error {
	key := k.key(name)
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("kv get %s: %w", name, err)
		}
		next, err := fn(cur)
		if err != nil || next == nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}
	for i := 0; i < kvMaxRetries; i++ {
		err := k.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("kv update %s: too many concurrent writers", name)
}

func (k *kvBlobs) Close() error { return k.rdb.Close() }
