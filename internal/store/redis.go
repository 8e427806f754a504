package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyRecords = "krishisakhi:records:%s"

	maxIncrementAttempts = 10
)

// stores each kind as one hash of id -> JSON document
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// creates a new Redis-backed store from a URL
func NewRedisBackendFromURL(redisURL string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBackend{client: client}, nil
}

// exposes the connection so other components (rate limiting) can share it
func (r *RedisBackend) Client() *redis.Client {
	return r.client
}

func (r *RedisBackend) Insert(ctx context.Context, kind string, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	created, err := r.client.HSetNX(ctx, fmt.Sprintf(keyRecords, kind), doc.ID(), data).Result()
	if err != nil {
		return err
	}

	if !created {
		return ErrConflict
	}

	return nil
}

// loads the whole hash and queries it in process
func (r *RedisBackend) Find(ctx context.Context, kind string, q Query) ([]Document, error) {
	values, err := r.client.HVals(ctx, fmt.Sprintf(keyRecords, kind)).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(values))
	for _, value := range values {
		var doc Document
		if err := json.Unmarshal([]byte(value), &doc); err != nil {
			return nil, fmt.Errorf("stored record is not a JSON object: %w", err)
		}

		docs = append(docs, doc)
	}

	return applyQuery(docs, q), nil
}

func (r *RedisBackend) Get(ctx context.Context, kind, id string) (Document, error) {
	value, err := r.client.HGet(ctx, fmt.Sprintf(keyRecords, kind), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return nil, fmt.Errorf("stored record is not a JSON object: %w", err)
	}

	return doc, nil
}

func (r *RedisBackend) Replace(ctx context.Context, kind, id string, doc Document) error {
	key := fmt.Sprintf(keyRecords, kind)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// only replace an existing field so a concurrent delete is not undone
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, key, id).Result()
		if err != nil {
			return err
		}

		if !exists {
			return ErrNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, data)
			return nil
		})

		return err
	}, key)
}

func (r *RedisBackend) Increment(ctx context.Context, kind, id, field string, delta int, updated string) (Document, error) {
	key := fmt.Sprintf(keyRecords, kind)

	var result Document
	incr := func(tx *redis.Tx) error {
		value, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		var doc Document
		if err := json.Unmarshal([]byte(value), &doc); err != nil {
			return fmt.Errorf("stored record is not a JSON object: %w", err)
		}

		next, err := addToField(doc, field, delta, updated)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, data)
			return nil
		})
		if err != nil {
			return err
		}

		result = next
		return nil
	}

	// a concurrent writer aborts the transaction; retry on the fresh value
	for i := 0; i < maxIncrementAttempts; i++ {
		err := r.client.Watch(ctx, incr, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return result, err
	}

	return nil, fmt.Errorf("increment of %s %s kept conflicting: %w", kind, id, redis.TxFailedErr)
}

func (r *RedisBackend) Delete(ctx context.Context, kind, id string) error {
	removed, err := r.client.HDel(ctx, fmt.Sprintf(keyRecords, kind), id).Result()
	if err != nil {
		return err
	}

	if removed == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *RedisBackend) Clear(ctx context.Context, kind string) error {
	return r.client.Del(ctx, fmt.Sprintf(keyRecords, kind)).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
