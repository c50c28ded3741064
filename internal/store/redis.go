package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each slot under prefix+slot.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(slot string) string { return r.prefix + slot }

func (r *Redis) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key(slot), err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, slot string, data []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(slot), err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(slot)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.key(slot), err)
	}
	return nil
}

// Slots scans for keys under the prefix.
func (r *Redis) Slots(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s*: %w", r.prefix, err)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Redis) Close() error { return r.client.Close() }
