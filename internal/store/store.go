// Package store persists encoded boards in named slots of a key-value store.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jask/tiermaker/internal/config"
)

// ErrNotFound is returned by Load when the slot has never been written.
var ErrNotFound = errors.New("store: slot not found")

// Store is a key-value store of slot name to encoded board.
type Store interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
	Delete(ctx context.Context, slot string) error
	// Slots lists the names of written slots in ascending order.
	Slots(ctx context.Context) ([]string, error)
	Close() error
}

// Open builds the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Backend)) {
	case "", "sqlite":
		s, err := OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedis(client, cfg.Redis.Prefix), nil
	case "file":
		f, err := NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func checkSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name required")
	}
	return nil
}
