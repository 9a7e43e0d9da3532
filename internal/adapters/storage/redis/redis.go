// Package redis stores slots as plain string values in Redis. Every key is
// namespaced by a prefix so several deployments can share one server.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

var _ ports.DurableStorage = (*Storage)(nil)

// DefaultPrefix namespaces slot keys when no prefix is configured.
const DefaultPrefix = "boardstate:"

// Options configures a Storage.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Storage is a Redis-backed slot store.
type Storage struct {
	client *goredis.Client
	prefix string
	owned  bool
}

// New connects to the server described by opts. Close releases the client.
func New(opts Options) *Storage {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	s := NewWithClient(client, opts.Prefix)
	s.owned = true
	return s
}

// NewWithClient wraps an existing client. The caller keeps ownership of it.
func NewWithClient(client *goredis.Client, prefix string) *Storage {
	if client == nil {
		panic("redis.NewWithClient: client is nil")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

// Close closes the client if this Storage created it.
func (s *Storage) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Storage) GetItem(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("slot %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return data, nil
}

func (s *Storage) SetItem(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("removing slot %s: %w", key, err)
	}
	return nil
}

// Name implements ports.HealthChecker.
func (s *Storage) Name() string {
	return "storage.redis"
}

// HealthCheck pings the server.
func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

func (s *Storage) key(slot string) string {
	return s.prefix + slot
}
