package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/conduit/pkg/wire"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.VerdictCache using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of cached verdicts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis verdict cache with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis verdict cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "conduit:verdict:",
		ttl:    time.Hour,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(fingerprint string) string {
	return s.prefix + fingerprint
}

// Get retrieves a verdict. A missing key is a miss, not an error.
func (s *Store) Get(ctx context.Context, fingerprint string) (wire.Response, bool, error) {
	val, err := s.client.Get(ctx, s.key(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return wire.Response{}, false, nil
		}
		return wire.Response{}, false, fmt.Errorf("failed to get from redis: %w", err)
	}

	var resp wire.Response
	if err := json.Unmarshal(val, &resp); err != nil {
		return wire.Response{}, false, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	return resp, true, nil
}

// Put stores a verdict with the configured TTL (0 keeps it forever).
func (s *Store) Put(ctx context.Context, fingerprint string, resp wire.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	if err := s.client.Set(ctx, s.key(fingerprint), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity to the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
