package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mpoindexter/spring-webflow/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "webflow:"

// Definitions live under prefix+"def:"+id, apart from the index, so no flow
// identifier can address the index key.
const (
	definitionSpace = "def:"
	indexName       = "index"
)

// Store implements ports.FlowStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.FlowStore = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration for stored definitions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for definitions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + definitionSpace + id
}

func (s *Store) indexKey() string {
	return s.prefix + indexName
}

// SaveFlow writes the raw definition and records it in the index.
func (s *Store) SaveFlow(ctx context.Context, id string, data []byte) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(id), data, s.ttl)

	// Score is the expiry time so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: id,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save flow %s to redis: %w", id, err)
	}
	return nil
}

// GetFlow retrieves the raw definition of a flow by ID.
func (s *Store) GetFlow(ctx context.Context, id string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", ports.ErrFlowNotFound, id)
		}
		return nil, fmt.Errorf("failed to get flow %s from redis: %w", id, err)
	}
	return val, nil
}

// DeleteFlow removes the definition and its index entry.
func (s *Store) DeleteFlow(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	del := pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete flow %s from redis: %w", id, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ports.ErrFlowNotFound, id)
	}
	return nil
}

// ListFlows returns the indexed flow IDs in lexical order, pruning expired ones.
func (s *Store) ListFlows(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired flows: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
