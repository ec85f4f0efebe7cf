package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

// Store holds short-lived JSON values: intake wizard drafts (keyed by session
// id, 24h TTL) and cached calamity rosters (short TTL, dropped on release).
type Store interface {
	PutJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, out any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type store struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &store{
		log: log.With("service", "RedisStore"),
		rdb: rdb,
	}, nil
}

func (s *store) PutJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	return s.rdb.Set(ctx, key, raw, ttl).Err()
}

func (s *store) GetJSON(ctx context.Context, key string, out any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return types.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *store) Close() error { return s.rdb.Close() }
