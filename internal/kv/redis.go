package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mateorivas/brewcart/pkg/config"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "brewcart:profile"

// Redis shares one client profile across machines, for shops that run the
// storefront on more than one till.
type Redis struct {
	raw *redis.Client
}

// NewRedis connects and verifies connectivity before handing the store out.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.raw.Get(ctx, r.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading profile key %q: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.raw.Set(ctx, r.buildKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("writing profile key %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.raw.Del(ctx, r.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("deleting profile key %q: %w", key, err)
	}
	return nil
}

// Close shuts down the underlying client.
func (r *Redis) Close() error {
	return r.raw.Close()
}

func (r *Redis) buildKey(key string) string {
	return strings.Join([]string{keyNamespace, key}, ":")
}
