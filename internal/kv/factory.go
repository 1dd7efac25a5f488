package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/mateorivas/brewcart/pkg/config"
)

// Open selects and connects the configured profile backend. The returned
// close function is a no-op for the memory backend.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case config.StoreBackendSQLite:
		store, err := NewSQLite(cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StoreBackendRedis:
		store, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StoreBackendMemory:
		return NewMemory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
