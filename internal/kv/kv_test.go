package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mateorivas/brewcart/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyCart, `[]`))
	value, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.db")

	store, err := NewSQLite(config.StoreConfig{Backend: config.StoreBackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Get(ctx, KeyUserID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyUserID, "u1"))
	require.NoError(t, store.Set(ctx, KeyUserID, "u2"))

	value, err := store.Get(ctx, KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "u2", value)

	require.NoError(t, store.Delete(ctx, KeyUserID))
	_, err = store.Get(ctx, KeyUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.db")
	cfg := config.StoreConfig{Backend: config.StoreBackendSQLite, SQLitePath: path}

	store, err := NewSQLite(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyToken, "tok-1"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLite(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, err := reopened.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)
}
