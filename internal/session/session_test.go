package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mateorivas/brewcart/internal/kv"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(kv.NewMemory())
	require.NoError(t, err)
	return mgr
}

func TestSaveAndCurrent(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	require.NoError(t, mgr.Save(ctx, Identity{UserID: "u1", Token: "tok", Role: enums.UserRoleAdmin}))

	identity, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "tok", identity.Token)
	assert.True(t, identity.Role.IsAdmin())
}

func TestCurrentWhenSignedOut(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	_, err := mgr.Current(ctx)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestClearRemovesIdentity(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	require.NoError(t, mgr.Save(ctx, Identity{UserID: "u1", Token: "tok", Role: enums.UserRoleUser}))
	require.NoError(t, mgr.Clear(ctx))

	_, err := mgr.Current(ctx)
	require.Error(t, err)
}

func TestTokenExpiryFromUnverifiedJWT(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	require.NoError(t, mgr.Save(ctx, Identity{UserID: "u1", Token: signed, Role: enums.UserRoleUser}))

	got, err := mgr.TokenExpiry(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(expiry))
}

func TestTokenExpiryWithOpaqueToken(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(t)

	require.NoError(t, mgr.Save(ctx, Identity{UserID: "u1", Token: "not-a-jwt", Role: enums.UserRoleUser}))

	_, err := mgr.TokenExpiry(ctx)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDecode, pkgerrors.CodeOf(err))
}
