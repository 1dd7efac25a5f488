// Package session persists the signed-in identity (user id, bearer token,
// role) in the client profile and answers who is using the storefront.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mateorivas/brewcart/internal/kv"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
)

// Identity is the locally persisted login state.
type Identity struct {
	UserID string
	Token  string
	Role   enums.UserRole
}

// Manager reads and writes the identity keys through the storage port.
type Manager struct {
	store kv.Store
}

// NewManager builds a session manager on top of a storage port.
func NewManager(store kv.Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session: store is required")
	}
	return &Manager{store: store}, nil
}

// Save persists a fresh login. The previous identity, if any, is replaced.
func (m *Manager) Save(ctx context.Context, identity Identity) error {
	if identity.UserID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	pairs := map[string]string{
		kv.KeyUserID:   identity.UserID,
		kv.KeyToken:    identity.Token,
		kv.KeyUserRole: string(identity.Role),
	}
	for key, value := range pairs {
		if err := m.store.Set(ctx, key, value); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting session")
		}
	}
	return nil
}

// Current returns the persisted identity, or an unauthorized error when
// nobody is signed in on this profile.
func (m *Manager) Current(ctx context.Context) (*Identity, error) {
	userID, err := m.get(ctx, kv.KeyUserID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	token, err := m.get(ctx, kv.KeyToken)
	if err != nil {
		return nil, err
	}
	role, err := m.get(ctx, kv.KeyUserRole)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UserID: userID,
		Token:  token,
		Role:   enums.UserRole(role),
	}, nil
}

// Token implements the API client's token source.
func (m *Manager) Token(ctx context.Context) (string, error) {
	identity, err := m.Current(ctx)
	if err != nil {
		return "", err
	}
	return identity.Token, nil
}

// Clear signs the user out of this profile. The cart is left alone; it
// belongs to the user id, not the session.
func (m *Manager) Clear(ctx context.Context) error {
	for _, key := range []string{kv.KeyUserID, kv.KeyToken, kv.KeyUserRole} {
		if err := m.store.Delete(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clearing session")
		}
	}
	return nil
}

// TokenExpiry decodes the stored bearer token without verifying it (the
// client has no signing secret; verification is the server's job) and
// returns its expiry, if the token carries one.
func (m *Manager) TokenExpiry(ctx context.Context) (*time.Time, error) {
	identity, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(identity.Token) == "" {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(identity.Token, claims); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decoding bearer token")
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, nil
	}
	return &expiry.Time, nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	value, err := m.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reading session")
	}
	return value, nil
}
