// Package kv is the persistent client-profile store behind the storefront:
// a flat string-keyed map holding the cart and the signed-in identity. The
// profile is shared by every user of the machine, so readers must scope by
// user themselves. Writes are plain read-modify-write with no version check;
// concurrent processes on the same profile race and the last writer wins.
package kv

import (
	"context"
	"errors"
)

// Keys persisted in the client profile.
const (
	KeyCart     = "cart"
	KeyUserID   = "user_id"
	KeyToken    = "token"
	KeyUserRole = "user_role"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the storage port the cart aggregator and session layer are built
// against. Values are strings; structured values are JSON-serialized by the
// caller.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
