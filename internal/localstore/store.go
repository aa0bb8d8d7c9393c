package localstore

import (
	"context"
	"errors"
)

// Keys persisted by the storefront. These mirror the browser-store keys the
// web UI historically used, so a migration stays trivial.
const (
	KeyToken     = "token"            // auth bearer token
	KeyUser      = "user"             // serialized user profile
	KeyFavorites = "jewelryFavorites" // serialized array of product ids
	KeyGuestCart = "guestCartId"      // minted id for the anonymous cart
)

// ErrNotFound is returned when a key has never been set (or was deleted).
var ErrNotFound = errors.New("localstore: key not found")

// Store is simple key-value persistence for the storefront's client-side
// state. There is no expiry and no versioning; values are opaque bytes.
//
// Two implementations exist: FileStore for single-binary installs and
// RedisStore for deployments that already run Redis.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
