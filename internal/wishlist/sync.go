// Package wishlist keeps the user's favorites set in sync between the
// remote wishlist store and local persistence.
package wishlist

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/srilaxmialankar/storefront-golang/internal/localstore"
	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

// RemoteStore is the slice of the backend client the synchronizer needs.
type RemoteStore interface {
	GetWishlist(ctx context.Context, userID string) (models.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

// Synchronizer owns the in-memory favorites set. The remote wishlist is
// authoritative when reachable; the local store is the fallback on read and
// a write-through mirror on every mutation. This is deliberate eventual
// consistency, not a bug: a mutation that succeeded remotely is always
// persisted locally, and a stale local copy is overwritten on the next
// successful remote load.
type Synchronizer struct {
	remote RemoteStore
	store  localstore.Store
	log    zerolog.Logger

	mu     sync.Mutex
	userID string
	order  []string            // insertion order, for stable serialization
	set    map[string]struct{} // membership
}

// New creates a synchronizer with an empty favorites set.
func New(remote RemoteStore, store localstore.Store) *Synchronizer {
	return &Synchronizer{
		remote: remote,
		store:  store,
		log:    logx.With("wishlist"),
		set:    make(map[string]struct{}),
	}
}

// Load initializes the favorites set for a user. It prefers the remote
// wishlist; on any remote failure it falls back to the locally persisted
// set, and a missing or unreadable local copy simply yields an empty set.
// No error ever surfaces to the caller. The loaded set is written through to
// the local store like any other mutation.
func (s *Synchronizer) Load(ctx context.Context, userID string) {
	ids, fromRemote := s.fetchInitial(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.order = s.order[:0]
	s.set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.set[id]; ok {
			continue
		}
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}
	s.persistLocked(ctx)

	s.log.Info().
		Str("user_id", userID).
		Int("count", len(s.order)).
		Bool("from_remote", fromRemote).
		Msg("favorites loaded")
}

func (s *Synchronizer) fetchInitial(ctx context.Context, userID string) ([]string, bool) {
	if s.remote != nil && userID != "" {
		remote, err := s.remote.GetWishlist(ctx, userID)
		if err == nil {
			ids := make([]string, 0, len(remote.Items))
			for _, item := range remote.Items {
				ids = append(ids, item.ProductID)
			}
			return ids, true
		}
		s.log.Warn().Err(err).Msg("remote wishlist fetch failed, falling back to local store")
	}

	data, err := s.store.Get(ctx, localstore.KeyFavorites)
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		// A corrupted local copy is discarded rather than surfaced.
		s.log.Warn().Err(err).Msg("discarding unreadable local favorites")
		return nil, false
	}
	return ids, false
}

// Toggle flips the favorite status of a product. The remote call runs
// first; only when it succeeds is the in-memory set mutated and mirrored to
// the local store. On remote failure the error is returned and local state
// is left exactly as it was, with no partial update. The returned bool is
// the new membership state.
func (s *Synchronizer) Toggle(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, favorited := s.set[productID]
	if favorited {
		if err := s.remote.RemoveFromWishlist(ctx, s.userID, productID); err != nil {
			return true, err
		}
		delete(s.set, productID)
		for i, id := range s.order {
			if id == productID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		s.persistLocked(ctx)
		return false, nil
	}

	if err := s.remote.AddToWishlist(ctx, s.userID, productID); err != nil {
		return false, err
	}
	s.set[productID] = struct{}{}
	s.order = append(s.order, productID)
	s.persistLocked(ctx)
	return true, nil
}

// Contains reports whether a product is currently favorited.
func (s *Synchronizer) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[productID]
	return ok
}

// All returns the favorited product ids in insertion order.
func (s *Synchronizer) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Count returns the number of favorited products.
func (s *Synchronizer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// persistLocked mirrors the full set to the local store. Persistence
// failures are logged, never surfaced: the remote store already holds the
// truth at this point.
func (s *Synchronizer) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.order)
	if err != nil {
		s.log.Error().Err(err).Msg("encode favorites for local store")
		return
	}
	if err := s.store.Set(ctx, localstore.KeyFavorites, data); err != nil {
		s.log.Error().Err(err).Msg("persist favorites to local store")
	}
}
