// Package favorites keeps the session's starred assets.
//
// A Store holds full Asset snapshots taken when an asset is starred; later
// refreshes of the live list do not touch them. A Store lives as long as the
// view that owns it and is never persisted.
package favorites

import (
	"slices"

	"github.com/rshade/cryptoboard/internal/market"
)

// Store is an ordered set of favorite asset snapshots keyed by asset ID.
// It is not safe for concurrent use.
type Store struct {
	items []market.Asset
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Toggle removes the favorite with id if present. Otherwise it appends a
// snapshot of the asset with id from live; when live has no such asset the
// call does nothing. It reports whether id is a favorite afterwards.
func (s *Store) Toggle(id string, live []market.Asset) bool {
	if i := s.index(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		return false
	}

	asset, ok := market.FindByID(live, id)
	if !ok {
		return false
	}
	s.items = append(s.items, asset)
	return true
}

// IsFavorited reports whether id is in the store.
func (s *Store) IsFavorited(id string) bool {
	return s.index(id) >= 0
}

// List returns a copy of the snapshots in insertion order.
func (s *Store) List() []market.Asset {
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(a market.Asset) bool { return a.ID == id })
}
