package refresh

import (
	"time"

	"github.com/rshade/cryptoboard/internal/market"
)

// State is an immutable snapshot of the refresh cycle.
// Assets is replaced wholesale on success and must be treated as read-only.
type State struct {
	Assets      []market.Asset
	Loading     bool
	Err         string    // most recent failure message; empty after a success
	LastUpdated time.Time // set only on success
	Cycle       uint64    // generation of the last applied result
	Failures    int       // consecutive failed cycles
}

// HasError reports whether the most recent applied cycle failed.
func (s State) HasError() bool {
	return s.Err != ""
}

// HasData reports whether a successful cycle has ever been applied.
func (s State) HasData() bool {
	return !s.LastUpdated.IsZero()
}
