package srv

import (
	"math/rand/v2"
	"time"

	"github.com/neflity/neflity-site/neflity/internal"
)

// Fallback builds placeholder records for polls that failed, so the
// display always has plausible data to show.
type Fallback struct {
	intN func(n int) int
}

// NewFallback returns a Fallback drawing from the global random source.
func NewFallback() Fallback {
	return Fallback{intN: rand.IntN}
}

// Record returns a record with a random player count in [0, 24), a random map
// and game mode from the fixed candidates, the default capacity and an
// offline status.
func (f Fallback) Record() Record {
	intN := f.intN
	if intN == nil {
		intN = rand.IntN
	}
	return Record{
		Players:    intN(internal.FallbackPlayerRange),
		MaxPlayers: internal.DefaultMaxPlayers,
		Map:        internal.FallbackMaps[intN(len(internal.FallbackMaps))],
		GameMode:   internal.FallbackGameModes[intN(len(internal.FallbackGameModes))],
		Status:     StateOffline,
		UpdatedAt:  time.Now(),
		Fallback:   true,
	}
}
