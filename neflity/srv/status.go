package srv

import "time"

// State is the reachability of the monitored server.
type State string

const (
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// Record represents the state of the game server produced by one poll.
// Records are replaced whole on every poll.
type Record struct {
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Map        string `json:"map"`
	GameMode   string `json:"gamemode"`
	Status     State  `json:"status"`

	UpdatedAt time.Time `json:"updatedAt"`

	// Fallback is set on records built after a failed poll. It is not sent
	// to browsers so fabricated data looks like any offline reading.
	Fallback bool `json:"-"`
}

// Online ...
func (r Record) Online() bool {
	return r.Status == StateOnline
}

// Subscriber receives every record the poller produces.
type Subscriber interface {
	Publish(r Record)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(r Record)

// Publish ...
func (f SubscriberFunc) Publish(r Record) {
	f(r)
}
