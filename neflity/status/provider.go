package status

import (
	"github.com/df-mc/atomic"

	"github.com/neflity/neflity-site/neflity/internal"
	"github.com/neflity/neflity-site/neflity/srv"
)

// Unknown is the status label shown before the first poll completes.
const Unknown = "unknown"

// Provider holds the latest record published by the poller for the pages
// to display. The record is swapped whole, so readers never see a partial
// update.
type Provider struct {
	conf srv.Config

	received atomic.Bool
	record   atomic.Value[srv.Record]
}

// NewProvider ...
func NewProvider(conf srv.Config) *Provider {
	return &Provider{conf: conf}
}

// Publish stores r as the latest record.
func (p *Provider) Publish(r srv.Record) {
	p.record.Store(r)
	p.received.Store(true)
}

// Record returns the latest record and whether any poll has completed yet.
func (p *Provider) Record() (srv.Record, bool) {
	if !p.received.Load() {
		return srv.Record{}, false
	}
	return p.record.Load(), true
}

// View is the status block as displayed.
type View struct {
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Map        string `json:"map"`
	GameMode   string `json:"gamemode"`
	Status     string `json:"status"`
	Online     bool   `json:"online"`
	UpdatedAt  int64  `json:"updatedAt,omitempty"`
}

// View returns what the status block shows right now. Before the first poll
// completes that is an empty server in the "unknown" state.
func (p *Provider) View() View {
	r, ok := p.Record()
	if !ok {
		return View{
			Address:    p.conf.Address(),
			MaxPlayers: internal.DefaultMaxPlayers,
			Map:        internal.UnknownValue,
			GameMode:   "Sandbox",
			Status:     Unknown,
		}
	}
	return ViewOf(p.conf, r)
}

// ViewOf converts a record into its displayed form.
func ViewOf(conf srv.Config, r srv.Record) View {
	return View{
		Address:    conf.Address(),
		Players:    r.Players,
		MaxPlayers: r.MaxPlayers,
		Map:        r.Map,
		GameMode:   r.GameMode,
		Status:     string(r.Status),
		Online:     r.Online(),
		UpdatedAt:  r.UpdatedAt.UnixMilli(),
	}
}
