package srv

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/neflity/neflity-site/neflity/internal"
	"github.com/neflity/neflity-site/neflity/srv/query"
)

// Poller keeps a best-effort view of one game server's status. Every tick it
// queries the status endpoint and publishes a record to its subscribers,
// substituting a fallback record whenever the query fails.
type Poller struct {
	log  *slog.Logger
	conf Config

	client   query.Client
	fallback Fallback

	subscribers []Subscriber
}

// NewPoller creates a Poller for the server described by conf. Records are
// published to subs in the order given.
func NewPoller(log *slog.Logger, conf Config, client query.Client, subs ...Subscriber) *Poller {
	if conf.Interval <= 0 {
		conf.Interval = internal.DefaultPollInterval
	}
	return &Poller{
		log:         log,
		conf:        conf,
		client:      client,
		fallback:    NewFallback(),
		subscribers: subs,
	}
}

// Subscription is the handle returned by Start. Stopping it cancels all
// future polls.
type Subscription struct {
	mu      sync.RWMutex
	stopped bool

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Stop cancels future polls. A request still in flight is left to finish,
// but its record is dropped. No record is published once Stop has returned.
// Stop must not be called from inside Subscriber.Publish.
func (s *Subscription) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.stop)
	})
}

// Done is closed once the ticking goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Stopped ...
func (s *Subscription) Stopped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopped
}

// Start polls once immediately, then once per interval until the returned
// Subscription is stopped or ctx is done. ctx is also the parent of every
// request, so cancelling it aborts requests in flight.
func (p *Poller) Start(ctx context.Context) *Subscription {
	sub := &Subscription{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go p.startTicking(ctx, sub)

	p.log.Info("status polling started",
		"address", p.conf.Address(),
		"interval", p.conf.Interval)
	return sub
}

// Stop is shorthand for sub.Stop.
func (p *Poller) Stop(sub *Subscription) {
	sub.Stop()
	p.log.Info("status polling stopped", "address", p.conf.Address())
}

// startTicking fires a tick right away and then on every interval. Ticks do
// not wait for each other: a slow request may still be running when the
// next one starts, and whichever resolves last wins.
func (p *Poller) startTicking(ctx context.Context, sub *Subscription) {
	defer close(sub.done)

	t := time.NewTicker(p.conf.Interval)
	defer t.Stop()

	p.tick(ctx, sub)
	for {
		select {
		case <-ctx.Done():
			sub.Stop()
			return
		case <-sub.stop:
			return
		case <-t.C:
			p.tick(ctx, sub)
		}
	}
}

// tick runs one poll in the background and publishes its record unless the
// subscription was stopped meanwhile.
func (p *Poller) tick(ctx context.Context, sub *Subscription) {
	go func() {
		r := p.PollOnce(ctx)

		sub.mu.RLock()
		defer sub.mu.RUnlock()
		if sub.stopped {
			p.log.Debug("dropping status record after stop", "address", p.conf.Address())
			return
		}
		p.publish(r)
	}()
}

// PollOnce performs exactly one query and returns the resulting record. It
// never fails: any query error yields a fallback record.
func (p *Poller) PollOnce(ctx context.Context) Record {
	info, err := p.client.Query(ctx, p.conf.IP, p.conf.Port, p.conf.Game)
	if err != nil {
		p.log.Debug("status query failed, using fallback", "address", p.conf.Address(), "error", err)
		return p.fallback.Record()
	}
	return recordFromInfo(info)
}

// publish ...
func (p *Poller) publish(r Record) {
	for _, s := range p.subscribers {
		s.Publish(r)
	}
}

// recordFromInfo resolves a live payload into a record. Missing fields take
// their defaults, so an empty payload reads as an online, empty server.
func recordFromInfo(info query.Info) Record {
	r := Record{
		Players:    info.Int(0, query.PlayersKeys...),
		MaxPlayers: info.Int(internal.DefaultMaxPlayers, query.MaxPlayersKeys...),
		Map:        info.String(internal.UnknownValue, query.MapKeys...),
		GameMode:   info.String(internal.UnknownValue, query.GameModeKeys...),
		Status:     StateOnline,
		UpdatedAt:  time.Now(),
	}
	if !info.Online() {
		r.Status = StateOffline
	}
	if r.Players < 0 {
		r.Players = 0
	}
	if r.MaxPlayers <= 0 {
		r.MaxPlayers = internal.DefaultMaxPlayers
	}
	return r
}
