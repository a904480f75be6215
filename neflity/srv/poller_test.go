package srv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neflity/neflity-site/neflity/internal"
	"github.com/neflity/neflity-site/neflity/srv/query"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeClient answers every query with info/err. When block is set, queries
// wait for it to be closed.
type fakeClient struct {
	mu    sync.Mutex
	calls int

	info  query.Info
	err   error
	block chan struct{}
}

func (f *fakeClient) Query(ctx context.Context, _ string, _ int, _ string) (query.Info, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.info, f.err
}

func (f *fakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// recorder collects published records.
type recorder struct {
	mu      sync.Mutex
	records []Record
}

func (r *recorder) Publish(rec Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *recorder) Last() Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[len(r.records)-1]
}

func testConfig(endpoint string, interval time.Duration) Config {
	return Config{
		IP:             "10.0.0.1",
		Port:           27015,
		Game:           "source",
		QueryURL:       endpoint,
		Interval:       interval,
		RequestTimeout: time.Second,
	}
}

func assertFallback(t *testing.T, r Record) {
	t.Helper()
	assert.Equal(t, StateOffline, r.Status)
	assert.GreaterOrEqual(t, r.Players, 0)
	assert.Less(t, r.Players, internal.FallbackPlayerRange)
	assert.Equal(t, 64, r.MaxPlayers)
	assert.Contains(t, internal.FallbackMaps, r.Map)
	assert.Contains(t, internal.FallbackGameModes, r.GameMode)
	assert.True(t, r.Fallback)
}

func TestPoller_PollOnceHTTPFailures(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound,
		http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout,
	}
	for _, status := range statuses {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"players": 3, "online": true}`))
			}))
			defer server.Close()

			conf := testConfig(server.URL, time.Hour)
			p := NewPoller(testLog, conf, query.NewClient(conf.QueryURL, conf.RequestTimeout))
			for i := 0; i < 20; i++ {
				assertFallback(t, p.PollOnce(context.Background()))
			}
		})
	}

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>down for maintenance</html>`))
		}))
		defer server.Close()

		conf := testConfig(server.URL, time.Hour)
		p := NewPoller(testLog, conf, query.NewClient(conf.QueryURL, conf.RequestTimeout))
		assertFallback(t, p.PollOnce(context.Background()))
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		endpoint := server.URL
		server.Close()

		conf := testConfig(endpoint, time.Hour)
		p := NewPoller(testLog, conf, query.NewClient(conf.QueryURL, conf.RequestTimeout))
		assertFallback(t, p.PollOnce(context.Background()))
	})
}

func TestPoller_PollOnceLive(t *testing.T) {
	testCases := []struct {
		name     string
		info     query.Info
		expected Record
	}{
		{
			name: "empty payload reads as online defaults",
			info: query.Info{},
			expected: Record{
				Players: 0, MaxPlayers: 64, Map: "Unknown", GameMode: "Unknown", Status: StateOnline,
			},
		},
		{
			name: "numplayers alias",
			info: query.Info{"numplayers": []byte(`5`)},
			expected: Record{
				Players: 5, MaxPlayers: 64, Map: "Unknown", GameMode: "Unknown", Status: StateOnline,
			},
		},
		{
			name: "players_online alias",
			info: query.Info{"players_online": []byte(`5`)},
			expected: Record{
				Players: 5, MaxPlayers: 64, Map: "Unknown", GameMode: "Unknown", Status: StateOnline,
			},
		},
		{
			name: "explicit offline marker",
			info: query.Info{
				"online":     []byte(`false`),
				"players":    []byte(`12`),
				"maxplayers": []byte(`32`),
				"map":        []byte(`"rp_city17"`),
				"gamemode":   []byte(`"DarkRP"`),
			},
			expected: Record{
				Players: 12, MaxPlayers: 32, Map: "rp_city17", GameMode: "DarkRP", Status: StateOffline,
			},
		},
		{
			name: "full payload with alternate names",
			info: query.Info{
				"numplayers":  []byte(`18`),
				"max_players": []byte(`48`),
				"current_map": []byte(`"gm_construct"`),
				"mod":         []byte(`"Sandbox"`),
				"online":      []byte(`true`),
			},
			expected: Record{
				Players: 18, MaxPlayers: 48, Map: "gm_construct", GameMode: "Sandbox", Status: StateOnline,
			},
		},
		{
			name: "negative players clamp to zero",
			info: query.Info{"players": []byte(`-3`), "maxplayers": []byte(`0`)},
			expected: Record{
				Players: 0, MaxPlayers: 64, Map: "Unknown", GameMode: "Unknown", Status: StateOnline,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPoller(testLog, testConfig("", time.Hour), &fakeClient{info: tc.info})
			r := p.PollOnce(context.Background())
			assert.False(t, r.Fallback)
			assert.False(t, r.UpdatedAt.IsZero())

			r.UpdatedAt = time.Time{}
			assert.Equal(t, tc.expected, r)
		})
	}
}

func TestPoller_PollOnceEmptyObjectOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	conf := testConfig(server.URL, time.Hour)
	p := NewPoller(testLog, conf, query.NewClient(conf.QueryURL, conf.RequestTimeout))
	r := p.PollOnce(context.Background())
	assert.Equal(t, StateOnline, r.Status)
	assert.Equal(t, 0, r.Players)
	assert.Equal(t, 64, r.MaxPlayers)
	assert.Equal(t, "Unknown", r.Map)
	assert.Equal(t, "Unknown", r.GameMode)
}

func TestPoller_StartPollsImmediately(t *testing.T) {
	client := &fakeClient{info: query.Info{"players": []byte(`7`)}}
	rec := &recorder{}
	p := NewPoller(testLog, testConfig("", time.Hour), client, rec)

	sub := p.Start(context.Background())
	defer p.Stop(sub)

	require.Eventually(t, func() bool { return rec.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 7, rec.Last().Players)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, 1, client.Calls())
}

func TestPoller_Cadence(t *testing.T) {
	client := &fakeClient{info: query.Info{}}
	rec := &recorder{}
	p := NewPoller(testLog, testConfig("", 40*time.Millisecond), client, rec)

	start := time.Now()
	sub := p.Start(context.Background())
	require.Eventually(t, func() bool { return rec.Len() >= 4 }, 2*time.Second, 5*time.Millisecond)
	elapsed := time.Since(start)
	p.Stop(sub)

	// One poll at t=0, the fourth no earlier than three intervals later.
	assert.GreaterOrEqual(t, elapsed, 3*40*time.Millisecond-10*time.Millisecond)

	<-sub.Done()
	published := rec.Len()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, published, rec.Len())
}

func TestPoller_StopDropsInFlightResult(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{info: query.Info{"players": []byte(`3`)}, block: block}
	rec := &recorder{}
	p := NewPoller(testLog, testConfig("", time.Hour), client, rec)

	sub := p.Start(context.Background())
	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)

	p.Stop(sub)
	assert.True(t, sub.Stopped())
	close(block)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, rec.Len())

	// Stopping twice is harmless.
	sub.Stop()
}

func TestPoller_SlowRequestDoesNotDelayTicks(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{info: query.Info{}, block: block}
	rec := &recorder{}
	p := NewPoller(testLog, testConfig("", 30*time.Millisecond), client, rec)

	sub := p.Start(context.Background())
	require.Eventually(t, func() bool { return client.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, rec.Len())

	close(block)
	require.Eventually(t, func() bool { return rec.Len() >= 3 }, time.Second, 5*time.Millisecond)
	p.Stop(sub)
}

func TestPoller_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	p := NewPoller(testLog, testConfig("", time.Hour), &fakeClient{info: query.Info{}}, rec)

	sub := p.Start(ctx)
	require.Eventually(t, func() bool { return rec.Len() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("poller did not exit after context cancel")
	}
	assert.True(t, sub.Stopped())
}

func TestPoller_PublishesToAllSubscribers(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	var fn []Record
	var mu sync.Mutex
	p := NewPoller(testLog, testConfig("", time.Hour), &fakeClient{info: query.Info{}}, first, second,
		SubscriberFunc(func(r Record) {
			mu.Lock()
			fn = append(fn, r)
			mu.Unlock()
		}))

	sub := p.Start(context.Background())
	defer sub.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return first.Len() == 1 && second.Len() == 1 && len(fn) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestFallback_Record(t *testing.T) {
	f := Fallback{intN: func(n int) int { return n - 1 }}
	r := f.Record()
	assert.Equal(t, 23, r.Players)
	assert.Equal(t, "gm_flatgrass", r.Map)
	assert.Equal(t, "StarwarsRP", r.GameMode)
	assert.Equal(t, StateOffline, r.Status)

	zero := Fallback{}
	for i := 0; i < 100; i++ {
		assertFallback(t, zero.Record())
	}
}

func TestConfig_Address(t *testing.T) {
	conf := Config{IP: "45.62.160.68", Port: 27080}
	assert.Equal(t, "45.62.160.68:27080", conf.Address())
	assert.Equal(t, "steam://connect/45.62.160.68:27080", conf.ConnectURI("steam"))
}
