package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neflity/neflity-site/neflity/srv"
)

var testServer = srv.Config{IP: "45.62.160.68", Port: 27080}

func TestProvider_Initial(t *testing.T) {
	p := NewProvider(testServer)

	_, ok := p.Record()
	assert.False(t, ok)
	assert.Equal(t, View{
		Address:    "45.62.160.68:27080",
		Players:    0,
		MaxPlayers: 64,
		Map:        "Unknown",
		GameMode:   "Sandbox",
		Status:     Unknown,
	}, p.View())
}

func TestProvider_Publish(t *testing.T) {
	p := NewProvider(testServer)
	at := time.UnixMilli(1700000000000)

	p.Publish(srv.Record{Players: 3, MaxPlayers: 64, Map: "gm_construct", GameMode: "DarkRP", Status: srv.StateOnline, UpdatedAt: at})
	p.Publish(srv.Record{Players: 9, MaxPlayers: 32, Map: "rp_city17", GameMode: "Sandbox", Status: srv.StateOffline, UpdatedAt: at})

	r, ok := p.Record()
	assert.True(t, ok)
	assert.Equal(t, 9, r.Players)

	assert.Equal(t, View{
		Address:    "45.62.160.68:27080",
		Players:    9,
		MaxPlayers: 32,
		Map:        "rp_city17",
		GameMode:   "Sandbox",
		Status:     "offline",
		Online:     false,
		UpdatedAt:  1700000000000,
	}, p.View())
}

func TestProvider_ConcurrentReadersSeeWholeRecords(t *testing.T) {
	p := NewProvider(testServer)
	a := srv.Record{Players: 1, MaxPlayers: 10, Map: "a", GameMode: "a", Status: srv.StateOnline}
	b := srv.Record{Players: 2, MaxPlayers: 20, Map: "b", GameMode: "b", Status: srv.StateOffline}
	p.Publish(a)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				p.Publish(b)
			} else {
				p.Publish(a)
			}
		}
	}()
	for i := 0; i < 1000; i++ {
		r, _ := p.Record()
		if r.Players == 1 {
			assert.Equal(t, a, r)
		} else {
			assert.Equal(t, b, r)
		}
	}
	wg.Wait()
}
