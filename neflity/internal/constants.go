package internal

import "time"

// Status record defaults
const (
	// DefaultMaxPlayers is the capacity reported when the upstream omits it, and
	// the capacity of every fallback record.
	DefaultMaxPlayers = 64

	// UnknownValue is shown for a map or game mode the upstream did not report.
	UnknownValue = "Unknown"

	// FallbackPlayerRange is the exclusive upper bound of fallback player counts.
	FallbackPlayerRange = 24
)

// Fallback candidates. A fallback record picks one of each at random.
var (
	FallbackMaps      = []string{"rp_city17", "gm_construct", "gm_flatgrass"}
	FallbackGameModes = []string{"DarkRP", "Sandbox", "StarwarsRP"}
)

// Polling and HTTP constants
const (
	// DefaultPollInterval is the delay between two status polls
	DefaultPollInterval = 10 * time.Second

	// MinPollInterval is the smallest interval the config accepts
	MinPollInterval = time.Second

	// DefaultRequestTimeout bounds a single status query
	DefaultRequestTimeout = 5 * time.Second

	// ShutdownTimeout is how long the HTTP server gets to drain on close
	ShutdownTimeout = 5 * time.Second

	// SentryFlushTimeout is how long buffered events get to reach Sentry on exit
	SentryFlushTimeout = 2 * time.Second
)

// Websocket constants
const (
	// ClientSendBuffer is the number of records queued per websocket client
	// before the client is considered too slow and dropped.
	ClientSendBuffer = 16

	// WriteTimeout bounds a single websocket write.
	WriteTimeout = 10 * time.Second

	// PongTimeout is the time a websocket client has to answer a ping.
	PongTimeout = 60 * time.Second

	// PingInterval must stay shorter than PongTimeout.
	PingInterval = 50 * time.Second
)
