package srv

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config describes the monitored game server and how it is polled.
type Config struct {
	// IP and Port address the game server itself.
	IP   string
	Port int
	// Game is the game identifier passed to the status-query endpoint.
	Game string

	// QueryURL is the status-query endpoint.
	QueryURL string
	// Interval is the delay between two polls.
	Interval time.Duration
	// RequestTimeout bounds a single query.
	RequestTimeout time.Duration
}

// Address returns the server address in ip:port form.
func (c Config) Address() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// ConnectURI returns the deep link a game client opens to join the server,
// e.g. steam://connect/45.62.160.68:27080.
func (c Config) ConnectURI(protocol string) string {
	return fmt.Sprintf("%s://connect/%s", protocol, c.Address())
}
