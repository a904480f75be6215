package util

import (
	"fmt"
	"strings"
	"time"
)

// Duration is a time.Duration that reads and writes itself as text ("10s"),
// so it can be stored in config.toml and set from environment variables.
type Duration time.Duration

// UnmarshalText parses a Go duration string. Negative durations are rejected.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: cannot parse %q: %w", s, err)
	}
	if v < 0 {
		return fmt.Errorf("duration: %q is negative", s)
	}
	*d = Duration(v)
	return nil
}

// MarshalText ...
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Std().String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
