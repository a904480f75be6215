package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Info is the decoded status-query payload. The upstream service does not
// commit to one schema, so values are kept raw and resolved by alias.
type Info map[string]json.RawMessage

// Known aliases per field, in priority order.
var (
	PlayersKeys    = []string{"players", "numplayers", "players_online"}
	MaxPlayersKeys = []string{"maxplayers", "maxPlayers", "max_players"}
	MapKeys        = []string{"map", "current_map", "mapname"}
	GameModeKeys   = []string{"gamemode", "game", "mod"}
)

var errNotObject = errors.New("body is not a JSON object")

// decodeInfo parses a response body. A top-level null is treated as an
// empty object, anything else that is not an object is rejected.
func decodeInfo(body []byte) (Info, error) {
	body = bytes.TrimSpace(body)
	if isNull(body) {
		return Info{}, nil
	}
	if len(body) == 0 || body[0] != '{' {
		return nil, errNotObject
	}
	info := make(Info)
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// Int returns the first alias holding a usable number, or def.
// Numbers sent as strings ("12") are accepted, fractions are truncated.
func (i Info) Int(def int, keys ...string) int {
	var n int
	_, ok := lo.Find(keys, func(key string) bool {
		raw, ok := i.value(key)
		if !ok {
			return false
		}
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return false
		}
		f, err := num.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		n = int(f)
		return true
	})
	if !ok {
		return def
	}
	return n
}

// String returns the first alias holding a string or number, or def.
func (i Info) String(def string, keys ...string) string {
	var s string
	_, ok := lo.Find(keys, func(key string) bool {
		raw, ok := i.value(key)
		if !ok {
			return false
		}
		if err := json.Unmarshal(raw, &s); err == nil {
			return true
		}
		var num json.Number
		if err := json.Unmarshal(raw, &num); err == nil {
			s = num.String()
			return true
		}
		return false
	})
	if !ok {
		return def
	}
	return s
}

// Online reports false only when the payload explicitly carries
// "online": false. A missing, null or non-boolean marker counts as online.
func (i Info) Online() bool {
	raw, ok := i["online"]
	if !ok {
		return true
	}
	return strings.TrimSpace(string(raw)) != "false"
}

// value returns the raw value of key, treating null like a missing key.
func (i Info) value(key string) (json.RawMessage, bool) {
	raw, ok := i[key]
	if !ok || isNull(bytes.TrimSpace(raw)) {
		return nil, false
	}
	return raw, true
}

// isNull ...
func isNull(b []byte) bool {
	return string(b) == "null"
}
