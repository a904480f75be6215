package rank

import (
	"strings"

	"github.com/samber/lo"
)

// Config holds who currently holds each rank. An empty value leaves the seat
// vacant.
type Config struct {
	Owner                     string
	CoOwner                   []string
	HeadOfManagement          string
	DeveloperOverseer         string
	CommunityManager          string
	StaffDirector             string
	GameMasterDirector        string
	AssistantCommunityManager string
	AssistantStaffDirector    string
	StaffManager              string
	HeadDeveloper             string
	HeadAdmin                 string
	HeadEventMaster           string
}

// DefaultConfig returns the current staff line-up.
func DefaultConfig() Config {
	return Config{
		Owner:                     "Don",
		CoOwner:                   []string{"Junior Jr"},
		DeveloperOverseer:         "Psycho",
		CommunityManager:          "CT-0908 Ensign PL Hawk",
		StaffDirector:             "Not grannen",
		AssistantCommunityManager: "Mason",
		HeadEventMaster:           "212th CC-3245 Soren",
	}
}

// holders returns the configured holders of a rank.
func (c Config) holders(r Rank) []string {
	switch r {
	case Owner:
		return []string{c.Owner}
	case CoOwner:
		return c.CoOwner
	case HeadOfManagement:
		return []string{c.HeadOfManagement}
	case DeveloperOverseer:
		return []string{c.DeveloperOverseer}
	case CommunityManager:
		return []string{c.CommunityManager}
	case StaffDirector:
		return []string{c.StaffDirector}
	case GameMasterDirector:
		return []string{c.GameMasterDirector}
	case AssistantCommunityManager:
		return []string{c.AssistantCommunityManager}
	case AssistantStaffDirector:
		return []string{c.AssistantStaffDirector}
	case StaffManager:
		return []string{c.StaffManager}
	case HeadDeveloper:
		return []string{c.HeadDeveloper}
	case HeadAdmin:
		return []string{c.HeadAdmin}
	case HeadEventMaster:
		return []string{c.HeadEventMaster}
	}
	return nil
}

// Seat is one position in the hierarchy and the person holding it.
type Seat struct {
	Rank   Rank
	Holder string
}

// Group is a section with its seats in display order.
type Group struct {
	Section Section
	Seats   []Seat
}

// Roster lays out every seat of every section, filling vacant seats with
// Vacant. Holders beyond a rank's seat count are ignored.
func Roster(conf Config) []Group {
	return lo.Map(Sections(), func(s Section, _ int) Group {
		ranks := lo.Filter(All(), func(r Rank, _ int) bool {
			return r.Section() == s
		})
		return Group{
			Section: s,
			Seats:   lo.FlatMap(ranks, func(r Rank, _ int) []Seat { return seats(r, conf.holders(r)) }),
		}
	})
}

// seats ...
func seats(r Rank, holders []string) []Seat {
	info, _ := r.Info()
	out := make([]Seat, info.Seats)
	for i := range out {
		holder := ""
		if i < len(holders) {
			holder = strings.TrimSpace(holders[i])
		}
		if holder == "" {
			holder = Vacant
		}
		out[i] = Seat{Rank: r, Holder: holder}
	}
	return out
}
