// Package rank describes the staff rank hierarchy shown on the ranks page.
package rank

// Rank represents a staff rank.
type Rank int

// Rank constants, in display order.
const (
	Owner Rank = iota
	CoOwner
	HeadOfManagement
	DeveloperOverseer
	CommunityManager
	StaffDirector
	GameMasterDirector
	AssistantCommunityManager
	AssistantStaffDirector
	StaffManager
	HeadDeveloper
	HeadAdmin
	HeadEventMaster
)

// Vacant is shown for a seat nobody holds.
const Vacant = "N/A"

// Info centralizes all details for each rank.
type Info struct {
	DisplayName string  // Human-readable name of the rank.
	Emoji       string  // Shown before the rank name.
	Section     Section // Tier the rank belongs to.
	Seats       int     // Number of people that can hold the rank.
}

// rankInfos holds the rank details keyed by the Rank constants.
var rankInfos = map[Rank]Info{
	Owner:              {DisplayName: "Owner", Emoji: "🛡️", Section: Ownership, Seats: 1},
	CoOwner:            {DisplayName: "Co Owner", Emoji: "🎖️", Section: Ownership, Seats: 2},
	HeadOfManagement:   {DisplayName: "Head of Management", Emoji: "⚠️", Section: SeniorManagement, Seats: 1},
	DeveloperOverseer:  {DisplayName: "Developer Overseer", Emoji: "🛠️", Section: SeniorManagement, Seats: 1},
	CommunityManager:   {DisplayName: "Community Manager", Emoji: "🟢", Section: SeniorManagement, Seats: 1},
	StaffDirector:      {DisplayName: "Staff Director", Emoji: "🔧", Section: SeniorManagement, Seats: 1},
	GameMasterDirector: {DisplayName: "Game Master Director", Emoji: "🎮", Section: SeniorManagement, Seats: 1},
	AssistantCommunityManager: {DisplayName: "Assistant Community Manager", Emoji: "🟢", Section: Management,
		Seats: 1},
	AssistantStaffDirector: {DisplayName: "Assistant Staff Director", Emoji: "🟦", Section: Management, Seats: 1},
	StaffManager:           {DisplayName: "Staff Manager", Emoji: "🟥", Section: Management, Seats: 1},
	HeadDeveloper:          {DisplayName: "Head Developer", Emoji: "🔧", Section: JuniorManagement, Seats: 1},
	HeadAdmin:              {DisplayName: "Head Admin", Emoji: "📘", Section: JuniorManagement, Seats: 1},
	HeadEventMaster:        {DisplayName: "Head Event Master", Emoji: "🎬", Section: JuniorManagement, Seats: 1},
}

// All returns every rank in display order.
func All() []Rank {
	ranks := make([]Rank, 0, len(rankInfos))
	for r := Owner; r <= HeadEventMaster; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// Info returns the details of the rank.
func (r Rank) Info() (Info, bool) {
	info, ok := rankInfos[r]
	return info, ok
}

// Name returns the human-readable name of the rank.
func (r Rank) Name() string {
	info, ok := rankInfos[r]
	if !ok {
		return "Unknown"
	}
	return info.DisplayName
}

// Emoji ...
func (r Rank) Emoji() string {
	return rankInfos[r].Emoji
}

// Section returns the tier the rank belongs to.
func (r Rank) Section() Section {
	return rankInfos[r].Section
}
