// Package staff holds the staff team shown on the staff page.
package staff

// Member is one person on the staff team.
type Member struct {
	Name   string
	Role   string
	Bio    string
	Avatar string
}

// members ...
var members = []Member{
	{Name: "Astra", Role: "Owner", Bio: "Founder & lead developer", Avatar: "https://i.pravatar.cc/150?img=32"},
	{Name: "Kai", Role: "Admin", Bio: "Server operations & moderation", Avatar: "https://i.pravatar.cc/150?img=12"},
	{Name: "Nova", Role: "Moderator", Bio: "Community moderator", Avatar: "https://i.pravatar.cc/150?img=5"},
}

// All returns the staff team in display order. The slice is a copy.
func All() []Member {
	out := make([]Member, len(members))
	copy(out, members)
	return out
}
