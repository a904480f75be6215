package rank

// Section is one tier of the rank hierarchy.
type Section int

const (
	Ownership Section = iota
	SeniorManagement
	Management
	JuniorManagement
)

// sectionNames ...
var sectionNames = map[Section]string{
	Ownership:        "Ownership",
	SeniorManagement: "Senior Management Team",
	Management:       "Management Team",
	JuniorManagement: "Junior Management Team",
}

// Sections returns every section from the top of the hierarchy down.
func Sections() []Section {
	return []Section{Ownership, SeniorManagement, Management, JuniorManagement}
}

// Name returns the title of the section.
func (s Section) Name() string {
	name, ok := sectionNames[s]
	if !ok {
		return "Unknown"
	}
	return name
}
