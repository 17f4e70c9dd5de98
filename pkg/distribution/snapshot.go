package distribution

import "fmt"

// Count label units used by the talent map screens.
const (
	UnitTalents = "talents" // skills: number of people holding the skill
	UnitPeople  = "people"  // languages: number of people speaking it
)

// Entry is one aggregated skill or language.
//
// Name is never empty after [Normalize]. Category is empty for languages and
// for skills the API did not categorize. Count is never negative.
type Entry struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count"`
}

// Label formats the entry count with unit, e.g. "12 talents".
func (e Entry) Label(unit string) string {
	if unit == "" {
		return fmt.Sprintf("%d", e.Count)
	}
	return fmt.Sprintf("%d %s", e.Count, unit)
}

// Snapshot is the aggregated dataset behind the talent map.
// The JSON field names match the talent-map API payload so a marshaled
// Snapshot can be fed back through [Parse].
type Snapshot struct {
	TotalUsers     int     `json:"total_users"`
	TotalSkills    int     `json:"total_skills"`
	TotalLanguages int     `json:"total_languages"`
	TotalProjects  int     `json:"total_projects"`
	VerifiedUsers  int     `json:"verified_users_count"`
	Skills         []Entry `json:"skills_distribution"`
	Languages      []Entry `json:"languages_distribution"`
}

// IsEmpty reports whether the snapshot has nothing to visualize.
func (s Snapshot) IsEmpty() bool {
	return len(s.Skills) == 0 && len(s.Languages) == 0
}
