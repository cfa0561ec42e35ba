package entity

import "time"

type Role string

const (
	RoleViewer    Role = "viewer"
	RoleCreator   Role = "creator"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Viewer is the resolved identity behind a request. A nil *Viewer is the
// anonymous viewer.
type Viewer struct {
	ID        string
	Role      Role
	BirthYear *int
}

func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == RoleAdmin
}

// AgeAt returns the viewer's age in whole years at now and whether it is known.
func (v *Viewer) AgeAt(now time.Time) (int, bool) {
	if v == nil || v.BirthYear == nil {
		return 0, false
	}
	return now.Year() - *v.BirthYear, true
}

type ContentPreferences struct {
	HideAIGenerated  bool `json:"hideAiGenerated"`
	HideAIAssisted   bool `json:"hideAiAssisted"`
	HideSponsored    bool `json:"hideSponsored"`
	HideSensitive    bool `json:"hideSensitive"`
	ApplyToDiscovery bool `json:"applyToDiscovery"`
}

// DefaultPreferences is what a viewer without a stored record gets: nothing
// hidden, master switch on.
func DefaultPreferences() ContentPreferences {
	return ContentPreferences{ApplyToDiscovery: true}
}

func (p ContentPreferences) ExcludedProvenance() map[Provenance]bool {
	excluded := make(map[Provenance]bool, 2)
	if p.HideAIGenerated {
		excluded[ProvenanceAIGenerated] = true
	}
	if p.HideAIAssisted {
		excluded[ProvenanceAIAssisted] = true
	}
	return excluded
}
