package models

// Project statuses. The status is a freely re-settable label, not a guarded
// workflow transition.
const (
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusUpcoming  = "upcoming"
	ProjectStatusCompleted = "completed"
)

// ValidProjectStatus reports whether s is one of the three known statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusOngoing, ProjectStatusUpcoming, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a real-estate development listed on the marketing site.
type Project struct {
	Base        `bson:",inline"`
	Name        string `json:"name"        bson:"name"`
	Size        string `json:"size"        bson:"size"`
	Location    string `json:"location"    bson:"location"`
	Price       string `json:"price"       bson:"price"`
	Facing      string `json:"facing"      bson:"facing"`
	Image       string `json:"image"       bson:"image"`
	Brochure    string `json:"brochure"    bson:"brochure"`
	Status      string `json:"status"      bson:"status"`
	Description string `json:"description" bson:"description"`
}

func (Project) CollectionName() string { return "projects" }
