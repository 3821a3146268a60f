package models

// Patch types carry partial updates. A nil field means "not provided, leave
// the stored value alone" — this replaces the original admin API's
// value-or-previous merge, which could not distinguish an intentional empty
// string from an omitted field.

type ProjectPatch struct {
	Name        *string
	Size        *string
	Location    *string
	Price       *string
	Facing      *string
	Image       *string
	Brochure    *string
	Status      *string
	Description *string
}

type TestimonialPatch struct {
	Name        *string
	Photo       *string
	Rating      *int
	Testimonial *string
}

type HeroSlidePatch struct {
	Image    *string
	Title    *string
	Subtitle *string
	Order    *int
}

// StatsPatch is the only patch bound straight from a JSON body, so it
// carries tags.
type StatsPatch struct {
	YearsOfExperience *int `json:"yearsOfExperience"`
	HappyClients      *int `json:"happyClients"`
	PlotsSold         *int `json:"plotsSold"`
}
