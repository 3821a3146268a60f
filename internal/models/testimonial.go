package models

// Testimonial is a client review shown on the marketing site.
type Testimonial struct {
	Base        `bson:",inline"`
	Name        string `json:"name"        bson:"name"`
	Photo       string `json:"photo"       bson:"photo"`
	Rating      int    `json:"rating"      bson:"rating"`
	Testimonial string `json:"testimonial" bson:"testimonial"`
}

func (Testimonial) CollectionName() string { return "testimonials" }
