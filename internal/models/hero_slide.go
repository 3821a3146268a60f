package models

// HeroSlide is one slide of the landing-page hero carousel. Order has no
// uniqueness constraint; ties are broken by creation recency.
type HeroSlide struct {
	Base     `bson:",inline"`
	Image    string `json:"image"    bson:"image"`
	Title    string `json:"title"    bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	Order    int    `json:"order"    bson:"order"`
}

func (HeroSlide) CollectionName() string { return "heroslides" }
