package models

// CompanyStats is a singleton document: at most one exists per deployment.
type CompanyStats struct {
	Base              `bson:",inline"`
	YearsOfExperience int `json:"yearsOfExperience" bson:"yearsOfExperience"`
	HappyClients      int `json:"happyClients"      bson:"happyClients"`
	PlotsSold         int `json:"plotsSold"         bson:"plotsSold"`
}

func (CompanyStats) CollectionName() string { return "companystats" }
