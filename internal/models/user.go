package models

// User is an admin account. There is a single privileged role; the site
// itself has no public accounts.
type User struct {
	Base     `bson:",inline"`
	Username string `json:"username" bson:"username"`
	Password string `json:"-"        bson:"password"`
	Role     string `json:"role"     bson:"role"`
}

const RoleAdmin = "admin"

func (User) CollectionName() string { return "users" }
