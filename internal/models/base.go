package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the server-generated identity and timestamps shared by all
// documents. JSON field names match what the site and admin clients already
// consume (`_id`, `createdAt`, `updatedAt`).
type Base struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Touch stamps a fresh document before insert.
func (b *Base) Touch(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
