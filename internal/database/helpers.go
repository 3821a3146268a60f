package database

import "go.mongodb.org/mongo-driver/bson"

// setIf adds key to the $set document only when the patch field was provided.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
