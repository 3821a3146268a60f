package database

import (
	"context"
	"errors"
	"time"

	"github.com/terravista/estate-core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo persists admin accounts.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(m *Mongo) *UserRepo {
	return &UserRepo{col: m.db.Collection(models.User{}.CollectionName())}
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("user not found")
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// EnsureAdmin creates the admin account or resets its password, keyed by
// username. Used by the create-admin CLI, not the server.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"password":  passwordHash,
			"role":      models.RoleAdmin,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"username": username}, update, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
