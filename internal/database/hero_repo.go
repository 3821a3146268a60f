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

// HeroRepo persists HeroSlide documents.
type HeroRepo struct {
	col *mongo.Collection
}

func NewHeroRepo(m *Mongo) *HeroRepo {
	return &HeroRepo{col: m.db.Collection(models.HeroSlide{}.CollectionName())}
}

// List returns all slides sorted by order ascending; slides sharing an
// order value come back newest first.
func (r *HeroRepo) List(ctx context.Context) ([]models.HeroSlide, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]models.HeroSlide, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *HeroRepo) Get(ctx context.Context, id string) (*models.HeroSlide, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var s models.HeroSlide
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *HeroRepo) Insert(ctx context.Context, s *models.HeroSlide) error {
	s.Touch(time.Now().UTC())
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *HeroRepo) Update(ctx context.Context, id string, patch models.HeroSlidePatch) (*models.HeroSlide, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setIf(set, "image", patch.Image)
	setIf(set, "title", patch.Title)
	setIf(set, "subtitle", patch.Subtitle)
	setIf(set, "order", patch.Order)

	var s models.HeroSlide
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *HeroRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
