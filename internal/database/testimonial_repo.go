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

// TestimonialRepo persists Testimonial documents.
type TestimonialRepo struct {
	col *mongo.Collection
}

func NewTestimonialRepo(m *Mongo) *TestimonialRepo {
	return &TestimonialRepo{col: m.db.Collection(models.Testimonial{}.CollectionName())}
}

func (r *TestimonialRepo) List(ctx context.Context) ([]models.Testimonial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]models.Testimonial, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TestimonialRepo) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var t models.Testimonial
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepo) Insert(ctx context.Context, t *models.Testimonial) error {
	t.Touch(time.Now().UTC())
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TestimonialRepo) Update(ctx context.Context, id string, patch models.TestimonialPatch) (*models.Testimonial, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setIf(set, "name", patch.Name)
	setIf(set, "photo", patch.Photo)
	setIf(set, "rating", patch.Rating)
	setIf(set, "testimonial", patch.Testimonial)

	var t models.Testimonial
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) (bool, error) {
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
