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

// ProjectRepo persists Project documents.
type ProjectRepo struct {
	col *mongo.Collection
}

func NewProjectRepo(m *Mongo) *ProjectRepo {
	return &ProjectRepo{col: m.db.Collection(models.Project{}.CollectionName())}
}

// List returns all projects, newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]models.Project, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the project with the given id, or nil when unknown. A
// malformed id behaves the same as an unknown one.
func (r *ProjectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var p models.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Insert stamps identity and timestamps and writes a new document.
func (r *ProjectRepo) Insert(ctx context.Context, p *models.Project) error {
	p.Touch(time.Now().UTC())
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// Update applies the provided patch fields and returns the updated
// document, or nil when the id is unknown.
func (r *ProjectRepo) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setIf(set, "name", patch.Name)
	setIf(set, "size", patch.Size)
	setIf(set, "location", patch.Location)
	setIf(set, "price", patch.Price)
	setIf(set, "facing", patch.Facing)
	setIf(set, "image", patch.Image)
	setIf(set, "brochure", patch.Brochure)
	setIf(set, "status", patch.Status)
	setIf(set, "description", patch.Description)

	var p models.Project
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the document permanently and reports whether it existed.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
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
