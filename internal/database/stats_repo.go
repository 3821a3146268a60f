package database

import (
	"context"
	"errors"
	"time"

	"github.com/terravista/estate-core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsRepo persists the CompanyStats singleton.
type StatsRepo struct {
	col *mongo.Collection
}

func NewStatsRepo(m *Mongo) *StatsRepo {
	return &StatsRepo{col: m.db.Collection(models.CompanyStats{}.CollectionName())}
}

// Get returns the singleton, or nil when none exists yet. Reading never
// creates the document.
func (r *StatsRepo) Get(ctx context.Context) (*models.CompanyStats, error) {
	var s models.CompanyStats
	if err := r.col.FindOne(ctx, bson.D{}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert applies the patch atomically against whatever singleton exists,
// creating it when absent. The single find-and-modify round trip is what
// keeps two concurrent first writes from producing two documents.
func (r *StatsRepo) Upsert(ctx context.Context, patch models.StatsPatch) (*models.CompanyStats, error) {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	insert := bson.M{"createdAt": now}

	upsertField(set, insert, "yearsOfExperience", patch.YearsOfExperience)
	upsertField(set, insert, "happyClients", patch.HappyClients)
	upsertField(set, insert, "plotsSold", patch.PlotsSold)

	update := bson.M{"$set": set, "$setOnInsert": insert}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var s models.CompanyStats
	if err := r.col.FindOneAndUpdate(ctx, bson.D{}, update, opts).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// upsertField routes a provided value into $set and an absent one into
// $setOnInsert as the zero default, so the two operators never collide on
// the same path.
func upsertField(set, insert bson.M, key string, v *int) {
	if v != nil {
		set[key] = *v
		return
	}
	insert[key] = 0
}
