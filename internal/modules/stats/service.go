package stats

import (
	"context"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/pkg/errs"
)

// Store is the persistence contract for the company-stats singleton. The
// Upsert must be atomic against the backing store: two concurrent first
// writes may not produce two documents.
type Store interface {
	Get(ctx context.Context) (*models.CompanyStats, error)
	Upsert(ctx context.Context, patch models.StatsPatch) (*models.CompanyStats, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// Get returns the singleton without creating one as a read side effect;
// callers render zero-valued defaults when it does not exist yet.
func (s *Service) Get(ctx context.Context) (*models.CompanyStats, error) {
	return s.store.Get(ctx)
}

func (s *Service) Upsert(ctx context.Context, patch models.StatsPatch) (*models.CompanyStats, error) {
	for _, v := range []*int{patch.YearsOfExperience, patch.HappyClients, patch.PlotsSold} {
		if v != nil && *v < 0 {
			return nil, errs.Validation("Stats values must be non-negative")
		}
	}
	return s.store.Upsert(ctx, patch)
}
