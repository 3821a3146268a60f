package testimonial

import (
	"context"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
	"github.com/terravista/estate-core/internal/pkg/errs"
)

const defaultRating = 5

// Store is the persistence contract for testimonials.
type Store interface {
	List(ctx context.Context) ([]models.Testimonial, error)
	Get(ctx context.Context, id string) (*models.Testimonial, error)
	Insert(ctx context.Context, t *models.Testimonial) error
	Update(ctx context.Context, id string, patch models.TestimonialPatch) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store   Store
	uploads *upload.Storage
}

func NewService(store Store, uploads *upload.Storage) *Service {
	return &Service{store: store, uploads: uploads}
}

func (s *Service) List(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput, files []upload.Incoming) (*models.Testimonial, error) {
	if in.Name == "" {
		return nil, errs.Validation("Client name is required")
	}
	if in.Testimonial == "" {
		return nil, errs.Validation("Testimonial text is required")
	}
	rating := defaultRating
	if in.RatingSet {
		if err := validateRating(in.Rating); err != nil {
			return nil, err
		}
		rating = in.Rating
	}

	urls, err := s.uploads.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	t := &models.Testimonial{
		Name:        in.Name,
		Testimonial: in.Testimonial,
		Rating:      rating,
		Photo:       urls["photo"],
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id string, patch models.TestimonialPatch, files []upload.Incoming) (*models.Testimonial, error) {
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	urls, err := s.uploads.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}
	if u, ok := urls["photo"]; ok {
		patch.Photo = &u
	}

	return s.store.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

// validateRating rejects out-of-range ratings outright rather than
// clamping them.
func validateRating(r int) error {
	if r < 1 || r > 5 {
		return errs.Validation("Rating must be between 1 and 5")
	}
	return nil
}
