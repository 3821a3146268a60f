package hero

import (
	"context"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
	"github.com/terravista/estate-core/internal/pkg/errs"
)

// Store is the persistence contract for hero slides.
type Store interface {
	List(ctx context.Context) ([]models.HeroSlide, error)
	Get(ctx context.Context, id string) (*models.HeroSlide, error)
	Insert(ctx context.Context, s *models.HeroSlide) error
	Update(ctx context.Context, id string, patch models.HeroSlidePatch) (*models.HeroSlide, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateInput carries the text fields of a slide create request; the
// image itself is a required file part.
type CreateInput struct {
	Title    string
	Subtitle string
	Order    int
}

type Service struct {
	store   Store
	uploads *upload.Storage
}

func NewService(store Store, uploads *upload.Storage) *Service {
	return &Service{store: store, uploads: uploads}
}

func (s *Service) List(ctx context.Context) ([]models.HeroSlide, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.HeroSlide, error) {
	return s.store.Get(ctx, id)
}

// Create requires an image file; the check runs before the store is ever
// touched.
func (s *Service) Create(ctx context.Context, in CreateInput, image *upload.Incoming) (*models.HeroSlide, error) {
	if image == nil {
		return nil, errs.Validation("Image is required")
	}

	url, err := s.uploads.Save(ctx, *image)
	if err != nil {
		return nil, err
	}

	slide := &models.HeroSlide{
		Image:    url,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Order:    in.Order,
	}
	if err := s.store.Insert(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *Service) Update(ctx context.Context, id string, patch models.HeroSlidePatch, image *upload.Incoming) (*models.HeroSlide, error) {
	if image != nil {
		url, err := s.uploads.Save(ctx, *image)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}
	return s.store.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}
