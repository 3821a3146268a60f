package project

import (
	"context"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
	"github.com/terravista/estate-core/internal/pkg/errs"
)

// Store is the persistence contract for projects.
type Store interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Insert(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store   Store
	uploads *upload.Storage
}

func NewService(store Store, uploads *upload.Storage) *Service {
	return &Service{store: store, uploads: uploads}
}

func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.Get(ctx, id)
}

// Create validates the input, stores any attached files, and persists the
// record. Validation runs before any file write so a rejected request
// leaves nothing behind.
func (s *Service) Create(ctx context.Context, in CreateInput, files []upload.Incoming) (*models.Project, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	urls, err := s.uploads.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ProjectStatusOngoing
	}
	p := &models.Project{
		Name:        in.Name,
		Size:        in.Size,
		Location:    in.Location,
		Price:       in.Price,
		Facing:      in.Facing,
		Status:      status,
		Description: in.Description,
		Image:       urls["image"],
		Brochure:    urls["brochure"],
	}
	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial patch. A freshly uploaded file replaces the
// stored path; otherwise the existing path is kept. Returns nil when the
// id is unknown.
func (s *Service) Update(ctx context.Context, id string, patch models.ProjectPatch, files []upload.Incoming) (*models.Project, error) {
	if patch.Status != nil && !models.ValidProjectStatus(*patch.Status) {
		return nil, errs.Validation("Status must be one of ongoing, upcoming, completed")
	}

	urls, err := s.uploads.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}
	if u, ok := urls["image"]; ok {
		patch.Image = &u
	}
	if u, ok := urls["brochure"]; ok {
		patch.Brochure = &u
	}

	return s.store.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

func validateCreate(in CreateInput) error {
	switch {
	case in.Name == "":
		return errs.Validation("Project name is required")
	case in.Size == "":
		return errs.Validation("Project size is required")
	case in.Location == "":
		return errs.Validation("Location is required")
	case in.Price == "":
		return errs.Validation("Price is required")
	case in.Facing == "":
		return errs.Validation("Facing direction is required")
	}
	if in.Status != "" && !models.ValidProjectStatus(in.Status) {
		return errs.Validation("Status must be one of ongoing, upcoming, completed")
	}
	return nil
}
