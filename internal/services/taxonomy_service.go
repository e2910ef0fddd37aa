package services

import (
	"context"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/models"
)

// TaxonomyService reads the seeded learning-intent catalog.
type TaxonomyService interface {
	List(ctx context.Context) ([]models.TaxonomyEntry, error)
	Get(ctx context.Context, id int64) (*models.TaxonomyEntry, error)
}

type taxonomyService struct {
	db *db.DB
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(database *db.DB) TaxonomyService {
	return &taxonomyService{db: database}
}

func (s *taxonomyService) List(ctx context.Context) ([]models.TaxonomyEntry, error) {
	entries, err := s.db.ListTaxonomy(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *taxonomyService) Get(ctx context.Context, id int64) (*models.TaxonomyEntry, error) {
	entry, err := s.db.GetTaxonomyEntry(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("taxonomy entry", id)
	}
	return entry, nil
}
