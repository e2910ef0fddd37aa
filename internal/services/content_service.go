package services

import (
	"context"
	goerrors "errors"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
	"github.com/focuslearner/backend/internal/videos"
	"github.com/focuslearner/backend/internal/worker"
)

// ContentService serves the cached video catalog and triggers background
// refreshes. Serving never calls the discovery provider directly.
type ContentService interface {
	Videos(ctx context.Context, subject string, limit int) ([]models.ContentItem, error)
	Refresh(ctx context.Context, subject string) error
}

type contentService struct {
	db          *db.DB
	pool        *worker.Pool
	videoClient videos.ClientInterface
	maxResults  int
}

// NewContentService creates a new ContentService backed by the discovery
// worker pool.
func NewContentService(database *db.DB, pool *worker.Pool, videoClient videos.ClientInterface, maxResults int) ContentService {
	return &contentService{
		db:          database,
		pool:        pool,
		videoClient: videoClient,
		maxResults:  maxResults,
	}
}

func (s *contentService) Videos(ctx context.Context, subject string, limit int) ([]models.ContentItem, error) {
	if subject == "" {
		return nil, errors.NewValidationError("subject", "must not be empty")
	}
	items, err := s.db.ListContentItems(ctx, subject, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return items, nil
}

func (s *contentService) Refresh(ctx context.Context, subject string) error {
	log := logger.FromContext(ctx)

	if subject == "" {
		return errors.NewValidationError("subject", "must not be empty")
	}

	job := &worker.DiscoverVideosJob{
		DB:          s.db,
		VideoClient: s.videoClient,
		Subject:     subject,
		MaxResults:  s.maxResults,
	}
	if !s.pool.TrySubmit(job) {
		return errors.NewConflictError("discovery queue", goerrors.New("queue full"))
	}

	log.Info("video discovery queued: subject=%s", subject)
	return nil
}
