package worker

import (
	"context"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
	"github.com/focuslearner/backend/internal/videos"
)

// DiscoverVideosJob refreshes the cached video catalog for one subject: it
// queries the discovery client, drops distraction content through the keyword
// filter and upserts the survivors.
type DiscoverVideosJob struct {
	DB          *db.DB
	VideoClient videos.ClientInterface
	Subject     string
	MaxResults  int
}

func (j *DiscoverVideosJob) Name() string { return "discover_videos" }

func (j *DiscoverVideosJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("subject", j.Subject)
	log.Info("starting video discovery")

	found, err := j.VideoClient.Search(ctx, j.Subject+" tutorial", j.MaxResults)
	if err != nil {
		log.Error("video search failed: %v", err)
		return err
	}
	log.Debug("discovery returned %d candidates", len(found))

	items := make([]models.ContentItem, 0, len(found))
	kept := 0
	for _, v := range found {
		filtered, reason := videos.Classify(v.Title, v.Description)
		if !filtered {
			kept++
		}
		items = append(items, models.ContentItem{
			Title:        v.Title,
			Description:  v.Description,
			Source:       "youtube",
			SourceID:     v.VideoID,
			URL:          v.URL,
			Subject:      j.Subject,
			IsApproved:   !filtered,
			IsFiltered:   filtered,
			FilterReason: reason,
		})
	}

	if err := j.DB.UpsertContentItems(ctx, items); err != nil {
		log.Error("failed to cache discovered videos: %v", err)
		return err
	}

	log.Info("video discovery complete: %d cached, %d filtered", kept, len(items)-kept)
	return nil
}
