package services

import (
	"context"

	"blog-relay/internal/logger"
	"blog-relay/metrics"
	"blog-relay/models"
)

// PublicationService promotes drafts to published, one per run.
type PublicationService struct {
	store BlogPostStore
	log   logger.Logger
}

func NewPublicationService(store BlogPostStore, log logger.Logger) *PublicationService {
	if log == nil {
		log = logger.Log
	}
	return &PublicationService{store: store, log: log}
}

func (s *PublicationService) Name() string { return "publish_draft" }

func (s *PublicationService) Run(ctx context.Context) error {
	_, err := s.PublishOldest(ctx)
	return err
}

// PublishOldest flips the draft with the smallest pubDate to published and returns it.
// It returns nil, nil when there is no draft.
func (s *PublicationService) PublishOldest(ctx context.Context) (*models.BlogPost, error) {
	draft, err := s.store.FindOldestDraft(ctx)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		s.log.Debug("no draft to publish")
		return nil, nil
	}

	if err := s.store.SetStatus(ctx, draft.ID, models.StatusPublished); err != nil {
		return nil, err
	}
	draft.Status = models.StatusPublished
	metrics.RecordPublished()
	s.log.Infof("blog post %q is now published", draft.Title)
	return draft, nil
}
