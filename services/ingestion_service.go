package services

import (
	"context"
	"fmt"

	"blog-relay/internal/logger"
	"blog-relay/metrics"
	"blog-relay/models"
	"blog-relay/parser"
)

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	Fetched  int
	Inserted int
	Skipped  int
}

// IngestionService copies new feed items into the store as drafts.
type IngestionService struct {
	store     BlogPostStore
	fetcher   FeedFetcher
	extractor parser.ImageExtractor
	log       logger.Logger
}

func NewIngestionService(store BlogPostStore, fetcher FeedFetcher, extractor parser.ImageExtractor, log logger.Logger) *IngestionService {
	if extractor == nil {
		extractor = parser.ImageExtractorFunc(parser.ExtractImageURL)
	}
	if log == nil {
		log = logger.Log
	}
	return &IngestionService{store: store, fetcher: fetcher, extractor: extractor, log: log}
}

func (s *IngestionService) Name() string { return "ingest_feed" }

// Run fetches the feed and inserts every item whose title is not stored yet.
// The first fetch or store error ends the run; items inserted before it stay.
func (s *IngestionService) Run(ctx context.Context) error {
	_, err := s.Ingest(ctx)
	return err
}

// Ingest is Run with the per-run counts.
func (s *IngestionService) Ingest(ctx context.Context) (IngestResult, error) {
	var res IngestResult

	items, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch feed: %w", err)
	}
	res.Fetched = len(items)

	for _, item := range items {
		exists, err := s.store.ExistsByTitle(ctx, item.Title)
		if err != nil {
			return res, err
		}
		if exists {
			s.log.Infof("skipping - post with this title already exists: %s", item.Title)
			res.Skipped++
			metrics.RecordSkipped()
			continue
		}

		categories := make([]string, len(item.Categories))
		copy(categories, item.Categories)

		p := &models.BlogPost{
			Title:       item.Title,
			ImageURL:    s.extractor.ExtractImageURL(item.Content),
			ArticleLink: item.Link,
			PubDate:     item.PublishedAt,
			Categories:  categories,
			Status:      models.StatusDraft,
		}
		if err := s.store.Insert(ctx, p); err != nil {
			return res, err
		}
		res.Inserted++
		metrics.RecordIngested()
		s.log.Infof("post saved as draft: %s", p.Title)
	}

	s.log.Infof("ingestion finished: fetched=%d inserted=%d skipped=%d", res.Fetched, res.Inserted, res.Skipped)
	return res, nil
}
