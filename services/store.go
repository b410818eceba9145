package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-relay/feeder"
	"blog-relay/models"
)

// BlogPostStore is the persistence surface shared by the jobs and the read API.
// repositories.BlogPostRepository is the Mongo implementation.
type BlogPostStore interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, p *models.BlogPost) error
	// FindOldestDraft returns nil, nil when there is no draft.
	FindOldestDraft(ctx context.Context) (*models.BlogPost, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PostStatus) error
	ListByStatus(ctx context.Context, status models.PostStatus) ([]models.BlogPost, error)
}

// FeedFetcher returns the current items of the ingested feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]feeder.Item, error)
}
