package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-relay/models"
)

type BlogPostRepository struct {
	col *mongo.Collection
}

func NewBlogPostRepository(col *mongo.Collection) *BlogPostRepository {
	return &BlogPostRepository{col: col}
}

// ExistsByTitle reports whether any post already carries title.
func (r *BlogPostRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"title": title}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find post by title: %w", err)
	}
	return true, nil
}

// Insert stores p and sets p.ID from the generated identifier.
// An empty status is stored as draft.
func (r *BlogPostRepository) Insert(ctx context.Context, p *models.BlogPost) error {
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// FindOldestDraft returns the draft with the smallest pubDate, or nil when there is none.
func (r *BlogPostRepository) FindOldestDraft(ctx context.Context) (*models.BlogPost, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "pubDate", Value: 1}})

	var p models.BlogPost
	err := r.col.FindOne(ctx, bson.M{"status": models.StatusDraft}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find oldest draft: %w", err)
	}
	return &p, nil
}

// SetStatus updates the status of the post with the given id.
func (r *BlogPostRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PostStatus) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return fmt.Errorf("update post status: %w", err)
	}
	return nil
}

// ListByStatus returns every post in status, in the store's natural order.
func (r *BlogPostRepository) ListByStatus(ctx context.Context, status models.PostStatus) ([]models.BlogPost, error) {
	cur, err := r.col.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("find posts by status: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.BlogPost{}
	for cur.Next(ctx) {
		var p models.BlogPost
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return results, nil
}
