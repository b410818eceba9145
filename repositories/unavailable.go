package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-relay/models"
)

// ErrStoreUnavailable is returned by every Unavailable operation.
var ErrStoreUnavailable = errors.New("blog post store unavailable")

// Unavailable stands in for the repository when no Mongo client could be created at startup.
// The HTTP server and jobs still run; every store call fails with ErrStoreUnavailable.
type Unavailable struct {
	Cause error
}

// Err returns ErrStoreUnavailable wrapped with Cause.
func (u Unavailable) Err() error {
	if u.Cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, u.Cause)
}

func (u Unavailable) ExistsByTitle(context.Context, string) (bool, error) { return false, u.Err() }

func (u Unavailable) Insert(context.Context, *models.BlogPost) error { return u.Err() }

func (u Unavailable) FindOldestDraft(context.Context) (*models.BlogPost, error) { return nil, u.Err() }

func (u Unavailable) SetStatus(context.Context, primitive.ObjectID, models.PostStatus) error {
	return u.Err()
}

func (u Unavailable) ListByStatus(context.Context, models.PostStatus) ([]models.BlogPost, error) {
	return nil, u.Err()
}
