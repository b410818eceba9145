// Package servicestest provides an in-memory BlogPostStore for tests.
package servicestest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-relay/models"
)

// MemoryStore keeps posts in insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	posts []models.BlogPost

	// Err makes every operation fail.
	Err error
	// InsertErr makes Insert fail once InsertErrAfter inserts have succeeded.
	InsertErr      error
	InsertErrAfter int
	inserts        int
}

func NewMemoryStore(posts ...models.BlogPost) *MemoryStore {
	s := &MemoryStore{}
	for _, p := range posts {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.posts = append(s.posts, p)
	}
	return s
}

func (s *MemoryStore) ExistsByTitle(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, p := range s.posts {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Insert(_ context.Context, p *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.InsertErr != nil && s.inserts >= s.InsertErrAfter {
		return s.InsertErr
	}
	s.inserts++
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	s.posts = append(s.posts, *p)
	return nil
}

func (s *MemoryStore) FindOldestDraft(context.Context) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var oldest *models.BlogPost
	for i := range s.posts {
		p := s.posts[i]
		if p.Status != models.StatusDraft {
			continue
		}
		if oldest == nil || p.PubDate.Before(oldest.PubDate) {
			oldest = &p
		}
	}
	return oldest, nil
}

func (s *MemoryStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Status = status
		}
	}
	return nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status models.PostStatus) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.BlogPost{}
	for _, p := range s.posts {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// Posts returns a copy of everything stored.
func (s *MemoryStore) Posts() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BlogPost, len(s.posts))
	copy(out, s.posts)
	return out
}

// ByTitle returns the stored post with title, or nil.
func (s *MemoryStore) ByTitle(title string) *models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Title == title {
			p := s.posts[i]
			return &p
		}
	}
	return nil
}
