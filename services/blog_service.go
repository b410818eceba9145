package services

import (
	"context"

	"blog-relay/dto"
	"blog-relay/models"
)

// BlogService serves published posts to the read API.
type BlogService struct {
	store BlogPostStore
}

func NewBlogService(store BlogPostStore) *BlogService {
	return &BlogService{store: store}
}

// ListPublished returns every published post. Drafts are never included.
func (s *BlogService) ListPublished(ctx context.Context) ([]dto.BlogPostDTO, error) {
	items, err := s.store.ListByStatus(ctx, models.StatusPublished)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BlogPostDTO, 0, len(items))
	for _, p := range items {
		if p.Status != models.StatusPublished {
			continue
		}
		out = append(out, dto.NewBlogPostDTO(p))
	}
	return out, nil
}
