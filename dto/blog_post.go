package dto

import (
	"time"

	"blog-relay/models"
)

// BlogPostDTO is the wire shape of a post returned by GET /blogs.
// _id is the hex ObjectID; the other keys match the stored document.
type BlogPostDTO struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageURL"`
	ArticleLink string    `json:"articleLink"`
	PubDate     time.Time `json:"pubDate"`
	Categories  []string  `json:"categories"`
	Status      string    `json:"status"`
}

// NewBlogPostDTO constructs BlogPostDTO from models.BlogPost
func NewBlogPostDTO(p models.BlogPost) BlogPostDTO {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return BlogPostDTO{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		ArticleLink: p.ArticleLink,
		PubDate:     p.PubDate,
		Categories:  categories,
		Status:      string(p.Status),
	}
}

// ErrorResponseDTO is the body of every error response.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"Failed to fetch blogs from the database."`
}
