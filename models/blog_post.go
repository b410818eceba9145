package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus is the publication state of a blog post.
// The only transition is draft -> published.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// BlogPost is one ingested feed item.
// Collection: blogposts
type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	ImageURL    string             `bson:"imageURL" json:"imageURL"`
	ArticleLink string             `bson:"articleLink" json:"articleLink"`
	PubDate     time.Time          `bson:"pubDate" json:"pubDate"`
	Categories  []string           `bson:"categories" json:"categories"`
	Status      PostStatus         `bson:"status" json:"status"`
}
