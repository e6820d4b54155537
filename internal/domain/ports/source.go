package ports

import (
	"context"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// Query describes one search against the content source.
type Query struct {
	Term       string
	Subreddit  string
	Sort       string
	TimeFilter string
	Limit      int
}

// ContentSource defines the interface for the social-content collaborator.
type ContentSource interface {
	// Search returns posts matching the query, in source order.
	Search(ctx context.Context, q Query) ([]entities.Post, error)

	// FetchThread returns the full post body and the fully expanded comment
	// tree for one post.
	FetchThread(ctx context.Context, postID string) (*entities.Thread, error)
}
