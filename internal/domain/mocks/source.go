package mocks

import (
	"context"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
)

// ContentSource is a mock implementation of ports.ContentSource.
type ContentSource struct {
	// Search return values
	Posts     []entities.Post
	SearchErr error

	// FetchThread return values, keyed by post ID
	Threads   map[string]*entities.Thread
	ThreadErr map[string]error

	SearchCalls int
	FetchCalls  []string
}

// Search returns the configured posts or error.
func (m *ContentSource) Search(ctx context.Context, q ports.Query) ([]entities.Post, error) {
	m.SearchCalls++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Posts, nil
}

// FetchThread returns the configured thread or error for the given post ID.
func (m *ContentSource) FetchThread(ctx context.Context, postID string) (*entities.Thread, error) {
	m.FetchCalls = append(m.FetchCalls, postID)
	if err, ok := m.ThreadErr[postID]; ok {
		return nil, err
	}
	return m.Threads[postID], nil
}
