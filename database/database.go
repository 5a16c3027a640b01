package database

import (
	"context"
)

// Hit is a single raw search result from the backend.
type Hit struct {
	ID     string
	Type   string
	Source map[string]interface{}
}

// SearchBackend defines the document-search service holding the
// authoritative configuration state. Errors it returns pass through to
// callers unchanged; there are no retries at this layer.
type SearchBackend interface {
	IndexExists(ctx context.Context, index string) (bool, error)
	// CreateIndex creates the index, returning nil when it already exists.
	CreateIndex(ctx context.Context, index string) error

	UpsertDocument(ctx context.Context, index, id, docType string, body map[string]interface{}) error
	DeleteDocument(ctx context.Context, index, id, docType string) error

	// SearchByField returns every document in index whose field equals
	// value, up to limit hits.
	SearchByField(ctx context.Context, index, field, value string, limit int) ([]Hit, error)
}
