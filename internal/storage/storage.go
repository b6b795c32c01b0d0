package storage

import (
	"context"
	"io"
)

// Storage defines the interface for the document/blob store collaborator.
// The core only ever keeps the reference string returned by Save.
type Storage interface {
	// Save stores a file and returns a stable reference for it
	Save(ctx context.Context, path string, reader io.Reader, contentType string) (string, error)

	// Get retrieves a file by its reference
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration
type Config struct {
	BasePath string // Root directory for local storage
	BaseURL  string // Public URL base
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	return NewLocalStorage(cfg)
}
