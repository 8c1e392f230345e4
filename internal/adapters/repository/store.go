// Package repository persists the framework definition and assessment history
// as JSON documents under string keys.
package repository

import "context"

// Keys under which the two collections are stored.
const (
	KeyFramework   = "frameworkDimensions"
	KeyAssessments = "frameworkAssessments"
)

// Store is a minimal key/value persistence port.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases underlying resources.
	Close() error
}
