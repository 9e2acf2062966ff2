// Package store persists computed layouts so they can be fetched again by
// id.
//
// Backends:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: JSON files under the user's config directory, for the CLI
//   - [MongoStore]: MongoDB, for API deployments with several replicas
//
// Every backend assigns an id and creation time on first save.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/matzehuels/gridspace/pkg/scene"
)

// ErrNotFound is returned when no layout has the requested id.
var ErrNotFound = errors.New("layout not found")

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores l, assigning l.ID and l.CreatedAt when they are unset.
	// Saving an existing id replaces the stored layout.
	Save(ctx context.Context, l *scene.Layout) error

	// Get returns the layout with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*scene.Layout, error)

	// Delete removes a layout. It returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// List returns up to limit layouts, newest first. A limit of zero or
	// less means no limit.
	List(ctx context.Context, limit int) ([]*scene.Layout, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID creates a random layout id of 32 hex characters.
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// stamp fills in the id and creation time of a layout about to be saved.
func stamp(l *scene.Layout) error {
	if l.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		l.ID = id
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}
