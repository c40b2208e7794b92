// Package store persists named graph snapshots.
//
// A [Store] keeps [snapshot.Graph] documents under generated ids so they
// can be reloaded, listed, and deleted later. Two backends are provided:
// [FileStore] keeps one JSON file per snapshot for CLI use, and
// [MongoStore] keeps documents in a MongoDB collection for server
// deployments.
//
// Stored snapshots are identified by UUIDs assigned at save time, never
// by name. Names are display labels and may repeat.
package store

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// ErrNotFound is returned when no snapshot exists under the given id.
var ErrNotFound = errors.New("snapshot not found")

// Record describes a stored snapshot without its graph payload.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Vertices  int       `json:"vertices" bson:"vertices"`
	Edges     int       `json:"edges" bson:"edges"`
}

// Entry is a stored snapshot together with its record.
type Entry struct {
	Record `bson:",inline"`
	Graph  snapshot.Graph `json:"graph" bson:"graph"`
}

// Store is the interface for snapshot persistence backends.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a snapshot under a fresh id and returns its record.
	// The snapshot is validated first; the name must pass
	// errors.ValidateSnapshotName.
	Save(ctx context.Context, name string, g snapshot.Graph) (*Record, error)

	// Load retrieves a stored snapshot by id. Returns ErrNotFound if no
	// snapshot exists under id.
	Load(ctx context.Context, id string) (*Entry, error)

	// List returns the records of all stored snapshots, newest first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a stored snapshot. Returns ErrNotFound if no
	// snapshot exists under id.
	Delete(ctx context.Context, id string) error

	// Close releases any backend resources.
	Close() error
}

// newRecord builds the record for a snapshot about to be stored.
// Validation happens here so every backend enforces the same rules.
func newRecord(id, name string, g snapshot.Graph) (*Record, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "snapshot %q", name)
	}
	return &Record{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Vertices:  len(g.Vertices),
		Edges:     len(g.Edges),
	}, nil
}
