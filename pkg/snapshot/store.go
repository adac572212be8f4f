// Package snapshot persists named document snapshots.
//
// A snapshot is the serialized JSON form of a document stored under a
// user-chosen name. The Store interface works in raw bytes so backends stay
// interchangeable: local files for CLI usage, in-memory for tests, Redis for
// shared short-lived sessions, MongoDB for durable multi-user storage.
//
// Save and Load wrap a Store with document serialization and emit timing
// events through the observability hooks.
package snapshot

import (
	"context"
	"time"

	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/observability"
)

// Store is the backend-agnostic snapshot storage contract.
type Store interface {
	// Get retrieves a snapshot by name. The boolean reports existence;
	// a missing snapshot is not an error.
	Get(ctx context.Context, name string) ([]byte, bool, error)

	// Set stores a snapshot under the given name, replacing any previous
	// snapshot of that name.
	Set(ctx context.Context, name string, data []byte) error

	// List returns all snapshot names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a snapshot. Deleting a missing name is a no-op.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// Save serializes the document and stores it under name.
func Save(ctx context.Context, store Store, name string, doc *document.Document) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot name must not be empty")
	}
	data, err := document.MarshalDocument(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot %q", name)
	}

	start := time.Now()
	if err := store.Set(ctx, name, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store snapshot %q", name)
	}
	observability.Snapshot().OnSave(ctx, name, len(data), time.Since(start))
	return nil
}

// Load retrieves and deserializes the named snapshot.
// Returns SNAPSHOT_NOT_FOUND if no snapshot with that name exists.
func Load(ctx context.Context, store Store, name string) (*document.Document, error) {
	start := time.Now()
	data, ok, err := store.Get(ctx, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load snapshot %q", name)
	}
	observability.Snapshot().OnLoad(ctx, name, ok, time.Since(start))
	if !ok {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "no snapshot named %q", name)
	}

	doc, err := document.UnmarshalDocument(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode snapshot %q", name)
	}
	return doc, nil
}
