// Package records persists named collections, each a single JSON array
// document, behind a common Store interface with a filesystem backend
// and a GitHub-hosted backend.
package records

import (
	"context"
	"encoding/json"
	"errors"
)

// Record is one entry of a collection. The store treats entries as
// opaque JSON; callers own the schema.
type Record = json.RawMessage

// Store reads and writes whole collection documents. Partial updates
// are not supported: a write always replaces the full document.
type Store interface {
	// Read fetches the current document. An absent document yields an
	// empty slice, an empty version token and no error. A document that
	// is not a valid JSON array yields an empty slice together with
	// ErrMalformedDocument so callers can decide whether to continue.
	Read(ctx context.Context, collection string) (recs []Record, version string, err error)

	// Write replaces the document with recs. Backends that track
	// versions must be given the token obtained from Read and reject
	// the write with ErrConcurrentModification when it is stale.
	// description is a human-readable note about the change; backends
	// without an audit trail may ignore it.
	Write(ctx context.Context, collection string, recs []Record, version, description string) error
}

// Append performs the read-modify-write cycle: it reads the collection,
// pushes rec onto the end and writes the document back under the version
// token obtained from the read. The updated collection is returned.
//
// A malformed existing document is discarded here: the append rewrites
// the collection as a one-element array. Concurrent modification is
// surfaced to the caller, never retried.
func Append(ctx context.Context, s Store, collection string, rec Record, description string) ([]Record, error) {
	recs, version, err := s.Read(ctx, collection)
	if err != nil && !errors.Is(err, ErrMalformedDocument) {
		return nil, err
	}

	recs = append(recs, rec)
	if err := s.Write(ctx, collection, recs, version, description); err != nil {
		return nil, err
	}
	return recs, nil
}
