package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hassannetsec/doctors-friend/internal/observability/metrics"
	"github.com/hassannetsec/doctors-friend/internal/records"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Gateway is the validating front door over the record store for the
// sign-in and appointment collections. It validates presence of
// required fields, appends, and reports every store failure as a single
// PersistenceFailed error. Nothing is retried.
type Gateway struct {
	store   records.Store
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewGateway creates a gateway over store. metrics may be nil.
func NewGateway(store records.Store, m *metrics.BookingMetrics, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{store: store, metrics: m, logger: logger}
}

// Submit validates candidate and appends it to collection, returning
// the full updated collection. The raw candidate bytes are stored as
// received, so fields beyond the validated ones survive.
func (g *Gateway) Submit(ctx context.Context, collection string, candidate json.RawMessage) ([]records.Record, error) {
	description, err := validateCandidate(collection, candidate)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	updated, err := records.Append(ctx, g.store, collection, records.Record(candidate), description)
	g.metrics.ObserveWriteLatency(collection, time.Since(start).Seconds())
	if err != nil {
		g.metrics.ObserveAppend(collection, "error")
		g.logger.Error("record append failed", "collection", collection, "error", err)
		return nil, fmt.Errorf("registration: %w: %v", ErrPersistenceFailed, storeFailureReason(err))
	}

	g.metrics.ObserveAppend(collection, "ok")
	g.logger.Info("record appended", "collection", collection, "size", len(updated))
	return updated, nil
}

// List returns the current collection. An absent document is an empty
// collection, and a malformed one degrades to empty as well; only a
// transport failure is an error. This is the fallback contract the
// admin view depends on.
func (g *Gateway) List(ctx context.Context, collection string) ([]records.Record, error) {
	if !KnownCollection(collection) {
		return nil, ErrUnknownCollection
	}
	recs, _, err := g.store.Read(ctx, collection)
	if err != nil {
		if errors.Is(err, records.ErrMalformedDocument) {
			return []records.Record{}, nil
		}
		g.logger.Error("record list failed", "collection", collection, "error", err)
		return nil, fmt.Errorf("registration: %w: %v", ErrPersistenceFailed, storeFailureReason(err))
	}
	if recs == nil {
		recs = []records.Record{}
	}
	return recs, nil
}

// storeFailureReason reduces a store error chain to the short
// user-facing diagnostic; internal details stay in the logs.
func storeFailureReason(err error) string {
	switch {
	case errors.Is(err, records.ErrConcurrentModification):
		return "the collection was modified by another writer"
	case errors.Is(err, records.ErrMalformedDocument):
		return "the stored collection could not be parsed"
	default:
		return "the record store is unavailable"
	}
}
