package records

import "errors"

var (
	// ErrStoreUnavailable is returned when the backing file or transport
	// cannot be reached or answers with a non-recoverable status.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrMalformedDocument is returned when the stored content is not a
	// valid JSON array. Read paths degrade to an empty collection; the
	// bad content is only replaced by an explicit append.
	ErrMalformedDocument = errors.New("stored document is not a valid JSON array")

	// ErrConcurrentModification is returned when the version token passed
	// to a write no longer matches the document. Never retried here.
	ErrConcurrentModification = errors.New("document changed since it was read")
)
