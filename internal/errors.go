package internal

import "github.com/cockroachdb/errors"

// Error taxonomy for the request path. Concrete errors are created with
// detail and marked with one of these references, so handlers can
// classify with errors.Is without losing the human-readable message.
var (
	// ErrInvalidRequest: the caller supplied missing or contradictory
	// location input. User-correctable.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound: a postcode could not be resolved against the PLZ
	// table. A lookup miss is an expected outcome, not a fault.
	ErrNotFound = errors.New("not found")

	// ErrProvider: the upstream price source answered ok:false, with a
	// non-2xx status, or with a payload we could not decode. Surfaced
	// verbatim, never retried.
	ErrProvider = errors.New("provider error")

	// ErrEmptyResult: no data points matched the filter. A valid empty
	// state, distinct from a provider failure.
	ErrEmptyResult = errors.New("no matching data")
)
