// Package healthstore describes the health-data store the application reads
// from: sample types, quantities, sample objects, queries, and the Store
// interface implemented by the sqlstore and csvstore backends.
package healthstore

import (
	"context"
	"errors"
)

var (
	// ErrHealthDataUnavailable is returned when the store holds no health
	// data on this device (missing database, missing directory).
	ErrHealthDataUnavailable = errors.New("health data unavailable")

	// ErrAuthorizationDenied is returned when read access to a sample type
	// has been refused.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrUnknownSampleType is returned when an identifier does not name a
	// registered sample type.
	ErrUnknownSampleType = errors.New("unknown sample type")
)

// Store is a health-data store. Authorization is read-only; no write access
// is ever requested through this interface.
type Store interface {
	// IsHealthDataAvailable reports whether the store has health data at all.
	IsHealthDataAvailable(ctx context.Context) bool

	// RequestAuthorization asks for read access to every type in read.
	RequestAuthorization(ctx context.Context, read []SampleType) error

	// Execute runs a sample query. The returned objects are in store order
	// unless q.Sort is set.
	Execute(ctx context.Context, q Query) ([]Object, error)
}
