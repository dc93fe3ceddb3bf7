// Package loader runs the authorize-then-fetch pipeline against a health
// store and turns the result into temperature entries.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/luki/wristtemp/internal/healthstore"
	"github.com/luki/wristtemp/internal/temperature"
)

// Loader reads one sample type from a store.
type Loader struct {
	store      healthstore.Store
	sampleType healthstore.SampleType
	logger     *zap.Logger
}

// New returns a loader for sampleType.
func New(store healthstore.Store, sampleType healthstore.SampleType, logger *zap.Logger) *Loader {
	return &Loader{
		store:      store,
		sampleType: sampleType,
		logger:     logger.With(zap.String("sample_type", sampleType.ID)),
	}
}

// Authorize requests read-only access to the loader's sample type.
func (l *Loader) Authorize(ctx context.Context) error {
	if !l.store.IsHealthDataAvailable(ctx) {
		return healthstore.ErrHealthDataUnavailable
	}
	if err := l.store.RequestAuthorization(ctx, []healthstore.SampleType{l.sampleType}); err != nil {
		return fmt.Errorf("request authorization: %w", err)
	}
	return nil
}

// Fetch runs one unfiltered, unsorted, unlimited query and maps every
// sample to an entry in the order the store returned them.
func (l *Loader) Fetch(ctx context.Context) ([]temperature.Entry, error) {
	objects, err := l.store.Execute(ctx, healthstore.Query{
		Type:  l.sampleType,
		Limit: healthstore.NoLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	entries, err := temperature.FromSamples(objects)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Load authorizes and, only on success, fetches. Failures are logged here;
// callers keep whatever they were showing.
func (l *Loader) Load(ctx context.Context) ([]temperature.Entry, error) {
	if err := l.Authorize(ctx); err != nil {
		l.logFailure("authorization failed", err)
		return nil, err
	}
	entries, err := l.Fetch(ctx)
	if err != nil {
		l.logFailure("fetch failed", err)
		return nil, err
	}
	l.logger.Debug("fetched entries", zap.Int("count", len(entries)))
	return entries, nil
}

func (l *Loader) logFailure(msg string, err error) {
	l.logger.Warn(msg, zap.String("reason", Reason(err)), zap.Error(err))
}

// Reason classifies a load error for logs and the status line.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, healthstore.ErrHealthDataUnavailable):
		return "unavailable"
	case errors.Is(err, healthstore.ErrAuthorizationDenied):
		return "denied"
	case errors.Is(err, temperature.ErrUnexpectedSample):
		return "unexpected result"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "query error"
	}
}
