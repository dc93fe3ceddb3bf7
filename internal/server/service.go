// Package server exposes the viewer's state as JSON over HTTP.
package server

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/luki/wristtemp/internal/state"
	"github.com/luki/wristtemp/internal/temperature"
)

// Source produces a complete entry list.
type Source interface {
	Load(ctx context.Context) ([]temperature.Entry, error)
}

// Service runs loads in the background and applies their results to a
// shared holder.
type Service struct {
	ctx    context.Context
	source Source
	holder *state.Holder
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewService returns a service whose loads run under ctx.
func NewService(ctx context.Context, source Source, holder *state.Holder, logger *zap.Logger) *Service {
	return &Service{ctx: ctx, source: source, holder: holder, logger: logger}
}

// Refresh starts an authorize+fetch and returns its ticket immediately.
func (s *Service) Refresh() state.Ticket {
	ticket := s.holder.Begin()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		entries, err := s.source.Load(s.ctx)
		if err != nil {
			return
		}
		if !s.holder.Apply(ticket, entries) {
			s.logger.Debug("dropping stale load", zap.Uint64("ticket", uint64(ticket)))
		}
	}()
	return ticket
}

// Snapshot returns the current state.
func (s *Service) Snapshot() state.Snapshot {
	return s.holder.Snapshot()
}

// Wait blocks until every started load has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
