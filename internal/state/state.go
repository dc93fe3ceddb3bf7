// Package state holds the entry list shared between load goroutines and the
// readers that present it.
package state

import (
	"sync"
	"time"

	"github.com/luki/wristtemp/internal/temperature"
)

// Ticket identifies one load request. Later requests get larger tickets.
type Ticket uint64

// Snapshot is a consistent copy of the holder's state.
type Snapshot struct {
	Entries  []temperature.Entry
	Min      float64
	Max      float64
	Ticket   Ticket
	LoadedAt time.Time
}

// Holder owns the current entry list. The list is only ever replaced as a
// whole.
type Holder struct {
	mu       sync.Mutex
	next     Ticket
	applied  Ticket
	entries  []temperature.Entry
	loadedAt time.Time
	now      func() time.Time
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{now: time.Now}
}

// Begin reserves the ticket for a new load.
func (h *Holder) Begin() Ticket {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	return h.next
}

// Apply replaces the list with entries from the load identified by t. It
// returns false, leaving the list untouched, when a newer load has already
// been applied.
func (h *Holder) Apply(t Ticket, entries []temperature.Entry) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t <= h.applied {
		return false
	}
	h.applied = t
	h.entries = entries
	h.loadedAt = h.now()
	return true
}

// Snapshot returns the current list with its axis range.
func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	entries := h.entries
	s := Snapshot{Ticket: h.applied, LoadedAt: h.loadedAt}
	h.mu.Unlock()

	s.Entries = make([]temperature.Entry, len(entries))
	copy(s.Entries, entries)
	s.Min, s.Max = temperature.Range(s.Entries)
	return s
}
