package healthstore

import (
	"sort"
	"time"
)

// NoLimit asks for every matching sample.
const NoLimit = 0

// Predicate restricts a query to samples starting within [From, To).
// A zero bound is open.
type Predicate struct {
	From time.Time
	To   time.Time
}

// Match reports whether o starts inside the window.
func (p *Predicate) Match(o Object) bool {
	if p == nil {
		return true
	}
	start := o.StartDate()
	if !p.From.IsZero() && start.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && !start.Before(p.To) {
		return false
	}
	return true
}

// SortKey names the field a SortDescriptor orders by.
type SortKey string

const (
	SortByStartDate SortKey = "start_date"
	SortByEndDate   SortKey = "end_date"
)

// SortDescriptor orders query results.
type SortDescriptor struct {
	Key       SortKey
	Ascending bool
}

// Query selects samples of one type.
type Query struct {
	Type      SampleType
	Predicate *Predicate
	Limit     int
	Sort      []SortDescriptor
}

// Apply filters, sorts and limits objects in memory. Backends that cannot
// push the query down use it after loading.
func (q Query) Apply(objects []Object) []Object {
	out := make([]Object, 0, len(objects))
	for _, o := range objects {
		if o.SampleType().ID != q.Type.ID {
			continue
		}
		if !q.Predicate.Match(o) {
			continue
		}
		out = append(out, o)
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, d := range q.Sort {
				a, b := d.value(out[i]), d.value(out[j])
				if a.Equal(b) {
					continue
				}
				if d.Ascending {
					return a.Before(b)
				}
				return a.After(b)
			}
			return false
		})
	}

	if q.Limit > NoLimit && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (d SortDescriptor) value(o Object) time.Time {
	if d.Key == SortByEndDate {
		return o.EndDate()
	}
	return o.StartDate()
}
