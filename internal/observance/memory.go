package observance

import (
	"context"

	"github.com/zapponejosh/amlich/internal/database"
)

// MemoryStore serves a fixed list of observances without a database.
type MemoryStore struct {
	observances []database.Observance
}

// NewMemoryStore wraps observances in a Store.
func NewMemoryStore(observances []database.Observance) *MemoryStore {
	return &MemoryStore{observances: observances}
}

// ObservancesOn returns the entries of kind that fall on month/day.
func (m *MemoryStore) ObservancesOn(_ context.Context, kind database.CalendarKind, month, day int) ([]database.Observance, error) {
	var out []database.Observance
	for _, o := range m.observances {
		if o.Calendar == kind && o.Month == month && o.Day == day {
			out = append(out, o)
		}
	}
	return out, nil
}
