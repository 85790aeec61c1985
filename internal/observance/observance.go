// Package observance loads named yearly days and matches them against
// converted dates.
package observance

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/database"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type file struct {
	Observances []database.Observance `yaml:"observances"`
}

// Parse decodes an observances YAML document and validates every entry.
// Unknown keys and repeated names are rejected.
func Parse(data []byte) ([]database.Observance, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode observances: %w", err)
	}

	seen := make(map[string]bool, len(f.Observances))
	var errs []error
	for i, o := range f.Observances {
		if err := o.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%q): %w", i+1, o.Name, err))
			continue
		}
		if seen[o.Name] {
			errs = append(errs, fmt.Errorf("entry %d: duplicate name %q", i+1, o.Name))
		}
		seen[o.Name] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if f.Observances == nil {
		f.Observances = []database.Observance{}
	}
	return f.Observances, nil
}

// LoadFile reads and parses an observances YAML file.
func LoadFile(path string) ([]database.Observance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read observances: %w", err)
	}
	observances, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return observances, nil
}

// Defaults returns the built-in Vietnamese observances.
func Defaults() []database.Observance {
	observances, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("observance: embedded defaults: %v", err))
	}
	return observances
}

// Store is the read side of the observance table.
type Store interface {
	ObservancesOn(ctx context.Context, kind database.CalendarKind, month, day int) ([]database.Observance, error)
}

// Service matches days against stored observances.
type Service struct {
	store Store
	conv  *calendar.Converter
}

// NewService creates a Service that resolves lunar dates with conv.
func NewService(store Store, conv *calendar.Converter) *Service {
	return &Service{store: store, conv: conv}
}

// ForDate returns the observances that fall on day: lunar ones first,
// then solar ones. Days inside a leap month carry no lunar observances.
func (s *Service) ForDate(ctx context.Context, day calendar.GregorianDay) ([]database.Observance, error) {
	lunar, err := s.conv.ToLunar(day)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", day, err)
	}

	matches := []database.Observance{}
	if !lunar.Leap() {
		found, err := s.store.ObservancesOn(ctx, database.CalendarLunar, lunar.Month(), lunar.Day())
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}

	found, err := s.store.ObservancesOn(ctx, database.CalendarSolar, day.Month(), day.Day())
	if err != nil {
		return nil, err
	}
	return append(matches, found...), nil
}
