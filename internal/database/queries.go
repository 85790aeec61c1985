package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const observanceColumns = `id, name, calendar, month, day, description, created_at`

const insertObservance = `
	INSERT INTO observances (name, calendar, month, day, description)
	VALUES (:name, :calendar, :month, :day, :description)
`

// =============================================================================
// Observance Queries
// =============================================================================

// CreateObservance validates and inserts o, filling in ID and CreatedAt.
// Returns ErrDuplicate if an observance with the same name exists.
func (db *DB) CreateObservance(ctx context.Context, o *Observance) error {
	if err := o.Validate(); err != nil {
		return err
	}

	res, err := db.NamedExecContext(ctx, insertObservance, o)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: observance %q", ErrDuplicate, o.Name)
		}
		return fmt.Errorf("insert observance: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get observance id: %w", err)
	}

	created, err := db.GetObservance(ctx, id)
	if err != nil {
		return err
	}
	*o = *created
	return nil
}

// GetObservance retrieves one observance by ID.
// Returns ErrNotFound if no row matches.
func (db *DB) GetObservance(ctx context.Context, id int64) (*Observance, error) {
	var o Observance
	err := db.GetContext(ctx, &o, `SELECT `+observanceColumns+` FROM observances WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query observance %d: %w", id, err)
	}
	return &o, nil
}

// ListObservances returns every observance ordered by calendar, month, day.
func (db *DB) ListObservances(ctx context.Context) ([]Observance, error) {
	observances := []Observance{}
	err := db.SelectContext(ctx, &observances, `
		SELECT `+observanceColumns+`
		FROM observances
		ORDER BY calendar, month, day, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list observances: %w", err)
	}
	return observances, nil
}

// ObservancesOn returns the observances that fall on month/day of the
// given calendar.
func (db *DB) ObservancesOn(ctx context.Context, kind CalendarKind, month, day int) ([]Observance, error) {
	observances := []Observance{}
	err := db.SelectContext(ctx, &observances, `
		SELECT `+observanceColumns+`
		FROM observances
		WHERE calendar = ? AND month = ? AND day = ?
		ORDER BY name
	`, kind, month, day)
	if err != nil {
		return nil, fmt.Errorf("query observances on %s %d/%d: %w", kind, day, month, err)
	}
	return observances, nil
}

// DeleteObservance removes one observance.
// Returns ErrNotFound if no row matches.
func (db *DB) DeleteObservance(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM observances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete observance %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete observance %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceObservances swaps the whole table for observances in a single
// transaction. Nothing changes if any row fails validation or insertion.
func (db *DB) ReplaceObservances(ctx context.Context, observances []Observance) (int, error) {
	for i := range observances {
		if err := observances[i].Validate(); err != nil {
			return 0, fmt.Errorf("observance %d (%q): %w", i, observances[i].Name, err)
		}
	}

	err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM observances`); err != nil {
			return fmt.Errorf("clear observances: %w", err)
		}
		for i := range observances {
			if _, err := tx.NamedExecContext(ctx, insertObservance, &observances[i]); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: observance %q", ErrDuplicate, observances[i].Name)
				}
				return fmt.Errorf("insert observance %q: %w", observances[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("observances replaced", "count", len(observances))
	return len(observances), nil
}
