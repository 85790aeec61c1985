package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Observances,
	2: migrationV2ObservanceLookupIndex,
}

// migrationV1Observances creates the observances table.
//
// An observance is a named, yearly recurring date anchored either to the
// lunar calendar (month/day AL) or to the solar calendar. Leap months
// never carry observances, so there is no leap column.
const migrationV1Observances = `
-- Migration 001: observances

CREATE TABLE IF NOT EXISTS observances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    calendar TEXT NOT NULL CHECK (calendar IN ('lunar', 'solar')),
    month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
    description TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2ObservanceLookupIndex speeds up ObservancesOn, which runs
// for every converted day.
const migrationV2ObservanceLookupIndex = `
-- Migration 002: lookup index

CREATE INDEX IF NOT EXISTS idx_observances_date
    ON observances (calendar, month, day);
`
