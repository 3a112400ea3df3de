/*
Package sqlite persists computed holiday tables and the rule catalog.

PURPOSE:
  The engine itself is pure computation; this store is the optional
  persistence layer behind the API. It keeps two kinds of data:

  1. Snapshots: a computed holiday table for a span, saved as an
     immutable record. Snapshots are append-only — a table built by the
     engine is never edited, matching the engine's immutable-table
     lifecycle. Recomputing a span produces a NEW snapshot.

  2. Rule audit: every rule version of the catalog, written once at
     startup. This makes the Act's amendment history queryable with
     plain SQL, the reviewable data table the engine promises.

KEY TABLES:
  snapshots:          one row per computed span
  snapshot_holidays:  the date → name entries of each snapshot
  rule_versions:      the catalog's amendment rows

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block and crash recovery is cleaner. Use ":memory:" in tests.

SEE ALSO:
  - jholiday/catalog.go: Source of the rule_versions rows
  - api/handlers.go:     Snapshot endpoints
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/koyomi/holiday-engine/jholiday"
)

// Store persists holiday snapshots and the rule audit table.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and migrates
// the schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Snapshots (append-only: computed tables are immutable)
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		min_date TEXT NOT NULL,
		max_date TEXT NOT NULL,
		holiday_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_holidays (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshot_holidays_date
		ON snapshot_holidays(date);

	-- Rule audit: the catalog's amendment rows, queryable with SQL
	CREATE TABLE IF NOT EXISTS rule_versions (
		identity TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		month INTEGER,
		day INTEGER,
		weekday INTEGER,
		ordinal INTEGER,
		season TEXT,
		effective_from TEXT NOT NULL,
		effective_until TEXT,
		PRIMARY KEY (identity, effective_from)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// SnapshotRecord describes one persisted holiday table.
type SnapshotRecord struct {
	ID           string
	MinDate      jholiday.Date
	MaxDate      jholiday.Date
	HolidayCount int
	CreatedAt    time.Time
}

// SaveSnapshot persists a computed table under the given id. The write
// is atomic: either the record and every entry land, or nothing does.
func (s *Store) SaveSnapshot(ctx context.Context, id string, span jholiday.Span, table jholiday.HolidayTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, min_date, max_date, holiday_count, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, span.Min.String(), span.Max.String(), len(table),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_holidays (snapshot_id, date, name) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range table.Sorted() {
		if _, err := stmt.ExecContext(ctx, id, h.Date.String(), h.Name); err != nil {
			return fmt.Errorf("failed to insert holiday %s: %w", h.Date, err)
		}
	}
	return tx.Commit()
}

// GetSnapshot returns one snapshot record, or nil if it does not exist.
func (s *Store) GetSnapshot(ctx context.Context, id string) (*SnapshotRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, min_date, max_date, holiday_count, created_at
		FROM snapshots WHERE id = ?`, id)
	rec, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSnapshots returns all snapshot records, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, min_date, max_date, holiday_count, created_at
		FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		rec, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadHolidays returns a snapshot's holiday entries in date order.
func (s *Store) LoadHolidays(ctx context.Context, snapshotID string) ([]jholiday.Holiday, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, name FROM snapshot_holidays
		WHERE snapshot_id = ? ORDER BY date`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []jholiday.Holiday
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			return nil, err
		}
		d, err := parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, jholiday.Holiday{Date: d, Name: name})
	}
	return holidays, rows.Err()
}

func scanSnapshot(scan func(...any) error) (SnapshotRecord, error) {
	var rec SnapshotRecord
	var minStr, maxStr, createdStr string
	if err := scan(&rec.ID, &minStr, &maxStr, &rec.HolidayCount, &createdStr); err != nil {
		return SnapshotRecord{}, err
	}
	var err error
	if rec.MinDate, err = parseDate(minStr); err != nil {
		return SnapshotRecord{}, err
	}
	if rec.MaxDate, err = parseDate(maxStr); err != nil {
		return SnapshotRecord{}, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return rec, nil
}

// =============================================================================
// RULE AUDIT
// =============================================================================

// SaveRuleVersions writes the catalog's amendment rows, replacing any
// previous audit dump. Idempotent across restarts.
func (s *Store) SaveRuleVersions(ctx context.Context, rules []jholiday.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rule_versions`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rule_versions
			(identity, name, kind, month, day, weekday, ordinal, season, effective_from, effective_until)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rules {
		var until any
		if !r.Until.IsZero() {
			until = r.Until.String()
		}
		var season any
		if r.Kind == jholiday.KindEquinox {
			season = r.Season.String()
		}
		_, err := stmt.ExecContext(ctx,
			r.Identity, r.Name, r.Kind.String(),
			int(r.Month), r.Day, int(r.Weekday), r.Ordinal, season,
			r.From.String(), until,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rule %s/%s: %w", r.Identity, r.From, err)
		}
	}
	return tx.Commit()
}

// ListRuleVersions returns the audit rows in amendment order, rebuilt
// as engine rules.
func (s *Store) ListRuleVersions(ctx context.Context) ([]jholiday.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identity, name, kind, month, day, weekday, ordinal, season, effective_from, effective_until
		FROM rule_versions ORDER BY effective_from, identity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []jholiday.Rule
	for rows.Next() {
		var r jholiday.Rule
		var kind string
		var month, weekday int
		var season, until sql.NullString
		var fromStr string
		if err := rows.Scan(&r.Identity, &r.Name, &kind, &month, &r.Day,
			&weekday, &r.Ordinal, &season, &fromStr, &until); err != nil {
			return nil, err
		}
		r.Month = time.Month(month)
		r.Weekday = time.Weekday(weekday)
		switch kind {
		case "fixed":
			r.Kind = jholiday.KindFixed
		case "nth_weekday":
			r.Kind = jholiday.KindNthWeekday
		case "equinox":
			r.Kind = jholiday.KindEquinox
		default:
			return nil, fmt.Errorf("unknown rule kind %q for %s", kind, r.Identity)
		}
		if season.Valid && season.String == "autumnal" {
			r.Season = jholiday.Autumnal
		}
		if r.From, err = parseDate(fromStr); err != nil {
			return nil, err
		}
		if until.Valid {
			if r.Until, err = parseDate(until.String); err != nil {
				return nil, err
			}
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// CountRuleVersions returns the number of audit rows.
func (s *Store) CountRuleVersions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rule_versions`).Scan(&n)
	return n, err
}

func parseDate(s string) (jholiday.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return jholiday.Date{}, fmt.Errorf("malformed date %q: %w", s, err)
	}
	return jholiday.DateOf(t), nil
}
