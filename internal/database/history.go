package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the ledger file inside the data directory.
const FileName = "reportcard.db"

// ErrNotFound is returned when a ledger entry does not exist.
var ErrNotFound = errors.New("history entry not found")

// HistoryDB is the ledger of generated documents.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the ledger in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s: %w", dbPath, ErrNotFound)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; batch workers share this one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per written document. students holds a JSON array of
	-- register numbers (or names for students without one); names holds
	-- the matching student names.
	CREATE TABLE IF NOT EXISTS generated_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		format TEXT NOT NULL,
		path TEXT,
		students TEXT NOT NULL,
		names TEXT NOT NULL DEFAULT '[]',
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_kind ON generated_reports(kind);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON generated_reports(timestamp);
	`

	if _, err := hdb.db.ExecContext(context.Background(), schema); err != nil {
		return err
	}
	return hdb.addNamesColumn()
}

// addNamesColumn upgrades ledgers created before the names column existed.
func (hdb *HistoryDB) addNamesColumn() error {
	ctx := context.Background()

	var n int
	err := hdb.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('generated_reports') WHERE name = 'names'`,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = hdb.db.ExecContext(ctx,
		`ALTER TABLE generated_reports ADD COLUMN names TEXT NOT NULL DEFAULT '[]'`)
	return err
}

// Entry is one ledger row.
type Entry struct {
	ID        int64
	ReportID  string
	Kind      string
	Format    string
	Path      string
	Students  []string

	// Names holds the student names, in the same order as Students.
	Names     []string
	Timestamp time.Time
}

// Record appends an entry. A zero Timestamp is replaced by the current time.
func (hdb *HistoryDB) Record(ctx context.Context, entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	studentsJSON, err := jsonList(entry.Students)
	if err != nil {
		return fmt.Errorf("failed to serialize students: %w", err)
	}
	namesJSON, err := jsonList(entry.Names)
	if err != nil {
		return fmt.Errorf("failed to serialize names: %w", err)
	}

	query := `
	INSERT INTO generated_reports (report_id, kind, format, path, students, names, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		entry.ReportID,
		entry.Kind,
		entry.Format,
		entry.Path,
		studentsJSON,
		namesJSON,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record report %s: %w", entry.ReportID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (hdb *HistoryDB) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, report_id, kind, format, path, students, names, timestamp
	FROM generated_reports
	ORDER BY id DESC
	LIMIT ?
	`
	return hdb.query(ctx, query, sqlLimit(limit))
}

// ListForStudent returns up to limit entries that cover the student with the
// given register number or name, newest first. Matching ignores case.
func (hdb *HistoryDB) ListForStudent(ctx context.Context, studentKey string, limit int) ([]Entry, error) {
	query := `
	SELECT id, report_id, kind, format, path, students, names, timestamp
	FROM generated_reports
	WHERE EXISTS (
		SELECT 1 FROM json_each(generated_reports.students)
		WHERE json_each.value = ?1 COLLATE NOCASE
	) OR EXISTS (
		SELECT 1 FROM json_each(generated_reports.names)
		WHERE json_each.value = ?1 COLLATE NOCASE
	)
	ORDER BY id DESC
	LIMIT ?2
	`
	return hdb.query(ctx, query, strings.TrimSpace(studentKey), sqlLimit(limit))
}

// Get returns the entry with the given report ID.
func (hdb *HistoryDB) Get(ctx context.Context, reportID string) (*Entry, error) {
	query := `
	SELECT id, report_id, kind, format, path, students, names, timestamp
	FROM generated_reports
	WHERE report_id = ?
	`
	entries, err := hdb.query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, reportID)
	}
	return &entries[0], nil
}

func (hdb *HistoryDB) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var path sql.NullString
		var studentsJSON, namesJSON, timestamp string

		if err := rows.Scan(&e.ID, &e.ReportID, &e.Kind, &e.Format, &path, &studentsJSON, &namesJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Path = path.String
		e.Timestamp = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(studentsJSON), &e.Students); err != nil {
			e.Students = nil
		}
		if err := json.Unmarshal([]byte(namesJSON), &e.Names); err != nil {
			e.Names = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// jsonList encodes a string list for a JSON column; nil is stored as [].
func jsonList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a stored timestamp, returning zero time when no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
