package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	_ "modernc.org/sqlite"
)

const (
	// MemoryDSN opens a private in-process database
	MemoryDSN = ":memory:"

	currentSchemaVersion = 1
)

// SQLite implements Repository interface with an embedded SQLite database
type SQLite struct {
	db     *sql.DB
	shifts *model.ShiftsConfig
}

// NewSQLite opens (and migrates) the database at path
func NewSQLite(ctx context.Context, path string, shifts *model.ShiftsConfig) (interfaces.Repository, error) {
	if shifts == nil {
		shifts = model.DefaultShiftsConfig()
	}

	db, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("SQLite repository initialized successfully", "path", path)

	return &SQLite{db: db, shifts: shifts}, nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, goerr.New("sqlite path is empty")
	}

	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create parent directories", goerr.V("path", path))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", path))
	}

	if path == MemoryDSN {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to enable WAL mode")
	}

	if err := migrateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrateSchema(ctx context.Context, db *sql.DB) error {
	var tableName string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)

	var version int
	switch {
	case err == sql.ErrNoRows:
		version = 0
	case err != nil:
		return goerr.Wrap(err, "failed to check schema_version table")
	default:
		err = db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
		if err != nil && err != sql.ErrNoRows {
			return goerr.Wrap(err, "failed to read schema version")
		}
	}

	if version > currentSchemaVersion {
		return goerr.New("database schema is newer than supported",
			goerr.V("version", version),
			goerr.V("supported", currentSchemaVersion))
	}

	if version == 0 {
		if err := migrateV0ToV1(ctx, db); err != nil {
			return goerr.Wrap(err, "migration v0 to v1 failed")
		}
	}

	return nil
}

func migrateV0ToV1(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to start transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`,
		`INSERT INTO schema_version (version) VALUES (1)`,
		`CREATE TABLE IF NOT EXISTS readings (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			device_id TEXT NOT NULL,
			counter_name TEXT NOT NULL,
			occupancy INTEGER NOT NULL,
			in_count INTEGER NOT NULL,
			wait_time REAL NOT NULL,
			ts_unix_nano INTEGER NOT NULL,
			created_unix_nano INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts_unix_nano)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_counter ON readings(counter_name, ts_unix_nano)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_device ON readings(device_id, ts_unix_nano)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to apply schema statement", goerr.V("stmt", stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit migration")
	}
	return nil
}

const readingColumns = "id, device_id, counter_name, occupancy, in_count, wait_time, ts_unix_nano, created_unix_nano"

// SaveReading inserts or replaces a reading
func (s *SQLite) SaveReading(ctx context.Context, reading *model.Reading) error {
	if reading == nil {
		return goerr.New("reading is nil", goerr.T(model.ErrTagInvalidInput))
	}
	if err := reading.Validate(); err != nil {
		return goerr.Wrap(err, "invalid reading")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO readings (`+readingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			device_id = excluded.device_id,
			counter_name = excluded.counter_name,
			occupancy = excluded.occupancy,
			in_count = excluded.in_count,
			wait_time = excluded.wait_time,
			ts_unix_nano = excluded.ts_unix_nano,
			created_unix_nano = excluded.created_unix_nano`,
		reading.ID.String(),
		reading.DeviceID.String(),
		reading.CounterName.String(),
		reading.Occupancy,
		reading.InCount,
		reading.WaitTimeMinutes,
		reading.Timestamp.UnixNano(),
		reading.CreatedAt.UnixNano(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert reading", goerr.V("id", reading.ID))
	}
	return nil
}

// FetchTimeline returns the congestion timeline for [from, to]
func (s *SQLite) FetchTimeline(ctx context.Context, from, to time.Time) ([]model.Sample, error) {
	readings, err := s.inWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toTimeline(readings), nil
}

// FetchShiftSummaries returns per-counter shift figures for [from, to]
func (s *SQLite) FetchShiftSummaries(ctx context.Context, from, to time.Time) ([]model.ShiftSummary, error) {
	readings, err := s.inWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return summarizeShifts(readings, s.shifts), nil
}

// LatestByCounter returns the most recent reading of a counter
func (s *SQLite) LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error) {
	if counter == "" {
		return nil, goerr.New("counter name is empty", goerr.T(model.ErrTagInvalidInput))
	}

	readings, err := s.query(ctx,
		`SELECT `+readingColumns+` FROM readings WHERE counter_name = ?
		ORDER BY ts_unix_nano DESC, seq DESC LIMIT 1`, counter.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest reading by counter", goerr.V("counter", counter))
	}
	if len(readings) == 0 {
		return nil, errReadingNotFound("counter", counter)
	}
	return readings[0], nil
}

// LatestByDevice returns the most recent reading of a device
func (s *SQLite) LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error) {
	if device == "" {
		return nil, goerr.New("device ID is empty", goerr.T(model.ErrTagInvalidInput))
	}

	readings, err := s.query(ctx,
		`SELECT `+readingColumns+` FROM readings WHERE device_id = ?
		ORDER BY ts_unix_nano DESC, seq DESC LIMIT 1`, device.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest reading by device", goerr.V("device", device))
	}
	if len(readings) == 0 {
		return nil, errReadingNotFound("device", device)
	}
	return readings[0], nil
}

// ListByDevice lists every reading of a device, newest first
func (s *SQLite) ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error) {
	if device == "" {
		return nil, goerr.New("device ID is empty", goerr.T(model.ErrTagInvalidInput))
	}

	readings, err := s.query(ctx,
		`SELECT `+readingColumns+` FROM readings WHERE device_id = ?
		ORDER BY ts_unix_nano DESC, seq DESC`, device.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list readings by device", goerr.V("device", device))
	}
	return readings, nil
}

// ListRecent lists the newest readings. A non-positive limit returns everything.
func (s *SQLite) ListRecent(ctx context.Context, limit int) ([]*model.Reading, error) {
	if limit <= 0 {
		limit = -1
	}

	readings, err := s.query(ctx,
		`SELECT `+readingColumns+` FROM readings
		ORDER BY ts_unix_nano DESC, seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent readings")
	}
	return readings, nil
}

// Stats summarizes the stored readings
func (s *SQLite) Stats(ctx context.Context) (*model.ReadingStats, error) {
	stats := &model.ReadingStats{
		Counters: []types.CounterName{},
		Devices:  []types.DeviceID{},
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM readings").Scan(&stats.TotalReadings); err != nil {
		return nil, goerr.Wrap(err, "failed to count readings")
	}

	counters, err := s.distinct(ctx, "counter_name")
	if err != nil {
		return nil, err
	}
	for _, c := range counters {
		stats.Counters = append(stats.Counters, types.CounterName(c))
	}

	devices, err := s.distinct(ctx, "device_id")
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		stats.Devices = append(stats.Devices, types.DeviceID(d))
	}

	return stats, nil
}

// DeleteAll removes every reading and returns how many were removed
func (s *SQLite) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM readings")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete readings")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get deleted row count")
	}
	return n, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) inWindow(ctx context.Context, from, to time.Time) ([]*model.Reading, error) {
	readings, err := s.query(ctx,
		`SELECT `+readingColumns+` FROM readings
		WHERE ts_unix_nano BETWEEN ? AND ?
		ORDER BY counter_name, ts_unix_nano, seq`,
		from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch readings in window",
			goerr.V("from", from),
			goerr.V("to", to))
	}
	return readings, nil
}

// distinct column is one of a fixed set of names, never user input
func (s *SQLite) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT "+column+" FROM readings ORDER BY "+column)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list distinct values", goerr.V("column", column))
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, goerr.Wrap(err, "failed to scan distinct value", goerr.V("column", column))
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate distinct values", goerr.V("column", column))
	}
	return values, nil
}

func (s *SQLite) query(ctx context.Context, q string, args ...any) ([]*model.Reading, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query readings")
	}
	defer func() { _ = rows.Close() }()

	var readings []*model.Reading
	for rows.Next() {
		var (
			r                 model.Reading
			id, device, count string
			ts, created       int64
		)
		if err := rows.Scan(&id, &device, &count, &r.Occupancy, &r.InCount, &r.WaitTimeMinutes, &ts, &created); err != nil {
			return nil, goerr.Wrap(err, "failed to scan reading")
		}
		r.ID = types.ReadingID(id)
		r.DeviceID = types.DeviceID(device)
		r.CounterName = types.CounterName(count)
		r.Timestamp = time.Unix(0, ts).UTC()
		r.CreatedAt = time.Unix(0, created).UTC()
		readings = append(readings, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate readings")
	}

	return readings, nil
}
