package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/patrol/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) GetJob(ctx context.Context, id string) (*model.JobMetadata, error) {
	s.logger.Debug("sql", "op", "select", "table", "job_metadata", "id", id)
	return s.scanJob(s.db.QueryRowContext(ctx,
		`SELECT job_id, name, time_interval_minutes, enabled, last_success, created_at, updated_at
		 FROM job_metadata WHERE job_id = ?`, id))
}

func (s *SQLiteStore) ListJobs(ctx context.Context) ([]*model.JobMetadata, error) {
	s.logger.Debug("sql", "op", "list", "table", "job_metadata")

	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, name, time_interval_minutes, enabled, last_success, created_at, updated_at
		 FROM job_metadata ORDER BY job_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.JobMetadata
	for rows.Next() {
		meta, err := s.scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, meta)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) UpsertJob(ctx context.Context, meta *model.JobMetadata) error {
	s.logger.Debug("sql", "op", "upsert", "table", "job_metadata", "id", meta.JobID)

	var lastSuccess *string
	if meta.LastSuccess != nil {
		v := meta.LastSuccess.Format(time.RFC3339Nano)
		lastSuccess = &v
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_metadata (job_id, name, time_interval_minutes, enabled, last_success, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(job_id) DO UPDATE SET
		 name=excluded.name, time_interval_minutes=excluded.time_interval_minutes,
		 enabled=excluded.enabled, updated_at=excluded.updated_at`,
		meta.JobID, meta.Name, meta.TimeIntervalMinutes, boolToInt(meta.Enabled),
		lastSuccess,
		meta.CreatedAt.Format(time.RFC3339Nano), meta.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) SetInterval(ctx context.Context, id string, minutes int) error {
	s.logger.Debug("sql", "op", "set_interval", "table", "job_metadata", "id", id, "minutes", minutes)

	result, err := s.db.ExecContext(ctx,
		`UPDATE job_metadata SET time_interval_minutes=?, updated_at=? WHERE job_id=?`,
		minutes, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("job metadata %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	s.logger.Debug("sql", "op", "set_enabled", "table", "job_metadata", "id", id, "enabled", enabled)

	result, err := s.db.ExecContext(ctx,
		`UPDATE job_metadata SET enabled=?, updated_at=? WHERE job_id=?`,
		boolToInt(enabled), time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("job metadata %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) SetLastSuccess(ctx context.Context, id string, t time.Time) error {
	s.logger.Debug("sql", "op", "set_last_success", "table", "job_metadata", "id", id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE job_metadata SET last_success=?, updated_at=? WHERE job_id=?`,
		t.Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("job metadata %s not found", id)
	}
	return nil
}

// DeleteJob removes the row for id. Deleting an absent row is not an
// error.
func (s *SQLiteStore) DeleteJob(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "job_metadata", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM job_metadata WHERE job_id = ?`, id)
	return err
}

// --- scan helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanJob(row scanner) (*model.JobMetadata, error) {
	var meta model.JobMetadata
	var enabled int
	var lastSuccess *string
	var createdAt, updatedAt string

	err := row.Scan(&meta.JobID, &meta.Name, &meta.TimeIntervalMinutes,
		&enabled, &lastSuccess, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meta.Enabled = enabled != 0
	if lastSuccess != nil {
		t, _ := time.Parse(time.RFC3339Nano, *lastSuccess)
		meta.LastSuccess = &t
	}
	meta.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	meta.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return &meta, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
