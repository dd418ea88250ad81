// Package postgres persists checking runs in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"veristat/domain/core"
	"veristat/domain/verdict"
	"veristat/ports"
)

// ErrReportNotFound is returned when no report matches the requested ID.
var ErrReportNotFound = errors.New("report not found")

// ReportRepositoryImpl implements ReportRepository for PostgreSQL. Verdict
// rows are stored as one JSONB document per report; they are only ever
// read back whole.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a PostgreSQL report repository.
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL connection.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the reports table if it does not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			run_id UUID NOT NULL,
			tool TEXT NOT NULL,
			source TEXT NOT NULL,
			alpha DOUBLE PRECISION NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			rows JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_reports_source ON reports (source, created_at DESC)`)
	return err
}

// Save stores a report, overwriting any previous row with the same ID.
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *ports.Report) error {
	rowsJSON, err := json.Marshal(report.Rows)
	if err != nil {
		return fmt.Errorf("marshaling verdict rows: %w", err)
	}
	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reports (id, run_id, tool, source, alpha, skipped, rows, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			tool = EXCLUDED.tool,
			source = EXCLUDED.source,
			alpha = EXCLUDED.alpha,
			skipped = EXCLUDED.skipped,
			rows = EXCLUDED.rows`,
		report.ID, report.RunID, report.Tool, report.Source,
		report.Alpha, report.Skipped, rowsJSON, createdAt)
	return err
}

// GetByID retrieves one report.
func (r *ReportRepositoryImpl) GetByID(ctx context.Context, id core.ReportID) (*ports.Report, error) {
	report, rowsJSON := &ports.Report{}, []byte(nil)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, run_id, tool, source, alpha, skipped, rows, created_at
		FROM reports WHERE id = $1`, id).Scan(
		&report.ID, &report.RunID, &report.Tool, &report.Source,
		&report.Alpha, &report.Skipped, &rowsJSON, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rowsJSON, &report.Rows); err != nil {
		return nil, fmt.Errorf("unmarshaling verdict rows: %w", err)
	}
	return report, nil
}

// ListBySource retrieves the most recent reports for one source document.
func (r *ReportRepositoryImpl) ListBySource(ctx context.Context, source string, limit int) ([]*ports.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, tool, source, alpha, skipped, rows, created_at
		FROM reports WHERE source = $1
		ORDER BY created_at DESC LIMIT $2`, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*ports.Report
	for rows.Next() {
		report, rowsJSON := &ports.Report{}, []byte(nil)
		if err := rows.Scan(&report.ID, &report.RunID, &report.Tool, &report.Source,
			&report.Alpha, &report.Skipped, &rowsJSON, &report.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rowsJSON, &report.Rows); err != nil {
			return nil, fmt.Errorf("unmarshaling verdict rows: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// NewReport assembles a persistable report from a finished run.
func NewReport(tool, source string, alpha float64, skipped int, verdicts []verdict.Row) *ports.Report {
	return &ports.Report{
		ID:        core.NewReportID(),
		RunID:     core.NewRunID(),
		Tool:      tool,
		Source:    source,
		Alpha:     alpha,
		Skipped:   skipped,
		Rows:      verdicts,
		CreatedAt: time.Now().UTC(),
	}
}
