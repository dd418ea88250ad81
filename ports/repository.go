package ports

import (
	"context"
	"time"

	"veristat/domain/core"
	"veristat/domain/verdict"
)

// Report is a persisted checking run: which tool ran, over what source, and
// the verdict rows it produced.
type Report struct {
	ID        core.ReportID
	RunID     core.RunID
	Tool      string // "grim" or "statcheck"
	Source    string
	Alpha     float64
	Skipped   int
	Rows      []verdict.Row
	CreatedAt time.Time
}

// ReportRepository stores checking runs for later audit.
type ReportRepository interface {
	Save(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id core.ReportID) (*Report, error)
	ListBySource(ctx context.Context, source string, limit int) ([]*Report, error)
}
