package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"trialstat/domain/trial"
)

// ResultRepository archives consolidated results per run. The archive is an
// optional collaborator: the pipeline itself never touches the database.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// EnsureSchema creates the archive tables if they do not exist
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		source_name TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS analysis_results (
		run_id TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		treatment TEXT NOT NULL,
		mean DOUBLE PRECISION NOT NULL,
		group_letter TEXT NOT NULL,
		parameter TEXT NOT NULL,
		trial TEXT NOT NULL,
		p_value DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, position)
	);`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure archive schema: %w", err)
	}
	return nil
}

// SaveRun archives one run's consolidated result. Row position preserves the
// deterministic output order so a run reads back exactly as produced.
func (r *ResultRepository) SaveRun(ctx context.Context, runID trial.RunID, sourceName string, result *trial.ConsolidatedResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, source_name, row_count, created_at) VALUES ($1, $2, $3, $4)`,
		runID.String(), sourceName, len(result.Rows), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	query := `INSERT INTO analysis_results
		(run_id, position, treatment, mean, group_letter, parameter, trial, p_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, row := range result.Rows {
		_, err = tx.ExecContext(ctx, query,
			runID.String(), i, row.Treatment, row.Mean, row.Group, row.Parameter, row.Trial, row.PValue,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive transaction: %w", err)
	}
	return nil
}

// GetRun reads an archived run back in its original row order
func (r *ResultRepository) GetRun(ctx context.Context, runID trial.RunID) (*trial.ConsolidatedResult, error) {
	query := `SELECT treatment, mean, group_letter, parameter, trial, p_value
		FROM analysis_results WHERE run_id = $1 ORDER BY position`

	var rows []trial.MeansRow
	if err := r.db.SelectContext(ctx, &rows, query, runID.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to read archived run: %w", err)
	}
	return &trial.ConsolidatedResult{Rows: rows}, nil
}

// ListRuns returns recent archived run IDs with their source names
func (r *ResultRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, source_name, row_count, created_at
		FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	var runs []RunSummary
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list archived runs: %w", err)
	}
	return runs, nil
}

// RunSummary is one archived run's metadata
type RunSummary struct {
	ID         string    `db:"id"`
	SourceName string    `db:"source_name"`
	RowCount   int       `db:"row_count"`
	CreatedAt  time.Time `db:"created_at"`
}
