package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/planvia/demandplan/pkg/domain/entities"
	"github.com/planvia/demandplan/pkg/domain/repositories"
)

// ExecutionRepository provides PostgreSQL-backed storage of reconciliation
// run records
type ExecutionRepository struct {
	database *sql.DB
}

// NewExecutionRepository opens the database and ensures the run table
// exists
func NewExecutionRepository(dsn string) (*ExecutionRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS reconciliation_run (" +
			" id VARCHAR (36) PRIMARY KEY," +
			" status VARCHAR (10) NOT NULL," +
			" created_at TIMESTAMP NOT NULL," +
			" started_at TIMESTAMP," +
			" completed_at TIMESTAMP," +
			" error_message TEXT," +
			" total_messages INTEGER NOT NULL DEFAULT 0," +
			" total_cancel INTEGER NOT NULL DEFAULT 0," +
			" total_increase INTEGER NOT NULL DEFAULT 0," +
			" total_reduce INTEGER NOT NULL DEFAULT 0," +
			" total_expedite INTEGER NOT NULL DEFAULT 0," +
			" total_new INTEGER NOT NULL DEFAULT 0" +
			" );")
	if err != nil {
		return nil, fmt.Errorf("failed to create reconciliation_run table: %w", err)
	}

	return &ExecutionRepository{database: db}, nil
}

// Verify interface compliance
var _ repositories.ExecutionRepository = (*ExecutionRepository)(nil)

// Close releases the underlying database handle
func (r *ExecutionRepository) Close() error {
	return r.database.Close()
}

// CreateRun inserts a new run record
func (r *ExecutionRepository) CreateRun(ctx context.Context, run *entities.ReconciliationRun) error {
	_, err := r.database.ExecContext(ctx,
		"INSERT INTO reconciliation_run (id, status, created_at)"+
			" VALUES ($1, $2, $3)",
		run.ID,
		run.Status.String(),
		run.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("run %s: %w", run.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun returns the run record with the given id
func (r *ExecutionRepository) GetRun(ctx context.Context, id string) (*entities.ReconciliationRun, error) {
	row := r.database.QueryRowContext(ctx,
		"SELECT id, status, created_at, started_at, completed_at, error_message,"+
			" total_messages, total_cancel, total_increase, total_reduce, total_expedite, total_new"+
			" FROM reconciliation_run"+
			" WHERE id = $1",
		id)

	var (
		run          entities.ReconciliationRun
		status       string
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		errorMessage sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&status,
		&run.CreatedAt,
		&startedAt,
		&completedAt,
		&errorMessage,
		&run.TotalMessages,
		&run.TotalCancel,
		&run.TotalIncrease,
		&run.TotalReduce,
		&run.TotalExpedite,
		&run.TotalNew)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read run %s: %w", id, err)
	}

	run.Status, err = parseRunStatus(status)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		run.CompletedAt = completedAt.Time
	}
	if errorMessage.Valid {
		run.ErrorMessage = errorMessage.String
	}

	return &run, nil
}

// UpdateRun replaces the mutable fields of an existing run record
func (r *ExecutionRepository) UpdateRun(ctx context.Context, run *entities.ReconciliationRun) error {
	result, err := r.database.ExecContext(ctx,
		"UPDATE reconciliation_run"+
			" SET status = $1, started_at = $2, completed_at = $3, error_message = $4,"+
			" total_messages = $5, total_cancel = $6, total_increase = $7,"+
			" total_reduce = $8, total_expedite = $9, total_new = $10"+
			" WHERE id = $11",
		run.Status.String(),
		nullTime(run.StartedAt),
		nullTime(run.CompletedAt),
		run.ErrorMessage,
		run.TotalMessages,
		run.TotalCancel,
		run.TotalIncrease,
		run.TotalReduce,
		run.TotalExpedite,
		run.TotalNew,
		run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

func parseRunStatus(s string) (entities.RunStatus, error) {
	switch s {
	case "PENDING":
		return entities.RunPending, nil
	case "RUNNING":
		return entities.RunRunning, nil
	case "COMPLETED":
		return entities.RunCompleted, nil
	case "FAILED":
		return entities.RunFailed, nil
	default:
		return entities.RunPending, fmt.Errorf("invalid run status: %s", s)
	}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
