package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/shared"
)

const runColumns = `
	id, sequence, operation, status, input, output, error_message,
	task_count, finding_count, adjustment_count, critical_count,
	started_at, completed_at, created_at, updated_at, deleted_at
`

// RunRepository implements models.Repository[*models.Run] for run history.
//
// Handles run CRUD operations with soft delete support and operation/status queries.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidRun, err)
	}

	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO runs (
			id, sequence, operation, status, input, output, error_message,
			task_count, finding_count, adjustment_count, critical_count,
			started_at, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	counts := run.Counts()
	_, err = r.db.Exec(query,
		id,
		sequence,
		run.Operation(),
		run.Status(),
		string(run.Input()),
		nullBytes(run.Output()),
		nullString(run.ErrorMessage()),
		counts.Tasks,
		counts.Findings,
		counts.Adjustments,
		counts.Critical,
		run.StartedAt(),
		run.CompletedAt(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	run.SetID(id)
	run.SetSequence(sequence)
	return nil
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := "SELECT" + runColumns + "FROM runs WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetBySequence retrieves a run by its sequence number, excluding soft-deleted runs
func (r *RunRepository) GetBySequence(sequence int) (*models.Run, error) {
	query := "SELECT" + runColumns + "FROM runs WHERE sequence = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, sequence), fmt.Sprintf("#%d", sequence))
}

// Find resolves ref as a sequence number when it is numeric (optionally prefixed with #) and as an ID otherwise
func (r *RunRepository) Find(ref string) (*models.Run, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty run reference", shared.ErrInvalidArgument)
	}
	if seq, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		return r.GetBySequence(seq)
	}
	return r.Get(ref)
}

// Update writes the mutable state of an existing run: status, output, counts and timestamps
func (r *RunRepository) Update(run *models.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidRun, err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE runs
		SET status = ?, output = ?, error_message = ?,
			task_count = ?, finding_count = ?, adjustment_count = ?, critical_count = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	counts := run.Counts()
	result, err := r.db.Exec(query,
		run.Status(),
		nullBytes(run.Output()),
		nullString(run.ErrorMessage()),
		counts.Tasks,
		counts.Findings,
		counts.Adjustments,
		counts.Critical,
		run.StartedAt(),
		run.CompletedAt(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, run.ID())
	}

	return nil
}

// Delete soft-deletes a run by ID
func (r *RunRepository) Delete(id string) error {
	query := `
		UPDATE runs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}

	return nil
}

// List retrieves runs matching the given criteria, newest first, excluding soft-deleted runs.
//
// Supported criteria: "operation" (string), "status" (string or [models.RunStatus]) and "limit" (int).
func (r *RunRepository) List(criteria map[string]any) ([]*models.Run, error) {
	query := "SELECT" + runColumns + "FROM runs WHERE deleted_at IS NULL"
	args := []any{}

	if operation, ok := criteria["operation"].(string); ok && operation != "" {
		query += " AND operation = ?"
		args = append(args, operation)
	}

	switch status := criteria["status"].(type) {
	case string:
		if status != "" {
			query += " AND status = ?"
			args = append(args, status)
		}
	case models.RunStatus:
		if status != "" {
			query += " AND status = ?"
			args = append(args, string(status))
		}
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// scanOne scans a single [sql.Row] into a [models.Run]
func (r *RunRepository) scanOne(row *sql.Row, ref string) (*models.Run, error) {
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, ref)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans the [runColumns] of a row into a [models.Run]
func scanRun(s scanner) (*models.Run, error) {
	var (
		state        models.RunState
		status       string
		input        string
		output       sql.NullString
		errorMessage sql.NullString
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		deletedAt    sql.NullTime
	)

	err := s.Scan(
		&state.ID, &state.Sequence, &state.Operation, &status, &input, &output, &errorMessage,
		&state.Counts.Tasks, &state.Counts.Findings, &state.Counts.Adjustments, &state.Counts.Critical,
		&startedAt, &completedAt, &state.CreatedAt, &state.UpdatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	state.Status = models.RunStatus(status)
	state.Input = []byte(input)
	if output.Valid {
		state.Output = []byte(output.String)
	}
	if errorMessage.Valid {
		state.ErrorMessage = errorMessage.String
	}
	if startedAt.Valid {
		state.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		state.CompletedAt = &completedAt.Time
	}
	if deletedAt.Valid {
		state.DeletedAt = &deletedAt.Time
	}

	return models.RestoreRun(state), nil
}

// RunRecorderAdapter implements tasks.RunRecorder using RunRepository.
//
// Begin inserts the pending run; Finish updates it, inserting it first if Begin never stored it.
type RunRecorderAdapter struct {
	repo *RunRepository
}

// NewRunRecorderAdapter creates a new RunRecorderAdapter with the given repository
func NewRunRecorderAdapter(repo *RunRepository) *RunRecorderAdapter {
	return &RunRecorderAdapter{repo: repo}
}

// Begin stores a newly created run.
func (a *RunRecorderAdapter) Begin(run *models.Run) error {
	return a.repo.Create(run)
}

// Finish stores the final state of run.
func (a *RunRecorderAdapter) Finish(run *models.Run) error {
	if run.ID() == "" {
		return a.repo.Create(run)
	}
	return a.repo.Update(run)
}
