package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
)

// JobRepository implements models.Repository[*models.Job] for bulk operation tracking.
//
// Handles job CRUD operations with soft delete support and status-based queries.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job into the database with generated ID and sequence
func (r *JobRepository) Create(job *models.Job) error {
	sequence, err := NextSequence(r.db, "jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)
	job.SetSequence(sequence)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO jobs (
			id, sequence, kind, status, items_total, items_done,
			items_failed, error_message, started_at, completed_at,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(job.Kind()),
		string(job.Status()),
		job.ItemsTotal(),
		job.ItemsDone(),
		job.ItemsFailed(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Get retrieves a job by ID, excluding soft-deleted jobs
func (r *JobRepository) Get(id string) (*models.Job, error) {
	query := `
		SELECT
			id, sequence, kind, status, items_total, items_done,
			items_failed, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing job in the database
func (r *JobRepository) Update(job *models.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE jobs
		SET status = ?, items_total = ?, items_done = ?, items_failed = ?,
			error_message = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var errorMessage any = job.ErrorMessage()
	if errorMessage == "" {
		errorMessage = nil
	}

	result, err := r.db.Exec(query,
		string(job.Status()),
		job.ItemsTotal(),
		job.ItemsDone(),
		job.ItemsFailed(),
		errorMessage,
		job.StartedAt(),
		job.CompletedAt(),
		now,
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", job.ID())
	}

	return nil
}

// Delete soft-deletes a job by ID
func (r *JobRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all jobs matching the given criteria, excluding soft-deleted jobs.
//
// Supported criteria: "kind", "status", "limit". Results are newest first.
func (r *JobRepository) List(criteria map[string]any) ([]*models.Job, error) {
	query := `
		SELECT
			id, sequence, kind, status, items_total, items_done,
			items_failed, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM jobs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

// scanOne scans a single [sql.Row] into a [models.Job]
func (r *JobRepository) scanOne(row *sql.Row) (*models.Job, error) {
	var (
		id           string
		sequence     int
		kind         string
		status       string
		itemsTotal   int
		itemsDone    int
		itemsFailed  int
		errorMessage sql.NullString
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &kind, &status, &itemsTotal, &itemsDone, &itemsFailed, &errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	return buildJob(id, sequence, kind, status, itemsTotal, itemsDone, itemsFailed, errorMessage, startedAt, completedAt, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Job]
func (r *JobRepository) scanRow(rows *sql.Rows) (*models.Job, error) {
	var (
		id           string
		sequence     int
		kind         string
		status       string
		itemsTotal   int
		itemsDone    int
		itemsFailed  int
		errorMessage sql.NullString
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &kind, &status, &itemsTotal, &itemsDone, &itemsFailed, &errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	return buildJob(id, sequence, kind, status, itemsTotal, itemsDone, itemsFailed, errorMessage, startedAt, completedAt, createdAt, updatedAt, deletedAt), nil
}

// buildJob reconstructs a [models.Job] from scanned columns.
func buildJob(id string, sequence int, kind, status string, itemsTotal, itemsDone, itemsFailed int, errorMessage sql.NullString, startedAt, completedAt sql.NullTime, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.Job {
	job := models.NewJob(sequence, models.JobKind(kind), itemsTotal)
	job.SetID(id)
	job.SetCreatedAt(createdAt)

	var started, completed *time.Time
	if startedAt.Valid {
		started = &startedAt.Time
	}
	if completedAt.Valid {
		completed = &completedAt.Time
	}

	var errMsg string
	if errorMessage.Valid {
		errMsg = errorMessage.String
	}

	job.SetRow(models.JobStatus(status), itemsDone, itemsFailed, errMsg, started, completed)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job
}
