package models

import (
	"fmt"
	"time"
)

// JobKind identifies a long-running library operation.
type JobKind string

const (
	JobKindBulkDelete JobKind = "bulk_delete"
	JobKindBulkAdd    JobKind = "bulk_add"
	JobKindBulkExport JobKind = "bulk_export"
	JobKindSync       JobKind = "sync"
)

// JobStatus tracks the lifecycle of a job row.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job records a bulk or sync operation with progress counters and outcome.
type Job struct {
	id           string
	sequence     int
	kind         JobKind
	status       JobStatus
	itemsTotal   int
	itemsDone    int
	itemsFailed  int
	errorMessage string
	startedAt    *time.Time
	completedAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewJob creates a pending Job. The ID is assigned by the repository on Create.
func NewJob(sequence int, kind JobKind, itemsTotal int) *Job {
	now := time.Now()
	return &Job{
		sequence:   sequence,
		kind:       kind,
		status:     JobStatusPending,
		itemsTotal: itemsTotal,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (j *Job) ID() string              { return j.id }
func (j *Job) Sequence() int           { return j.sequence }
func (j *Job) Kind() JobKind           { return j.kind }
func (j *Job) Status() JobStatus       { return j.status }
func (j *Job) ItemsTotal() int         { return j.itemsTotal }
func (j *Job) ItemsDone() int          { return j.itemsDone }
func (j *Job) ItemsFailed() int        { return j.itemsFailed }
func (j *Job) ErrorMessage() string    { return j.errorMessage }
func (j *Job) StartedAt() *time.Time   { return j.startedAt }
func (j *Job) CompletedAt() *time.Time { return j.completedAt }
func (j *Job) CreatedAt() time.Time    { return j.createdAt }
func (j *Job) UpdatedAt() time.Time    { return j.updatedAt }
func (j *Job) DeletedAt() *time.Time   { return j.deletedAt }

func (j *Job) SetID(id string)           { j.id = id }
func (j *Job) SetSequence(seq int)       { j.sequence = seq }
func (j *Job) SetCreatedAt(t time.Time)  { j.createdAt = t }
func (j *Job) SetUpdatedAt(t time.Time)  { j.updatedAt = t }
func (j *Job) SetDeletedAt(t *time.Time) { j.deletedAt = t }

// SetRow restores persisted state when scanning from the database.
func (j *Job) SetRow(status JobStatus, done, failed int, errMsg string, startedAt, completedAt *time.Time) {
	j.status = status
	j.itemsDone = done
	j.itemsFailed = failed
	j.errorMessage = errMsg
	j.startedAt = startedAt
	j.completedAt = completedAt
}

// Start marks the job running.
func (j *Job) Start() {
	now := time.Now()
	j.status = JobStatusRunning
	j.startedAt = &now
	j.updatedAt = now
}

// SetProgress updates the done and failed counters.
func (j *Job) SetProgress(done, failed int) {
	j.itemsDone = done
	j.itemsFailed = failed
	j.updatedAt = time.Now()
}

// Complete marks the job finished.
func (j *Job) Complete() {
	now := time.Now()
	j.status = JobStatusCompleted
	j.completedAt = &now
	j.updatedAt = now
}

// Fail marks the job failed with a message.
func (j *Job) Fail(msg string) {
	now := time.Now()
	j.status = JobStatusFailed
	j.errorMessage = msg
	j.completedAt = &now
	j.updatedAt = now
}

// Validate checks the job kind and status.
func (j *Job) Validate() error {
	switch j.kind {
	case JobKindBulkDelete, JobKindBulkAdd, JobKindBulkExport, JobKindSync:
	default:
		return fmt.Errorf("unknown job kind: %s", j.kind)
	}
	switch j.status {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed:
	default:
		return fmt.Errorf("unknown job status: %s", j.status)
	}
	if j.itemsTotal < 0 {
		return fmt.Errorf("items total cannot be negative")
	}
	return nil
}
