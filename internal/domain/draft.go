package domain

import "time"

// DraftResult is a generated, not-yet-published candidate listing for one
// product. Created once per (product, job); the engine never mutates it after
// creation. Selected is flipped only by the selection API.
type DraftResult struct {
	ID                string
	JobID             string
	ProductID         string
	MainImageDraftURL string
	Title             string
	SellingPoints     []string
	Selected          bool
	// GenerationError carries the visible failure marker when an item was
	// skipped under FailureSkip. Empty on success.
	GenerationError string
	CreatedAt       time.Time
}

// FailureMode decides what a per-item image failure does to the batch.
type FailureMode string

const (
	// FailureAbort stops the whole batch on the first item failure.
	FailureAbort FailureMode = "abort"
	// FailureSkip records a placeholder draft for the failing item and
	// continues with the rest of the batch.
	FailureSkip FailureMode = "skip"
)

// JobStatus enumerates draft-generation job lifecycle states.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// DraftJob is one queued batch-generation request. ProductIDs keeps the
// caller's order; drafts are produced in exactly that order.
type DraftJob struct {
	ID           string
	TemplateID   string
	ProductIDs   []string
	FailureMode  FailureMode
	Status       JobStatus
	Completed    int
	Total        int
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
