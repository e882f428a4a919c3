package domain

import "context"

// ProductRepository defines persistence for product records.
type ProductRepository interface {
	Upsert(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	// ListByIDs returns products in the order of the given ids; a missing id
	// yields ErrNotFound.
	ListByIDs(ctx context.Context, ids []string) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// DraftRepository defines persistence for generated drafts.
type DraftRepository interface {
	SaveAll(ctx context.Context, drafts []DraftResult) error
	GetByID(ctx context.Context, id string) (*DraftResult, error)
	ListByJobID(ctx context.Context, jobID string) ([]DraftResult, error)
	List(ctx context.Context) ([]DraftResult, error)
	ListSelected(ctx context.Context) ([]DraftResult, error)
	SetSelected(ctx context.Context, id string, selected bool) error
	Clear(ctx context.Context) error
}

// TemplateRepository defines persistence for reusable templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	// IncrementUsedCount bumps usedCount by one; called once per batch
	// application, not per item.
	IncrementUsedCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DraftJobRepository defines the generation job queue.
type DraftJobRepository interface {
	Create(ctx context.Context, job *DraftJob) error
	GetByID(ctx context.Context, id string) (*DraftJob, error)
	// ClaimNext atomically moves the oldest queued job to running and returns
	// it, or ErrNotFound when the queue is empty.
	ClaimNext(ctx context.Context) (*DraftJob, error)
	UpdateProgress(ctx context.Context, id string, completed, total int) error
	MarkFinished(ctx context.Context, id string, status JobStatus, errMsg string) error
}
