package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"draftflow/internal/domain"
)

type enqueueJobRequest struct {
	TemplateID  string   `json:"templateId"`
	ProductIDs  []string `json:"productIds"`
	FailureMode string   `json:"failureMode"`
}

// JobsEnqueue queues a batch generation job. The worker picks it up; the
// response carries the job id for polling.
func (a *App) JobsEnqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.ProductIDs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "productIds must not be empty")
		return
	}

	mode := domain.FailureAbort
	switch req.FailureMode {
	case "", string(domain.FailureAbort):
	case string(domain.FailureSkip):
		mode = domain.FailureSkip
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "failureMode must be abort or skip")
		return
	}

	// Validate references up front so a job never fails on a missing row.
	if _, err := a.Products.ListByIDs(r.Context(), req.ProductIDs); err != nil {
		a.repoError(w, err, "products")
		return
	}
	if req.TemplateID != "" {
		if _, err := a.Templates.GetByID(r.Context(), req.TemplateID); err != nil {
			a.repoError(w, err, "template")
			return
		}
	}

	job := domain.DraftJob{
		ID:          uuid.NewString(),
		TemplateID:  req.TemplateID,
		ProductIDs:  req.ProductIDs,
		FailureMode: mode,
		Status:      domain.JobStatusQueued,
		Completed:   0,
		Total:       len(req.ProductIDs),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := a.Jobs.Create(r.Context(), &job); err != nil {
		a.repoError(w, err, "job")
		return
	}
	a.Logger.Info().Str("job_id", job.ID).Int("total", job.Total).Msg("handlers: job queued")
	a.json(w, http.StatusAccepted, toJobDTO(job))
}

func (a *App) JobsGet(w http.ResponseWriter, r *http.Request) {
	job, err := a.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.repoError(w, err, "job")
		return
	}
	a.json(w, http.StatusOK, toJobDTO(*job))
}

// JobsDrafts lists the drafts one job produced, in generation order.
func (a *App) JobsDrafts(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if _, err := a.Jobs.GetByID(r.Context(), jobID); err != nil {
		a.repoError(w, err, "job")
		return
	}
	drafts, err := a.Drafts.ListByJobID(r.Context(), jobID)
	if err != nil {
		a.repoError(w, err, "drafts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toDraftDTOs(drafts)})
}
