// Package handlers implements the HTTP API surface. Handlers stay thin:
// validation and JSON shaping here, semantics in the engine and repositories.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"draftflow/internal/domain"
	"draftflow/internal/providers/copy"
)

// App bundles the dependencies every handler needs.
type App struct {
	Logger    zerolog.Logger
	Products  domain.ProductRepository
	Drafts    domain.DraftRepository
	Templates domain.TemplateRepository
	Jobs      domain.DraftJobRepository
	Enhancer  copy.Enhancer
}

func NewApp(logger zerolog.Logger, products domain.ProductRepository, drafts domain.DraftRepository, templates domain.TemplateRepository, jobs domain.DraftJobRepository, enhancer copy.Enhancer) *App {
	return &App{
		Logger:    logger,
		Products:  products,
		Drafts:    drafts,
		Templates: templates,
		Jobs:      jobs,
		Enhancer:  enhancer,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// repoError maps repository failures onto API errors, hiding internals.
func (a *App) repoError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", what+" not found")
		return
	}
	a.Logger.Error().Err(err).Msgf("handlers: %s", what)
	a.error(w, http.StatusInternalServerError, "internal", "failed to access "+what)
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
