package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"draftflow/internal/domain"
	"draftflow/internal/engine"
)

func (a *App) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Templates.List(r.Context())
	if err != nil {
		a.repoError(w, err, "templates")
		return
	}
	items := make([]templateDTO, 0, len(templates))
	for _, t := range templates {
		items = append(items, toTemplateDTO(t))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type deriveTemplateRequest struct {
	Name      string                   `json:"name"`
	Tags      []string                 `json:"tags"`
	Elements  []domain.TemplateElement `json:"elements"`
	DraftID   string                   `json:"draftId"`
	Thumbnail string                   `json:"thumbnail"`
}

// TemplatesDerive builds a reusable template out of an existing draft by
// substituting the source product's literal values back into placeholders.
func (a *App) TemplatesDerive(w http.ResponseWriter, r *http.Request) {
	var req deriveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if req.DraftID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "draftId is required")
		return
	}

	probe := domain.Template{Elements: req.Elements}
	if err := probe.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	draft, err := a.Drafts.GetByID(r.Context(), req.DraftID)
	if err != nil {
		a.repoError(w, err, "draft")
		return
	}
	product, err := a.Products.GetByID(r.Context(), draft.ProductID)
	if err != nil {
		a.repoError(w, err, "product")
		return
	}

	template := engine.DeriveTemplate(strings.TrimSpace(req.Name), req.Tags, req.Elements, draft, product, req.Thumbnail)
	if err := a.Templates.Create(r.Context(), template); err != nil {
		a.repoError(w, err, "template")
		return
	}
	a.Logger.Info().Str("template_id", template.ID).Str("draft_id", draft.ID).Msg("handlers: template derived")
	a.json(w, http.StatusCreated, toTemplateDTO(*template))
}

func (a *App) TemplatesGet(w http.ResponseWriter, r *http.Request) {
	template, err := a.Templates.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.repoError(w, err, "template")
		return
	}
	a.json(w, http.StatusOK, toTemplateDTO(*template))
}

func (a *App) TemplatesDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.repoError(w, err, "template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
