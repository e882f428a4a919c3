package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"draftflow/internal/storage"
	"draftflow/pkg/zip"
)

func (a *App) DraftsList(w http.ResponseWriter, r *http.Request) {
	drafts, err := a.Drafts.List(r.Context())
	if err != nil {
		a.repoError(w, err, "drafts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toDraftDTOs(drafts)})
}

type selectionRequest struct {
	Selected bool `json:"selected"`
}

// DraftsSetSelection flips the export flag on one draft. Selection is the
// only mutation drafts support.
func (a *App) DraftsSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Drafts.SetSelected(r.Context(), id, req.Selected); err != nil {
		a.repoError(w, err, "draft")
		return
	}
	draft, err := a.Drafts.GetByID(r.Context(), id)
	if err != nil {
		a.repoError(w, err, "draft")
		return
	}
	a.json(w, http.StatusOK, toDraftDTO(*draft))
}

func (a *App) DraftsClear(w http.ResponseWriter, r *http.Request) {
	if err := a.Drafts.Clear(r.Context()); err != nil {
		a.repoError(w, err, "drafts")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DraftsExport streams a zip of the selected drafts' images, one PNG per
// draft named "{title}_{n}.png". Drafts without an image (skipped items) are
// left out of the archive.
func (a *App) DraftsExport(w http.ResponseWriter, r *http.Request) {
	drafts, err := a.Drafts.ListSelected(r.Context())
	if err != nil {
		a.repoError(w, err, "drafts")
		return
	}
	if len(drafts) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "no drafts selected")
		return
	}

	entries := make([]zip.Entry, 0, len(drafts))
	for i, draft := range drafts {
		if draft.MainImageDraftURL == "" {
			continue
		}
		data, err := storage.DecodeDataURI(draft.MainImageDraftURL)
		if err != nil {
			a.Logger.Warn().Str("draft_id", draft.ID).Err(err).Msg("handlers: export skipped draft")
			continue
		}
		entries = append(entries, zip.Entry{Filename: zip.DraftImageName(draft.Title, i+1), Data: data})
	}
	archive, err := zip.Archive(entries)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: export archive")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="drafts_export.zip"`)
	_, _ = w.Write(archive)
}
