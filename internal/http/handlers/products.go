package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"draftflow/internal/domain"
	"draftflow/internal/importer"
)

// maxImportSize caps uploaded workbooks at 10 MiB.
const maxImportSize = 10 << 20

func (a *App) ProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := a.Products.List(r.Context())
	if err != nil {
		a.repoError(w, err, "products")
		return
	}
	items := make([]productDTO, 0, len(products))
	for _, p := range products {
		items = append(items, toProductDTO(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ProductsCreate(w http.ResponseWriter, r *http.Request) {
	var req productDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	product := domain.Product{
		ID:             req.ID,
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		Brand:          strings.TrimSpace(req.Brand),
		Material:       strings.TrimSpace(req.Material),
		Size:           strings.TrimSpace(req.Size),
		Color:          strings.TrimSpace(req.Color),
		TargetAudience: req.TargetAudience,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		CreatedAt:      time.Now(),
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Category == "" {
		product.Category = domain.DefaultCategory
	}
	if len(product.TargetAudience) == 0 {
		product.TargetAudience = []string{domain.AudienceGeneral}
	}
	if err := a.Products.Upsert(r.Context(), &product); err != nil {
		a.repoError(w, err, "product")
		return
	}
	a.json(w, http.StatusCreated, toProductDTO(product))
}

// ProductsUpdate replaces one product. The path id wins over any id in the
// payload.
func (a *App) ProductsUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.Products.GetByID(r.Context(), id); err != nil {
		a.repoError(w, err, "product")
		return
	}
	var req productDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	product := domain.Product{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		Brand:          strings.TrimSpace(req.Brand),
		Material:       strings.TrimSpace(req.Material),
		Size:           strings.TrimSpace(req.Size),
		Color:          strings.TrimSpace(req.Color),
		TargetAudience: req.TargetAudience,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		CreatedAt:      req.CreatedAt,
	}
	if product.Category == "" {
		product.Category = domain.DefaultCategory
	}
	if len(product.TargetAudience) == 0 {
		product.TargetAudience = []string{domain.AudienceGeneral}
	}
	if err := a.Products.Upsert(r.Context(), &product); err != nil {
		a.repoError(w, err, "product")
		return
	}
	a.json(w, http.StatusOK, toProductDTO(product))
}

func (a *App) ProductsGet(w http.ResponseWriter, r *http.Request) {
	product, err := a.Products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.repoError(w, err, "product")
		return
	}
	a.json(w, http.StatusOK, toProductDTO(*product))
}

func (a *App) ProductsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.repoError(w, err, "product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ProductsClear(w http.ResponseWriter, r *http.Request) {
	if err := a.Products.Clear(r.Context()); err != nil {
		a.repoError(w, err, "products")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProductsImport ingests an XLSX workbook uploaded as the "file" part of a
// multipart form.
func (a *App) ProductsImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file part is required")
		return
	}
	defer file.Close()

	products, err := importer.ParseProducts(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "workbook could not be parsed")
		return
	}
	for i := range products {
		if err := a.Products.Upsert(r.Context(), &products[i]); err != nil {
			a.repoError(w, err, "product")
			return
		}
	}
	a.Logger.Info().Int("count", len(products)).Msg("handlers: products imported")
	a.json(w, http.StatusOK, map[string]any{"imported": len(products)})
}

// ProductsImportTemplate serves the downloadable import workbook.
func (a *App) ProductsImportTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := importer.WriteTemplate(&buf); err != nil {
		a.Logger.Error().Err(err).Msg("handlers: import template")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build template")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="product_import_template.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}
