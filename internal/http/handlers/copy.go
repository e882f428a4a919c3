package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"draftflow/internal/domain"
	"draftflow/internal/middleware"
	"draftflow/internal/providers/copy"
)

type enhanceRequest struct {
	ProductID string `json:"productId"`
}

// CopyEnhance generates marketing copy for one product via the configured
// provider. The provider falls back internally, so the endpoint only fails on
// missing products or a misconfigured stack.
func (a *App) CopyEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProductID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "productId is required")
		return
	}
	product, err := a.Products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		a.repoError(w, err, "product")
		return
	}

	result, err := a.Enhancer.Enhance(r.Context(), copy.CopyRequest{
		Product: *product,
		Locale:  middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("product_id", product.ID).Msg("handlers: copy enhance")
		if errors.Is(err, domain.ErrProviderFailure) {
			a.error(w, http.StatusBadGateway, "provider_failure", "copy generation failed")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "copy generation failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"title":         result.Title,
		"sellingPoints": result.SellingPoints,
		"provider":      result.Provider,
		"metadata":      result.Metadata,
	})
}
