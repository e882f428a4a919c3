// Package copy provides AI-assisted title and selling-point generation with a
// deterministic fallback. The engine never depends on this package; it is an
// optional collaborator invoked from the API layer.
package copy

import (
	"context"

	"draftflow/internal/domain"
	"draftflow/internal/engine"
)

// CopyRequest asks for marketing copy for one product.
type CopyRequest struct {
	Product domain.Product
	// Locale selects the prompt language, "zh" or "en".
	Locale string
}

// CopyResult is the generated copy plus provenance. Metadata carries the
// fallback reason when a degraded provider answered, so callers can observe
// degraded output instead of guessing.
type CopyResult struct {
	Title         string            `json:"title"`
	SellingPoints []string          `json:"selling_points"`
	Metadata      map[string]string `json:"metadata"`
	Provider      string            `json:"-"`
}

// Enhancer generates copy for a product.
type Enhancer interface {
	Enhance(ctx context.Context, req CopyRequest) (*CopyResult, error)
}

// StaticEnhancer answers with the engine's default content generator. It is
// the fallback behind the remote provider and never fails.
type StaticEnhancer struct{}

func NewStaticEnhancer() *StaticEnhancer {
	return &StaticEnhancer{}
}

func (s *StaticEnhancer) Enhance(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	vars := engine.Bind(&req.Product)
	return &CopyResult{
		Title:         engine.DefaultTitle(vars),
		SellingPoints: engine.DefaultSellingPoints(vars),
		Metadata:      map[string]string{"locale": req.Locale},
		Provider:      staticProviderName,
	}, nil
}

var _ Enhancer = (*StaticEnhancer)(nil)
