package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrImageLoad marks a source image that could not be fetched or decoded.
	// Per-item: a batch may skip the item and continue.
	ErrImageLoad = errors.New("image load failed")

	// ErrRenderingUnavailable marks a missing drawing capability (no usable
	// typeface, invalid canvas). Environment-fatal: it aborts the whole run.
	ErrRenderingUnavailable = errors.New("rendering unavailable")

	// ErrTemplateMalformed marks a structurally invalid template.
	ErrTemplateMalformed = errors.New("template malformed")

	// ErrProviderFailure marks an AI copy provider call that failed after the
	// static fallback was also unavailable.
	ErrProviderFailure = errors.New("provider failure")
)
