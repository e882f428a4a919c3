// Package engine implements the template-driven draft generation engine:
// variable binding, placeholder substitution, default content generation,
// image composition, the batch assembly pipeline and template derivation.
package engine

import (
	"strings"

	"draftflow/internal/domain"
)

// Variables is the flat, named variable set a template resolves against.
// Values are strings except targetAudience, which is a string slice joined
// with "/" at substitution time. Callers may attach ad-hoc keys.
type Variables map[string]any

// Bind projects a product into its template variables. Pure and total: an
// empty audience set yields an empty audienceText and callers pick their own
// display fallback.
func Bind(product *domain.Product) Variables {
	return Variables{
		"name":           product.Name,
		"brand":          product.Brand,
		"category":       product.Category,
		"material":       product.Material,
		"size":           product.Size,
		"color":          product.Color,
		"targetAudience": product.TargetAudience,
		"audienceText":   strings.Join(product.TargetAudience, "/"),
	}
}

// lookupString renders the variable under key as replacement text. Slices
// join with "/"; anything missing or empty renders as "".
func (v Variables) lookupString(key string) (string, bool) {
	raw, ok := v[key]
	if !ok {
		return "", false
	}
	switch val := raw.(type) {
	case []string:
		return strings.Join(val, "/"), true
	case string:
		return val, true
	case nil:
		return "", true
	default:
		return "", false
	}
}
