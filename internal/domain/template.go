package domain

import (
	"fmt"
	"time"
)

// ElementType identifies one of the three draft fields a template can control.
type ElementType string

const (
	ElementMainImage     ElementType = "mainImage"
	ElementTitle         ElementType = "title"
	ElementSellingPoints ElementType = "sellingPoints"
)

// TemplateElement switches one draft field between the template-aware path
// (enabled) and default generation (disabled).
type TemplateElement struct {
	Type    ElementType `json:"type"`
	Enabled bool        `json:"enabled"`
}

// FontStyle describes the watermark typeface. All fields are optional; the
// compositor documents Arial/18/bold/#ffffff as the effective defaults.
type FontStyle struct {
	Family string `json:"fontFamily,omitempty"`
	Size   int    `json:"fontSize,omitempty"`
	Weight string `json:"fontWeight,omitempty"`
	Color  string `json:"color,omitempty"`
}

// ImageStyle configures the watermark bar appended below the product image.
// An empty WatermarkText means no bar is drawn and no space is reserved.
type ImageStyle struct {
	WatermarkText     string     `json:"watermarkText,omitempty"`
	WatermarkPosition string     `json:"watermarkPosition,omitempty"`
	BackgroundColor   string     `json:"backgroundColor,omitempty"`
	FontStyle         *FontStyle `json:"fontStyle,omitempty"`
}

// TemplateContent holds the per-field recipes. Fields are consulted only for
// element types marked enabled; a missing field falls back to default
// generation (silent by design, see the engine package).
type TemplateContent struct {
	TitleTemplate         string      `json:"titleTemplate,omitempty"`
	SellingPointsTemplate []string    `json:"sellingPointsTemplate,omitempty"`
	ImageStyle            *ImageStyle `json:"imageStyle,omitempty"`
}

// Template is a reusable, partially parameterized recipe for producing a
// draft listing.
type Template struct {
	ID        string
	Name      string
	Tags      []string
	Thumbnail string
	Elements  []TemplateElement
	Content   TemplateContent
	UsedCount int
	CreatedAt time.Time
}

// Validate rejects structurally malformed templates: unknown element types or
// more than one element per type. Enforced at the API boundary; the engine
// itself tolerates any template and falls back to defaults.
func (t *Template) Validate() error {
	seen := make(map[ElementType]bool, len(t.Elements))
	for _, el := range t.Elements {
		switch el.Type {
		case ElementMainImage, ElementTitle, ElementSellingPoints:
		default:
			return fmt.Errorf("%w: unknown element type %q", ErrTemplateMalformed, el.Type)
		}
		if seen[el.Type] {
			return fmt.Errorf("%w: duplicate element type %q", ErrTemplateMalformed, el.Type)
		}
		seen[el.Type] = true
	}
	return nil
}

// Element returns the element record for the given type, if present.
func (t *Template) Element(typ ElementType) (TemplateElement, bool) {
	for _, el := range t.Elements {
		if el.Type == typ {
			return el, true
		}
	}
	return TemplateElement{}, false
}
