package engine

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"draftflow/internal/domain"
)

// Audience words are rewritten wherever they appear literally in generated
// text. "men/women" must come first so a joined audience pair collapses into
// a single token instead of two.
var (
	titleAudiencePattern  = regexp.MustCompile(`men/women|men|women|children|general|elderly|teenagers`)
	pointsAudiencePattern = regexp.MustCompile(`men|women|children|general|elderly|teenagers`)
)

// derivedImageStyle is the fixed placeholder watermark style attached to
// derived templates. It is independent of the source draft's rendering.
func derivedImageStyle() *domain.ImageStyle {
	return &domain.ImageStyle{
		WatermarkText:     "舒适面料 | 经典款式",
		WatermarkPosition: "bottom",
		BackgroundColor:   "rgba(0,0,0,0.8)",
		FontStyle: &domain.FontStyle{
			Family: "Arial",
			Size:   18,
			Weight: "bold",
			Color:  "#ffffff",
		},
	}
}

// DeriveTemplate rewrites the literal product values found in an existing
// draft back into placeholder tokens, producing a reusable template. The
// rewrite is best-effort, order-dependent textual substitution: an attribute
// value that happens to be a substring of unrelated text gets rewritten too.
func DeriveTemplate(name string, tags []string, elements []domain.TemplateElement, draft *domain.DraftResult, product *domain.Product, thumbnail string) *domain.Template {
	template := &domain.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Tags:      tags,
		Elements:  elements,
		UsedCount: 0,
		CreatedAt: time.Now(),
	}

	template.Thumbnail = thumbnail
	if template.Thumbnail == "" {
		template.Thumbnail = draft.MainImageDraftURL
	}

	if el, ok := template.Element(domain.ElementTitle); ok && el.Enabled {
		title := draft.Title
		title = replaceLiteral(title, product.Name, "{{name}}")
		title = replaceLiteral(title, product.Brand, "{{brand}}")
		title = replaceLiteral(title, product.Category, "{{category}}")
		title = titleAudiencePattern.ReplaceAllString(title, "{{audienceText}}")
		template.Content.TitleTemplate = title
	}

	if el, ok := template.Element(domain.ElementSellingPoints); ok && el.Enabled {
		points := make([]string, 0, len(draft.SellingPoints))
		for _, point := range draft.SellingPoints {
			point = replaceLiteral(point, product.Material, "{{material}}")
			point = replaceLiteral(point, product.Size, "{{size}}")
			point = replaceLiteral(point, product.Color, "{{color}}")
			point = pointsAudiencePattern.ReplaceAllString(point, "{{targetAudience}}")
			points = append(points, point)
		}
		template.Content.SellingPointsTemplate = points
	}

	if el, ok := template.Element(domain.ElementMainImage); ok && el.Enabled {
		template.Content.ImageStyle = derivedImageStyle()
	}

	return template
}

// replaceLiteral rewrites the first occurrence of value with token. Empty
// values are skipped: an empty needle would insert the token at the front of
// the text.
func replaceLiteral(s, value, token string) string {
	if value == "" {
		return s
	}
	return strings.Replace(s, value, token, 1)
}
