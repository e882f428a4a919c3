package domain

import "time"

// Product is a raw merchant record as imported from a spreadsheet or entered
// manually. The engine treats it as immutable; only the product-editing API
// mutates it.
type Product struct {
	ID             string
	Name           string
	Category       string
	Brand          string
	Material       string
	Size           string
	Color          string
	TargetAudience []string
	ImageURL       string
	CreatedAt      time.Time
}

// Audience vocabulary. Values arrive from the import boundary and are not
// validated by the engine; the deriver uses them to recognize audience words
// inside generated text.
const (
	AudienceMen       = "men"
	AudienceWomen     = "women"
	AudienceChildren  = "children"
	AudienceElderly   = "elderly"
	AudienceTeenagers = "teenagers"
	AudienceGeneral   = "general"
)

// AudienceVocabulary lists every known audience tag.
var AudienceVocabulary = []string{
	AudienceMen,
	AudienceWomen,
	AudienceChildren,
	AudienceElderly,
	AudienceTeenagers,
	AudienceGeneral,
}

// CategoryOptions enumerates the supported listing categories with their
// display labels.
var CategoryOptions = map[string]string{
	"clothing":    "服装",
	"shoes":       "鞋靴",
	"bags":        "箱包",
	"accessories": "配饰",
	"home":        "家居",
	"digital":     "数码",
	"beauty":      "美妆",
	"food":        "食品",
	"sports":      "运动",
	"baby":        "母婴",
}

// DefaultCategory is assumed when an imported row omits the category.
const DefaultCategory = "clothing"
