package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"draftflow/internal/domain"
)

// ProgressFunc receives the 1-based completed count after each item is fully
// assembled. Calls are strictly increasing, once per item.
type ProgressFunc func(completed, total int)

// Options tunes one batch run.
type Options struct {
	OnProgress ProgressFunc
	// FailureMode decides whether a per-item image failure aborts the batch
	// (the default) or records a placeholder draft and continues.
	FailureMode domain.FailureMode
}

// Pipeline orchestrates draft assembly over a product list. Items are
// processed strictly sequentially: the compositor holds decode and draw
// resources that are not shared across items, and sequential processing keeps
// the progress signal monotonic.
type Pipeline struct {
	composer *Composer
	logger   zerolog.Logger
	newID    func() string
	now      func() time.Time
}

// NewPipeline builds a pipeline around the given compositor.
func NewPipeline(composer *Composer, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		composer: composer,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// GenerateMany produces one draft per product in input order using default
// generation for every field. Cancellation is cooperative: the context is
// checked between items.
func (p *Pipeline) GenerateMany(ctx context.Context, products []domain.Product, opts Options) ([]domain.DraftResult, error) {
	return p.run(ctx, products, nil, opts)
}

// ApplyMany produces one draft per product in input order using the
// template-aware path for enabled elements and default generation for
// disabled ones. Incrementing the template's usedCount is the caller's
// responsibility, once per call.
func (p *Pipeline) ApplyMany(ctx context.Context, products []domain.Product, template *domain.Template, opts Options) ([]domain.DraftResult, error) {
	if template == nil {
		return nil, errors.New("pipeline: template is required")
	}
	return p.run(ctx, products, template, opts)
}

func (p *Pipeline) run(ctx context.Context, products []domain.Product, template *domain.Template, opts Options) ([]domain.DraftResult, error) {
	total := len(products)
	results := make([]domain.DraftResult, 0, total)

	for i := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		product := &products[i]
		draft, err := p.assemble(ctx, product, template, opts.FailureMode)
		if err != nil {
			return nil, fmt.Errorf("draft for product %s: %w", product.ID, err)
		}
		results = append(results, draft)

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, total)
		}
	}
	return results, nil
}

func (p *Pipeline) assemble(ctx context.Context, product *domain.Product, template *domain.Template, mode domain.FailureMode) (domain.DraftResult, error) {
	vars := Bind(product)

	var (
		imageURL           string
		title              string
		points             []string
		haveImage          bool
		haveTitle          bool
		havePoints         bool
		generationProblems []string
	)

	composeField := func(style *domain.ImageStyle) error {
		url, err := p.composer.Compose(ctx, product, style)
		if err == nil {
			imageURL = url
			return nil
		}
		if !errors.Is(err, domain.ErrImageLoad) || mode != domain.FailureSkip {
			return err
		}
		// Skip policy: the image field stays empty and the draft carries a
		// visible failure marker.
		p.logger.Warn().Str("product_id", product.ID).Err(err).Msg("pipeline: image skipped")
		generationProblems = append(generationProblems, err.Error())
		return nil
	}

	if template != nil {
		for _, el := range template.Elements {
			if !el.Enabled {
				continue
			}
			switch el.Type {
			case domain.ElementMainImage:
				if err := composeField(template.Content.ImageStyle); err != nil {
					return domain.DraftResult{}, err
				}
				haveImage = true
			case domain.ElementTitle:
				title = p.titleFromTemplate(product, vars, template.Content.TitleTemplate)
				haveTitle = true
			case domain.ElementSellingPoints:
				points = p.pointsFromTemplate(product, vars, template.Content.SellingPointsTemplate)
				havePoints = true
			}
		}

		// A template with no element records at all still guarantees a full
		// draft: every field goes through the template-aware path.
		if len(template.Elements) == 0 {
			title = p.titleFromTemplate(product, vars, template.Content.TitleTemplate)
			points = p.pointsFromTemplate(product, vars, template.Content.SellingPointsTemplate)
			if err := composeField(template.Content.ImageStyle); err != nil {
				return domain.DraftResult{}, err
			}
			haveImage, haveTitle, havePoints = true, true, true
		}
	}

	// Disabled or absent elements fall back to default generation, never to
	// an empty field.
	if !haveImage {
		if err := composeField(nil); err != nil {
			return domain.DraftResult{}, err
		}
	}
	if !haveTitle {
		title = DefaultTitle(vars)
	}
	if !havePoints {
		points = DefaultSellingPoints(vars)
	}

	return domain.DraftResult{
		ID:                p.newID(),
		ProductID:         product.ID,
		MainImageDraftURL: imageURL,
		Title:             title,
		SellingPoints:     points,
		Selected:          false,
		GenerationError:   strings.Join(generationProblems, "; "),
		CreatedAt:         p.now(),
	}, nil
}

// titleFromTemplate resolves the title template, falling back to the default
// title when the template is absent or resolves to blank.
func (p *Pipeline) titleFromTemplate(product *domain.Product, vars Variables, tmpl string) string {
	if tmpl == "" {
		return DefaultTitle(vars)
	}
	res := Resolve(tmpl, vars)
	if res.Degraded() {
		p.logger.Warn().
			Str("product_id", product.ID).
			Strs("unresolved", res.Unresolved).
			Msg("pipeline: title template has unresolved tokens")
	}
	if strings.TrimSpace(res.Text) == "" {
		return DefaultTitle(vars)
	}
	return res.Text
}

// pointsFromTemplate resolves each selling-point template; an entry that
// resolves to empty is replaced by the first default phrase.
func (p *Pipeline) pointsFromTemplate(product *domain.Product, vars Variables, templates []string) []string {
	if len(templates) == 0 {
		return DefaultSellingPoints(vars)
	}
	points := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		res := Resolve(tmpl, vars)
		if res.Degraded() {
			p.logger.Warn().
				Str("product_id", product.ID).
				Strs("unresolved", res.Unresolved).
				Msg("pipeline: selling-point template has unresolved tokens")
		}
		if res.Text == "" {
			points = append(points, DefaultSellingPoints(vars)[0])
			continue
		}
		points = append(points, res.Text)
	}
	return points
}
