package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"draftflow/internal/domain"
)

const (
	// maxDimension bounds the composed image on both axes. Larger sources are
	// downscaled uniformly; smaller ones are never upscaled.
	maxDimension = 800
	// barHeight is the watermark bar appended below the image when watermark
	// text is present.
	barHeight = 60

	gradientTopAlpha    = 0.7
	gradientBottomAlpha = 0.9

	defaultFontSize = 18
	defaultFontText = "#ffffff"
)

// ComposerOptions configures the compositor.
type ComposerOptions struct {
	// FontPath points at a TTF used for watermark text, typically one with
	// CJK coverage. When empty the embedded Go fonts are used; the documented
	// "Arial" family default maps to whichever face is configured here.
	FontPath string
	Loader   *ImageLoader
}

// Composer turns a product's source image into the composed draft image:
// bounded downscale, optional gradient watermark bar, rendered watermark
// text, PNG data URI output.
type Composer struct {
	loader  *ImageLoader
	regular *opentype.Font
	bold    *opentype.Font
}

// NewComposer prepares the drawing resources. A typeface that cannot be
// parsed means no text can ever be rendered, so the error wraps
// domain.ErrRenderingUnavailable and should abort the run.
func NewComposer(opts ComposerOptions) (*Composer, error) {
	loader := opts.Loader
	if loader == nil {
		loader = NewImageLoader(nil)
	}

	c := &Composer{loader: loader}
	if opts.FontPath != "" {
		raw, err := os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("%w: read font %s: %v", domain.ErrRenderingUnavailable, opts.FontPath, err)
		}
		parsed, err := opentype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parse font %s: %v", domain.ErrRenderingUnavailable, opts.FontPath, err)
		}
		c.regular, c.bold = parsed, parsed
		return c, nil
	}

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse embedded regular font: %v", domain.ErrRenderingUnavailable, err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse embedded bold font: %v", domain.ErrRenderingUnavailable, err)
	}
	c.regular, c.bold = regular, bold
	return c, nil
}

// Compose loads the product image, scales it to bounds and, when the style
// carries watermark text, appends the text bar. The watermark text is run
// through placeholder substitution with the product's variables. The result
// is a PNG data URI.
func (c *Composer) Compose(ctx context.Context, product *domain.Product, style *domain.ImageStyle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := c.loader.Load(product.ImageURL)
	if err != nil {
		return "", err
	}

	width, height := fitDimensions(src.Bounds().Dx(), src.Bounds().Dy())
	scaled := src
	if width != src.Bounds().Dx() || height != src.Bounds().Dy() {
		scaled = imaging.Resize(src, width, height, imaging.Lanczos)
	}

	bar := 0
	if style != nil && style.WatermarkText != "" {
		bar = barHeight
	}

	canvas := imaging.New(width, height+bar, color.NRGBA{})
	canvas = imaging.Paste(canvas, scaled, image.Pt(0, 0))

	if bar > 0 {
		fillGradientBar(canvas, height, width, bar)
		text := Substitute(style.WatermarkText, Bind(product))
		if err := c.drawWatermark(canvas, text, style.FontStyle, width, height, bar); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return "", fmt.Errorf("%w: encode png: %v", domain.ErrRenderingUnavailable, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fitDimensions applies the uniform min(800/w, 800/h) downscale. Images
// already inside the bound keep their natural size.
func fitDimensions(width, height int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	ratio := math.Min(float64(maxDimension)/float64(width), float64(maxDimension)/float64(height))
	return int(math.Round(float64(width) * ratio)), int(math.Round(float64(height) * ratio))
}

// fillGradientBar paints the translucent black bar, 70% opaque at the top
// edge fading to 90% at the bottom.
func fillGradientBar(canvas *image.NRGBA, top, width, bar int) {
	for y := 0; y < bar; y++ {
		alpha := gradientTopAlpha + (gradientBottomAlpha-gradientTopAlpha)*float64(y)/float64(bar)
		row := color.NRGBA{A: uint8(math.Round(alpha * 255))}
		rect := image.Rect(0, top+y, width, top+y+1)
		draw.Draw(canvas, rect, image.NewUniform(row), image.Point{}, draw.Src)
	}
}

func (c *Composer) drawWatermark(canvas *image.NRGBA, text string, style *domain.FontStyle, width, top, bar int) error {
	size := defaultFontSize
	weight := "bold"
	textColor := defaultFontText
	if style != nil {
		if style.Size > 0 {
			size = style.Size
		}
		if style.Weight != "" {
			weight = style.Weight
		}
		if style.Color != "" {
			textColor = style.Color
		}
	}

	source := c.bold
	if weight != "bold" {
		source = c.regular
	}
	face, err := opentype.NewFace(source, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("%w: build %dpt face: %v", domain.ErrRenderingUnavailable, size, err)
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(parseHexColor(textColor)),
		Face: face,
	}

	// Center horizontally and vertically within the bar.
	advance := drawer.MeasureString(text)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(width) - advance) / 2,
		Y: fixed.I(top+bar/2) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(text)
	return nil
}

// parseHexColor understands #rgb and #rrggbb; anything else renders white.
func parseHexColor(s string) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if len(s) == 0 || s[0] != '#' {
		return white
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return white
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		var v int
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02x", &v); err != nil {
			return white
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
