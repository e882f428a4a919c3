package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"draftflow/internal/domain"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	composer, err := NewComposer(ComposerOptions{})
	if err != nil {
		t.Fatalf("NewComposer returned error: %v", err)
	}
	return composer
}

func pngDataURI(t *testing.T, width, height int) string {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 10, G: 120, B: 30, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("payload is not a png data URI: %.40q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(prefix):])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode payload image: %v", err)
	}
	return img
}

func TestComposeDimensions(t *testing.T) {
	composer := newTestComposer(t)
	watermark := &domain.ImageStyle{WatermarkText: "{{brand}} 精选"}

	cases := []struct {
		name       string
		srcW, srcH int
		style      *domain.ImageStyle
		wantW      int
		wantH      int
	}{
		{name: "downscale_both_over", srcW: 1600, srcH: 1200, wantW: 800, wantH: 600},
		{name: "downscale_one_axis", srcW: 1000, srcH: 200, wantW: 800, wantH: 160},
		{name: "never_upscale", srcW: 400, srcH: 300, wantW: 400, wantH: 300},
		{name: "exact_bound", srcW: 800, srcH: 800, wantW: 800, wantH: 800},
		{name: "watermark_bar_reserved", srcW: 400, srcH: 300, style: watermark, wantW: 400, wantH: 360},
		{name: "downscale_with_bar", srcW: 1600, srcH: 1600, style: watermark, wantW: 800, wantH: 860},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := sampleProduct()
			product.ImageURL = pngDataURI(t, tc.srcW, tc.srcH)

			payload, err := composer.Compose(context.Background(), product, tc.style)
			if err != nil {
				t.Fatalf("Compose returned error: %v", err)
			}
			got := decodeDataURI(t, payload)
			if got.Bounds().Dx() != tc.wantW || got.Bounds().Dy() != tc.wantH {
				t.Fatalf("dimensions = %dx%d, want %dx%d",
					got.Bounds().Dx(), got.Bounds().Dy(), tc.wantW, tc.wantH)
			}
		})
	}
}

func TestComposeNoBarWithoutWatermarkText(t *testing.T) {
	composer := newTestComposer(t)
	product := sampleProduct()
	product.ImageURL = pngDataURI(t, 200, 200)

	// An image style without watermark text reserves no bar space.
	payload, err := composer.Compose(context.Background(), product, &domain.ImageStyle{})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	got := decodeDataURI(t, payload)
	if got.Bounds().Dy() != 200 {
		t.Fatalf("height = %d, want 200", got.Bounds().Dy())
	}
}

func TestComposeImageLoadError(t *testing.T) {
	composer := newTestComposer(t)
	product := sampleProduct()
	product.ImageURL = "data:image/png;base64,not-base64!!!"

	_, err := composer.Compose(context.Background(), product, nil)
	if !errors.Is(err, domain.ErrImageLoad) {
		t.Fatalf("err = %v, want ErrImageLoad", err)
	}
}

func TestComposeCancelledContext(t *testing.T) {
	composer := newTestComposer(t)
	product := sampleProduct()
	product.ImageURL = pngDataURI(t, 100, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := composer.Compose(ctx, product, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewComposerBadFontPath(t *testing.T) {
	_, err := NewComposer(ComposerOptions{FontPath: "/nonexistent/font.ttf"})
	if !errors.Is(err, domain.ErrRenderingUnavailable) {
		t.Fatalf("err = %v, want ErrRenderingUnavailable", err)
	}
}

func TestFitDimensions(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{w: 1600, h: 800, wantW: 800, wantH: 400},
		{w: 800, h: 1600, wantW: 400, wantH: 800},
		{w: 801, h: 801, wantW: 800, wantH: 800},
		{w: 1, h: 1, wantW: 1, wantH: 1},
	}
	for _, tc := range cases {
		gotW, gotH := fitDimensions(tc.w, tc.h)
		if gotW != tc.wantW || gotH != tc.wantH {
			t.Fatalf("fitDimensions(%d, %d) = %d, %d, want %d, %d",
				tc.w, tc.h, gotW, gotH, tc.wantW, tc.wantH)
		}
	}
}
