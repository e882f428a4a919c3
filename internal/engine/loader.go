package engine

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"

	"draftflow/internal/domain"
)

const (
	loaderTimeout     = 10 * time.Second
	loaderMaxBytes    = 20 << 20
	loaderCacheTTL    = 5 * time.Minute
	loaderCacheSweep  = 10 * time.Minute
	dataURIMarker     = "data:"
	dataURIBase64Hint = ";base64,"
)

// ImageLoader resolves a product's image reference into a decoded image.
// References may be data URIs, local file paths or http(s) URLs. Every
// failure wraps domain.ErrImageLoad so the pipeline can tell per-item
// problems from environment ones.
type ImageLoader struct {
	client *http.Client
	cache  *gocache.Cache
}

// NewImageLoader builds a loader with a shared HTTP client and a short-lived
// decode cache for remote sources.
func NewImageLoader(client *http.Client) *ImageLoader {
	if client == nil {
		client = &http.Client{Timeout: loaderTimeout}
	}
	return &ImageLoader{
		client: client,
		cache:  gocache.New(loaderCacheTTL, loaderCacheSweep),
	}
}

// Load decodes the image behind ref.
func (l *ImageLoader) Load(ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, dataURIMarker):
		return l.loadDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.loadRemote(ref)
	case strings.TrimSpace(ref) == "":
		return nil, fmt.Errorf("%w: empty image reference", domain.ErrImageLoad)
	default:
		return l.loadFile(ref)
	}
}

func (l *ImageLoader) loadDataURI(ref string) (image.Image, error) {
	idx := strings.Index(ref, dataURIBase64Hint)
	if idx < 0 {
		return nil, fmt.Errorf("%w: data URI is not base64 encoded", domain.ErrImageLoad)
	}
	raw, err := base64.StdEncoding.DecodeString(ref[idx+len(dataURIBase64Hint):])
	if err != nil {
		return nil, fmt.Errorf("%w: decode data URI: %v", domain.ErrImageLoad, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrImageLoad, err)
	}
	return img, nil
}

func (l *ImageLoader) loadRemote(url string) (image.Image, error) {
	if cached, ok := l.cache.Get(url); ok {
		return cached.(image.Image), nil
	}
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrImageLoad, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %d", domain.ErrImageLoad, url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, loaderMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrImageLoad, url, err)
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrImageLoad, url, err)
	}
	l.cache.SetDefault(url, img)
	return img, nil
}

func (l *ImageLoader) loadFile(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrImageLoad, path, err)
	}
	return img, nil
}
