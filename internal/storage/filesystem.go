// Package storage mirrors generated draft images onto the local filesystem so
// operators can inspect batch output without going through the export API.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DraftStore persists draft image bytes under a base directory. Draft images
// travel through the system as data URIs; the store decodes them to real PNG
// files keyed by draft id.
type DraftStore struct {
	basePath string
}

// NewDraftStore initializes a DraftStore rooted at basePath.
func NewDraftStore(basePath string) (*DraftStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &DraftStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *DraftStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// WriteDraftImage decodes a PNG data URI and writes it to
// drafts/{draftID}.png. Returns the relative key of the written file. A nil
// store or an empty data URI is a no-op, so callers can keep mirroring
// optional.
func (s *DraftStore) WriteDraftImage(ctx context.Context, draftID, dataURI string) (string, error) {
	if s == nil || dataURI == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	key, err := sanitizeKey("drafts/" + draftID + ".png")
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return key, nil
}

// DecodeDataURI extracts the payload bytes of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	_, encoded, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, errors.New("storage: not a base64 data uri")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("storage: decode data uri: %w", err)
	}
	return data, nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
