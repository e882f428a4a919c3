package storage

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDraftImage(t *testing.T) {
	store, err := NewDraftStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDraftStore returned error: %v", err)
	}

	payload := []byte("png-bytes")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	key, err := store.WriteDraftImage(context.Background(), "d-1", uri)
	if err != nil {
		t.Fatalf("WriteDraftImage returned error: %v", err)
	}
	if key != "drafts/d-1.png" {
		t.Fatalf("key = %q, want drafts/d-1.png", key)
	}

	data, err := os.ReadFile(filepath.Join(store.BasePath(), "drafts", "d-1.png"))
	if err != nil {
		t.Fatalf("read mirrored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("mirrored bytes = %q", data)
	}
}

func TestWriteDraftImageNilStore(t *testing.T) {
	var store *DraftStore
	key, err := store.WriteDraftImage(context.Background(), "d-1", "data:image/png;base64,AA==")
	if err != nil || key != "" {
		t.Fatalf("nil store write = (%q, %v), want no-op", key, err)
	}
}

func TestWriteDraftImageRejectsPlainURL(t *testing.T) {
	store, err := NewDraftStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDraftStore returned error: %v", err)
	}
	if _, err := store.WriteDraftImage(context.Background(), "d-1", "https://example.com/a.png"); err == nil {
		t.Fatalf("WriteDraftImage accepted a non data uri")
	}
}

func TestSanitizeKey(t *testing.T) {
	if _, err := sanitizeKey("../escape.png"); err == nil {
		t.Fatalf("sanitizeKey accepted traversal")
	}
	key, err := sanitizeKey("./drafts//a.png")
	if err != nil {
		t.Fatalf("sanitizeKey returned error: %v", err)
	}
	if key != "drafts/a.png" {
		t.Fatalf("key = %q, want drafts/a.png", key)
	}
}
