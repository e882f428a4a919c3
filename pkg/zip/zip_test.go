package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchive(t *testing.T) {
	data, err := Archive([]Entry{
		{Filename: "a.png", Data: []byte("one")},
		{Filename: "b.png", Data: []byte("two")},
	})
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive holds %d files, want 2", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if zr.File[0].Name != "a.png" || string(body) != "one" {
		t.Fatalf("first entry = %s %q", zr.File[0].Name, body)
	}
}

func TestDraftImageName(t *testing.T) {
	tests := []struct {
		title string
		n     int
		want  string
	}{
		{"优衣库 纯棉T恤", 1, "优衣库 纯棉T恤_1.png"},
		{"a/b:c", 2, "a_b_c_2.png"},
		{"   ", 3, "draft_3.png"},
	}
	for _, tc := range tests {
		if got := DraftImageName(tc.title, tc.n); got != tc.want {
			t.Fatalf("DraftImageName(%q, %d) = %q, want %q", tc.title, tc.n, got, tc.want)
		}
	}
}
