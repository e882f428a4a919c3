// Package zip builds the draft export archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Entry is one file to place in the archive.
type Entry struct {
	Filename string
	Data     []byte
}

// Archive writes the entries into an in-memory zip archive.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.Filename)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", entry.Filename, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", entry.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}

// DraftImageName builds the "{title}_{n}.png" name for an exported draft
// image, sanitizing characters that break archive extraction on common
// platforms.
func DraftImageName(title string, n int) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "draft"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	return fmt.Sprintf("%s_%d.png", replacer.Replace(title), n)
}
