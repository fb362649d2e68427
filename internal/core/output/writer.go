package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"discogs-cli/internal/config"
	"discogs-cli/internal/shared"
)

// Subdirectories created under the output root.
const (
	ResultsDir = "results"
	TracksDir  = "tracks"
	LogsDir    = "logs"
)

// Writer persists search results, track listings, and session logs under
// a single output root.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir}
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// EnsureDirs creates the output root and its subdirectories.
func (w *Writer) EnsureDirs() error {
	for _, sub := range []string{ResultsDir, TracksDir, LogsDir} {
		if err := config.CreateDirIfNotExists(filepath.Join(w.root, sub)); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", sub, err)
		}
	}
	return nil
}

// ResultFile is the envelope written for every search/tracks invocation.
type ResultFile struct {
	Request string            `json:"request"`
	Params  map[string]string `json:"params"`
	Results interface{}       `json:"results"`
}

// WriteResultJSON serializes a result payload to
// results/<requestType>_<timestamp>.json and returns the written path.
func (w *Writer) WriteResultJSON(requestType string, params map[string]string, payload interface{}) (string, error) {
	envelope := ResultFile{
		Request: requestType,
		Params:  params,
		Results: payload,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", requestType, time.Now().Format("20060102_150405"))
	path := filepath.Join(w.root, ResultsDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}
	return path, nil
}

// TracklistExt maps an output format to its file extension.
func TracklistExt(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown":
		return ".md"
	default:
		return ".txt"
	}
}

// WriteTracklist writes a rendered track listing to
// tracks/<artist - title (id)><ext> with a sanitized filename.
func (w *Writer) WriteTracklist(artist, title, id, format, rendered string) (string, error) {
	base := shared.SanitizeFileName(fmt.Sprintf("%s - %s (%s)", artist, title, id))
	path := filepath.Join(w.root, TracksDir, base+TracklistExt(format))
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return "", fmt.Errorf("failed to write track listing: %w", err)
	}
	return path, nil
}

// Clean removes regular files inside the output subdirectories. The
// directories themselves are kept.
func (w *Writer) Clean() (int, error) {
	removed := 0
	for _, sub := range []string{ResultsDir, TracksDir, LogsDir} {
		dir := filepath.Join(w.root, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}
