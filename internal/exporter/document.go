package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeFilename collapses every run of non-alphanumeric characters to a
// single underscore and trims underscores from both ends. An empty result
// becomes "report".
func SanitizeFilename(name string) string {
	s := strings.Trim(unsafeFilenameRe.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "report"
	}
	return s
}

// DocumentWriter writes finished documents into an output directory, creating
// it when missing.
type DocumentWriter struct {
	dir    string
	logger *slog.Logger
}

// NewDocumentWriter creates a writer for dir.
func NewDocumentWriter(dir string, logger *slog.Logger) *DocumentWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentWriter{dir: dir, logger: logger.With(slog.String("component", "document_writer"))}
}

// Dir returns the output directory.
func (w *DocumentWriter) Dir() string {
	return w.dir
}

// WriteHTML writes content to <dir>/<name>.html and returns the path.
func (w *DocumentWriter) WriteHTML(name, content string) (string, error) {
	return w.write(name+".html", []byte(content))
}

// WriteBytes writes raw content, e.g. a rendered PDF, to <dir>/<fileName>.
func (w *DocumentWriter) WriteBytes(fileName string, content []byte) (string, error) {
	return w.write(fileName, content)
}

func (w *DocumentWriter) write(fileName string, content []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, fileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}

	w.logger.Debug("document written",
		slog.String("path", path),
		slog.Int("bytes", len(content)))
	return path, nil
}
