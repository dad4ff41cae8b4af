// Package extract acquires raw songbook text from source files and runs it
// through musical-notation cleanup before structure detection.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbarreto/hymnbook/internal/hymnal"
)

// OCR recognizes text in scanned documents. Implementations are optional:
// without one, extraction works only on files that already carry a text
// layer, mirroring the degraded mode of running without OCR tooling.
type OCR interface {
	ExtractText(path string) (string, error)
}

// Extractor pulls text out of PDF, HTML and plain-text files and cleans
// each page with the configured cleaner.
type Extractor struct {
	cleaner *hymnal.Cleaner
	ocr     OCR
}

// New creates an extractor. ocr may be nil; OCRAvailable reports the
// resulting capability.
func New(cleaner *hymnal.Cleaner, ocr OCR) *Extractor {
	return &Extractor{cleaner: cleaner, ocr: ocr}
}

// OCRAvailable reports whether scanned documents can be recognized.
func (e *Extractor) OCRAvailable() bool {
	return e.ocr != nil
}

// Supported reports whether a file name has an extension this extractor
// can handle.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".html", ".htm", ".txt":
		return true
	}
	return false
}

// ExtractFile dispatches on the file extension and returns cleaned text.
func (e *Extractor) ExtractFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return e.extractPDF(path)
	case ".html", ".htm":
		return e.extractHTML(path)
	case ".txt":
		return e.extractPlain(path)
	}
	return "", fmt.Errorf("unsupported file type: %s", path)
}

func (e *Extractor) extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.cleaner.Clean(string(data)), nil
}
