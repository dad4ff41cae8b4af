package extract

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ajroetker/pdf"

	"github.com/mbarreto/hymnbook/internal/logger"
)

// minTextLayerChars is the amount of text below which a PDF is assumed to be
// a scanned image and handed to the OCR hook, when one is configured.
const minTextLayerChars = 100

// lineTolerance is the vertical distance (in PDF units) within which two
// text items are considered part of the same line.
const lineTolerance = 2.0

func (e *Extractor) extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse pdf %s: %w", path, err)
	}

	var pages []string
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text := pageText(page)
		if strings.TrimSpace(text) == "" {
			continue
		}

		cleaned := e.cleaner.Clean(text)
		if strings.TrimSpace(cleaned) != "" {
			pages = append(pages, cleaned)
		}
	}

	result := strings.Join(pages, "\n")
	if len(strings.TrimSpace(result)) >= minTextLayerChars || e.ocr == nil {
		return result, nil
	}

	// Insufficient text layer, fall back to recognition.
	logger.Debug(fmt.Sprintf("text layer too small for %s, applying OCR", path))
	recognized, err := e.ocr.ExtractText(path)
	if err != nil {
		logger.Error(fmt.Sprintf("OCR failed for %s: %v", path, err))
		return result, nil
	}

	cleaned := e.cleaner.Clean(recognized)
	if strings.TrimSpace(cleaned) == "" {
		return result, nil
	}
	return cleaned, nil
}

// pageText reassembles a page's positioned text items into lines: items are
// ordered top-to-bottom then left-to-right, a Y jump starts a new line and a
// horizontal gap wider than a fraction of the glyph size becomes a space.
func pageText(page pdf.Page) string {
	items := page.Content().Text
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Y != items[j].Y {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			prev := items[i-1]
			switch {
			case math.Abs(item.Y-prev.Y) > lineTolerance:
				b.WriteByte('\n')
			case item.X-(prev.X+prev.W) > item.FontSize*0.2:
				b.WriteByte(' ')
			}
		}
		b.WriteString(item.S)
	}
	return b.String()
}
