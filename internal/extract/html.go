package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankRun = regexp.MustCompile(`\n{3,}`)

// extractHTML pulls the visible text out of a saved songbook page. Markup
// and scripting are discarded; the body text keeps its line structure so the
// detector sees the same layout a reader would.
func (e *Extractor) extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse html %s: %w", path, err)
	}

	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	var text string
	if body.Length() > 0 {
		text = body.Text()
	} else {
		text = doc.Text()
	}

	text = blankRun.ReplaceAllString(text, "\n\n")
	return e.cleaner.Clean(strings.TrimSpace(text)), nil
}
