package report

import (
	"errors"
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	g := NewGenerator()
	g.Add(Result{
		SourceFile: "hymnal.pdf",
		OutputDir:  "hymnal_extracted_20240101_120000",
		Files:      []string{"hymnal_extracted.json", "hymnal_extracted.csv"},
		SongsFound: 42,
		Status:     StatusSuccess,
	})
	g.Add(Failed("broken.pdf", errors.New("no text extracted")))
	g.Add(Result{SourceFile: "unchanged.pdf", Status: StatusSkipped})

	summary := g.Summary()

	for _, want := range []string{
		"FINAL REPORT",
		"Files processed: 3",
		"Succeeded: 1",
		"Failed: 1",
		"hymnal.pdf - SUCCESS",
		"songs found: 42",
		"hymnal_extracted.json",
		"broken.pdf - ERROR: no text extracted",
		"unchanged.pdf - SKIPPED",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestSucceeded(t *testing.T) {
	g := NewGenerator()
	if g.Succeeded() != 0 {
		t.Error("empty generator reports successes")
	}

	g.Add(Result{SourceFile: "a.pdf", Status: StatusSuccess})
	g.Add(Result{SourceFile: "b.pdf", Status: StatusSuccess})
	g.Add(Failed("c.pdf", errors.New("boom")))

	if got := g.Succeeded(); got != 2 {
		t.Errorf("Succeeded = %d, want 2", got)
	}
	if got := len(g.Results()); got != 3 {
		t.Errorf("Results = %d entries, want 3", got)
	}
}
