// Package report accumulates per-file processing outcomes and renders the
// final run summary.
package report

import (
	"fmt"
	"strings"
)

// Statuses recorded for a processed file.
const (
	StatusSuccess = "SUCCESS"
	StatusSkipped = "SKIPPED"
)

// Result is the outcome of processing one source file.
type Result struct {
	SourceFile string   `json:"source_file"`
	OutputDir  string   `json:"output_dir,omitempty"`
	Files      []string `json:"files,omitempty"`
	SongsFound int      `json:"songs_found"`
	Status     string   `json:"status"`
}

// Failed builds an error result for a source file.
func Failed(sourceFile string, err error) Result {
	return Result{
		SourceFile: sourceFile,
		Status:     fmt.Sprintf("ERROR: %v", err),
	}
}

// Generator collects results over a run.
type Generator struct {
	results []Result
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Add appends a processing result.
func (g *Generator) Add(result Result) {
	g.results = append(g.results, result)
}

// Results returns the accumulated results in insertion order.
func (g *Generator) Results() []Result {
	return g.results
}

// Succeeded counts results with success status.
func (g *Generator) Succeeded() int {
	count := 0
	for _, r := range g.results {
		if r.Status == StatusSuccess {
			count++
		}
	}
	return count
}

// Summary renders the final report.
func (g *Generator) Summary() string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("FINAL REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Files processed: %d\n", len(g.results))
	fmt.Fprintf(&b, "Succeeded: %d\n", g.Succeeded())
	fmt.Fprintf(&b, "Failed: %d\n", g.failed())

	for _, r := range g.results {
		fmt.Fprintf(&b, "\n%s - %s\n", r.SourceFile, r.Status)
		if r.Status != StatusSuccess {
			continue
		}
		fmt.Fprintf(&b, "   songs found: %d\n", r.SongsFound)
		if r.OutputDir != "" {
			fmt.Fprintf(&b, "   output folder: %s\n", r.OutputDir)
		}
		for _, f := range r.Files {
			fmt.Fprintf(&b, "   - %s\n", f)
		}
	}

	return b.String()
}

func (g *Generator) failed() int {
	count := 0
	for _, r := range g.results {
		if r.Status != StatusSuccess && r.Status != StatusSkipped {
			count++
		}
	}
	return count
}
