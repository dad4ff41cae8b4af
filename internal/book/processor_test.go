package book

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbarreto/hymnbook/internal/hymnal"
	"github.com/mbarreto/hymnbook/internal/report"
)

const sampleBook = `EVANGELICAL HYMNAL COLLECTION
1 Amazing Grace
Amazing grace how sweet the sound
That saved a wretch like me
CHORUS
Praise God from whom all blessings flow
2 Holy Holy Holy
Holy holy holy Lord God almighty
Early in the morning our song shall rise
`

type fakeStore struct {
	saved map[string]*hymnal.Document
}

func (s *fakeStore) SaveDocument(_ context.Context, sourceFile string, doc *hymnal.Document) error {
	if s.saved == nil {
		s.saved = map[string]*hymnal.Document{}
	}
	s.saved[sourceFile] = doc
	return nil
}

type fakeCache struct {
	docs   map[string]*hymnal.Document
	stored int
}

func (c *fakeCache) Lookup(_ context.Context, checksum string) (*hymnal.Document, bool, error) {
	doc, ok := c.docs[checksum]
	return doc, ok, nil
}

func (c *fakeCache) Store(_ context.Context, _, checksum string, doc *hymnal.Document) error {
	if c.docs == nil {
		c.docs = map[string]*hymnal.Document{}
	}
	c.docs[checksum] = doc
	c.stored++
	return nil
}

func TestProcessAll_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hymnal.txt"), []byte(sampleBook), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(dir, nil, nil)
	if err := p.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	results := p.Reporter().Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	r := results[0]
	if r.Status != report.StatusSuccess {
		t.Fatalf("status = %q, want success", r.Status)
	}
	if r.SongsFound != 2 {
		t.Errorf("songs found = %d, want 2", r.SongsFound)
	}

	outputPath := filepath.Join(dir, r.OutputDir)
	for _, f := range r.Files {
		if _, err := os.Stat(filepath.Join(outputPath, f)); err != nil {
			t.Errorf("expected output file %s: %v", f, err)
		}
	}
	if !strings.HasPrefix(r.OutputDir, "hymnal_extracted_") {
		t.Errorf("output dir = %q, want hymnal_extracted_<timestamp>", r.OutputDir)
	}
}

func TestProcessAll_SavesToStore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hymnal.txt"), []byte(sampleBook), 0644); err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{}
	p := NewProcessor(dir, store, nil)
	if err := p.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	doc, ok := store.saved["hymnal.txt"]
	if !ok {
		t.Fatal("document not saved to store")
	}
	if len(doc.Songs) != 2 {
		t.Errorf("stored %d songs, want 2", len(doc.Songs))
	}
}

func TestProcessAll_SkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hymnal.txt"), []byte(sampleBook), 0644); err != nil {
		t.Fatal(err)
	}

	cache := &fakeCache{}
	first := NewProcessor(dir, nil, cache)
	if err := first.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if cache.stored != 1 {
		t.Fatalf("cache stored %d documents, want 1", cache.stored)
	}

	second := NewProcessor(dir, nil, cache)
	if err := second.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	var statuses []string
	for _, r := range second.Reporter().Results() {
		if r.SourceFile == "hymnal.txt" {
			statuses = append(statuses, r.Status)
		}
	}
	if len(statuses) != 1 || statuses[0] != report.StatusSkipped {
		t.Errorf("second run statuses = %v, want one SKIPPED", statuses)
	}
}

func TestProcessAll_ReportsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	// Nothing but notation: cleaning leaves no text.
	if err := os.WriteFile(filepath.Join(dir, "noise.txt"), []byte("d:-|m:-|s:-\n:-:-:-\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(dir, nil, nil)
	if err := p.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	results := p.Reporter().Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !strings.Contains(results[0].Status, "no text extracted") {
		t.Errorf("status = %q, want extraction failure", results[0].Status)
	}
}

func TestProcessAll_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")

	p := NewProcessor(dir, nil, nil)
	if err := p.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
	if len(p.Reporter().Results()) != 0 {
		t.Errorf("unexpected results for empty run: %+v", p.Reporter().Results())
	}
}

func TestProcessAll_IgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.docx"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(dir, nil, nil)
	if err := p.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(p.Reporter().Results()) != 0 {
		t.Errorf("unsupported file was processed: %+v", p.Reporter().Results())
	}
}
