// Package book orchestrates the extraction pipeline over a directory of
// songbook files: acquisition, structure detection, export and reporting.
package book

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mbarreto/hymnbook/internal/export"
	"github.com/mbarreto/hymnbook/internal/extract"
	"github.com/mbarreto/hymnbook/internal/hymnal"
	"github.com/mbarreto/hymnbook/internal/logger"
	"github.com/mbarreto/hymnbook/internal/report"
	"github.com/mbarreto/hymnbook/internal/utils"
)

// Store persists detected documents. *db.Manager implements it.
type Store interface {
	SaveDocument(ctx context.Context, sourceFile string, doc *hymnal.Document) error
}

// Cache remembers extraction results by source checksum. *cache.Manager
// implements it.
type Cache interface {
	Lookup(ctx context.Context, checksum string) (*hymnal.Document, bool, error)
	Store(ctx context.Context, path, checksum string, doc *hymnal.Document) error
}

// Processor runs the pipeline for every supported file in a directory.
// store and cache are optional capabilities; nil disables them.
type Processor struct {
	dir       string
	extractor *extract.Extractor
	detector  *hymnal.Detector
	exporter  *export.Exporter
	reporter  *report.Generator
	store     Store
	cache     Cache
}

// NewProcessor wires the pipeline with default cleaner and detector
// configuration.
func NewProcessor(dir string, store Store, cache Cache) *Processor {
	return &Processor{
		dir:       dir,
		extractor: extract.New(hymnal.NewCleaner(), nil),
		detector:  hymnal.NewDetector(),
		exporter:  export.NewExporter(),
		reporter:  report.NewGenerator(),
		store:     store,
		cache:     cache,
	}
}

// Reporter exposes the accumulated results for rendering after a run.
func (p *Processor) Reporter() *report.Generator {
	return p.reporter
}

// ProcessAll discovers and processes every supported file in the directory.
// Per-file failures become report entries and never abort the batch.
func (p *Processor) ProcessAll(ctx context.Context) error {
	if err := p.setupDirectory(); err != nil {
		return err
	}

	files, err := p.listFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info(fmt.Sprintf("no supported files found in %s", p.dir))
		return nil
	}

	logger.Info(fmt.Sprintf("found %d file(s) in %s", len(files), p.dir))
	for i, file := range files {
		logger.Info(fmt.Sprintf("processing [%d/%d]: %s", i+1, len(files), file))
		p.processFile(ctx, file)
	}
	return nil
}

func (p *Processor) setupDirectory() error {
	info, err := os.Stat(p.dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(p.dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", p.dir, err)
		}
		logger.Info(fmt.Sprintf("directory created: %s — place songbook files there and run again", p.dir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", p.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", p.dir)
	}
	return nil
}

func (p *Processor) listFiles() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", p.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && extract.Supported(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func (p *Processor) processFile(ctx context.Context, file string) {
	path := filepath.Join(p.dir, file)

	checksum, err := utils.FileChecksum(path)
	if err != nil {
		p.reporter.Add(report.Failed(file, err))
		return
	}

	if p.cache != nil {
		if _, found, err := p.cache.Lookup(ctx, checksum); err != nil {
			logger.Error(fmt.Sprintf("cache lookup failed for %s: %v", file, err))
		} else if found {
			logger.Info(fmt.Sprintf("unchanged since last run, skipping: %s", file))
			p.reporter.Add(report.Result{SourceFile: file, Status: report.StatusSkipped})
			return
		}
	}

	text, err := p.extractor.ExtractFile(path)
	if err != nil {
		p.reporter.Add(report.Failed(file, err))
		return
	}
	if strings.TrimSpace(text) == "" {
		p.reporter.Add(report.Failed(file, fmt.Errorf("no text extracted")))
		return
	}
	logger.Info(fmt.Sprintf("text extracted: %d characters", len(text)))

	doc := p.detector.Detect(text)
	logger.Info(fmt.Sprintf("found %d songs in %s", len(doc.Songs), file))

	outputDir, outputs, err := p.writeOutputs(file, doc)
	if err != nil {
		p.reporter.Add(report.Failed(file, err))
		return
	}

	if p.store != nil {
		if err := p.store.SaveDocument(ctx, file, doc); err != nil {
			logger.Error(fmt.Sprintf("failed to save %s to database: %v", file, err))
		}
	}
	if p.cache != nil {
		if err := p.cache.Store(ctx, path, checksum, doc); err != nil {
			logger.Error(fmt.Sprintf("failed to cache %s: %v", file, err))
		}
	}

	p.reporter.Add(report.Result{
		SourceFile: file,
		OutputDir:  outputDir,
		Files:      outputs,
		SongsFound: len(doc.Songs),
		Status:     report.StatusSuccess,
	})
}

// writeOutputs renders the document into a per-file output folder and
// returns the folder name and the files created.
func (p *Processor) writeOutputs(file string, doc *hymnal.Document) (string, []string, error) {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	outputDir := fmt.Sprintf("%s_extracted_%s", base, time.Now().Format("20060102_150405"))
	outputPath := filepath.Join(p.dir, outputDir)

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	outputs := []string{
		base + "_extracted.json",
		base + "_extracted.csv",
		base + "_extracted.md",
	}

	if err := p.exporter.WriteJSON(doc, filepath.Join(outputPath, outputs[0])); err != nil {
		return "", nil, err
	}
	if err := p.exporter.WriteCSV(doc, filepath.Join(outputPath, outputs[1])); err != nil {
		return "", nil, err
	}
	if err := p.exporter.WriteMarkdown(doc, filepath.Join(outputPath, outputs[2])); err != nil {
		return "", nil, err
	}

	return outputDir, outputs, nil
}
