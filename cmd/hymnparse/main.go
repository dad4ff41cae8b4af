package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbarreto/hymnbook/internal/export"
	"github.com/mbarreto/hymnbook/internal/extract"
	"github.com/mbarreto/hymnbook/internal/hymnal"
)

func main() {
	var outputDir string

	flag.StringVar(&outputDir, "output", ".", "Directory for the generated files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s -output out hymnal.pdf\n", os.Args[0])
		os.Exit(1)
	}

	input := args[0]

	fmt.Println("=== Songbook Structure Extractor ===")
	fmt.Printf("Input: %s\n", input)
	fmt.Printf("Output directory: %s\n", outputDir)
	fmt.Println()

	extractor := extract.New(hymnal.NewCleaner(), nil)
	text, err := extractor.ExtractFile(input)
	if err != nil {
		log.Fatalf("Error extracting text: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatalf("No text extracted from %s", input)
	}
	fmt.Printf("Text extracted: %d characters\n", len(text))

	doc := hymnal.NewDetector().Detect(text)
	fmt.Printf("Found %d songs\n", len(doc.Songs))
	if doc.Title != "" {
		fmt.Printf("Book title: %s\n", doc.Title)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	exporter := export.NewExporter()

	outputs := []struct {
		name  string
		write func(*hymnal.Document, string) error
	}{
		{base + "_extracted.json", exporter.WriteJSON},
		{base + "_extracted.csv", exporter.WriteCSV},
		{base + "_extracted.md", exporter.WriteMarkdown},
	}
	for _, out := range outputs {
		path := filepath.Join(outputDir, out.name)
		if err := out.write(doc, path); err != nil {
			log.Fatalf("Error writing %s: %v", out.name, err)
		}
		fmt.Printf("Saved: %s\n", path)
	}

	fmt.Println("=== EXTRACTION COMPLETED ===")
}
