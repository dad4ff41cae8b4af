// Package export renders a detected document into the interchange formats
// consumed downstream: JSON, a spreadsheet-shaped CSV and Markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mbarreto/hymnbook/internal/hymnal"
)

const extractorVersion = "2.1"

// Exporter writes hymnal documents to files. It holds no state; one instance
// can serve any number of documents.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

type jsonVerse struct {
	Number string   `json:"number"`
	Lines  []string `json:"lines"`
}

type jsonSong struct {
	Number string               `json:"number"`
	Title  string               `json:"title"`
	Verses map[string]jsonVerse `json:"verses"`
	Chorus []string             `json:"chorus"`
}

type jsonContent struct {
	Title string     `json:"title"`
	Songs []jsonSong `json:"songs"`
}

type jsonMetadata struct {
	ExtractionDate   string `json:"extraction_date"`
	TotalSongs       int    `json:"total_songs"`
	Title            string `json:"title"`
	ExtractorVersion string `json:"extractor_version"`
}

type jsonExport struct {
	Metadata jsonMetadata `json:"metadata"`
	Content  jsonContent  `json:"content"`
}

// WriteJSON writes the document with a metadata envelope. Verses are keyed
// "estrofe_<number>" to stay compatible with earlier exports.
func (e *Exporter) WriteJSON(doc *hymnal.Document, filename string) error {
	out := jsonExport{
		Metadata: jsonMetadata{
			ExtractionDate:   time.Now().Format(time.RFC3339),
			TotalSongs:       len(doc.Songs),
			Title:            doc.Title,
			ExtractorVersion: extractorVersion,
		},
		Content: jsonContent{
			Title: doc.Title,
			Songs: make([]jsonSong, 0, len(doc.Songs)),
		},
	}

	for _, song := range doc.Songs {
		verses := make(map[string]jsonVerse, len(song.Verses))
		for _, verse := range song.Verses {
			verses[fmt.Sprintf("estrofe_%s", verse.Number)] = jsonVerse{
				Number: verse.Number,
				Lines:  verse.Lines,
			}
		}
		out.Content.Songs = append(out.Content.Songs, jsonSong{
			Number: song.Number,
			Title:  song.Title,
			Verses: verses,
			Chorus: song.Chorus,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// WriteCSV writes the spreadsheet layout: one row per song title, verse and
// chorus, verse lines joined with " / ".
func (e *Exporter) WriteCSV(doc *hymnal.Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Number", "Title", "Type", "Verse", "Content"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if doc.Title != "" {
		if err := w.Write([]string{"", "", "MAIN TITLE", "", doc.Title}); err != nil {
			return err
		}
	}

	for _, song := range doc.Songs {
		if err := w.Write([]string{song.Number, song.Title, "TITLE", "", ""}); err != nil {
			return err
		}
		for _, verse := range song.Verses {
			row := []string{song.Number, "", "VERSE", verse.Number, strings.Join(verse.Lines, " / ")}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		if len(song.Chorus) > 0 {
			row := []string{song.Number, "", "CHORUS", "", strings.Join(song.Chorus, " / ")}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// WriteMarkdown writes a readable document: book title heading, one section
// per song with stanza and chorus subsections.
func (e *Exporter) WriteMarkdown(doc *hymnal.Document, filename string) error {
	var b strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}

	for _, song := range doc.Songs {
		fmt.Fprintf(&b, "## %s. %s\n\n", song.Number, song.Title)

		for _, verse := range song.Verses {
			fmt.Fprintf(&b, "### Stanza %s\n\n", verse.Number)
			for _, line := range verse.Lines {
				fmt.Fprintf(&b, "%s  \n", line)
			}
			b.WriteString("\n")
		}

		if len(song.Chorus) > 0 {
			b.WriteString("### Chorus\n\n")
			for _, line := range song.Chorus {
				fmt.Fprintf(&b, "%s  \n", line)
			}
			b.WriteString("\n")
		}
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
