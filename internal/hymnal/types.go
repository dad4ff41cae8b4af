package hymnal

import (
	"time"
)

// Document is the structured result of processing one songbook.
type Document struct {
	Title    string   `json:"title"`
	Songs    []Song   `json:"songs"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes the extraction run that produced a Document.
type Metadata struct {
	TotalLines  int       `json:"total_lines"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Song is one numbered song with its verses and optional chorus.
// Number is kept as a string to preserve leading zeros from the source.
type Song struct {
	Number string   `json:"number"`
	Title  string   `json:"title"`
	Verses []Verse  `json:"verses"`
	Chorus []string `json:"chorus"`
}

// Verse holds the lines of a single stanza. Number is either the ordinal
// detected in the text or a synthesized sequential index.
type Verse struct {
	Number string   `json:"number"`
	Lines  []string `json:"lines"`
}

// CleanerConfig holds the tuning knobs for musical-notation removal.
type CleanerConfig struct {
	// MusicalPatterns are applied in order, each replacing matches with "".
	MusicalPatterns []string
	// MusicalCharThreshold is the density of notation characters above which
	// a line is discarded outright.
	MusicalCharThreshold float64
}

// DefaultMusicalPatterns target solfège shorthand, bar markers and
// punctuation runs left behind by scanned sheet music. Order matters.
var DefaultMusicalPatterns = []string{
	`[:]+[-—.:]+[|]*`,
	`[smtdfrl]+[,']*\s*[:—.-]+\s*[smtdfrl,']*`,
	`[|]+\s*[:.—-]+\s*[|]*`,
	`^[sd,':\-—|.\s]+$`,
	`[drmfslti]+[,']*\s*[:\-—.]+\s*[drmfslti,']*`,
	`\b[a-z][,']+\s*[:\-—.]+`,
	`[:\-—.]{3,}`,
	`^[|]+.*[|]+$`,
	`^\s*[:.—-]+\s*$`,
	`\b[smtdfrl]+[,']*[:\-—.]+[smtdfrl,']*\b`,
}

// DefaultCleanerConfig returns the empirically tuned defaults.
func DefaultCleanerConfig() *CleanerConfig {
	return &CleanerConfig{
		MusicalPatterns:      DefaultMusicalPatterns,
		MusicalCharThreshold: 0.6,
	}
}

// DetectorConfig holds the tuning knobs for structure detection. The
// thresholds are empirically tuned against Portuguese/English hymnals and are
// not derived from a formal grammar.
type DetectorConfig struct {
	ChorusKeywords []string
	MaxVerseLines  int
	MaxChorusLines int
}

// DefaultDetectorConfig returns the defaults used by the original hymnal runs.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		ChorusKeywords: []string{"CHORUS", "CORO", "REFRAIN", "CÔRO"},
		MaxVerseLines:  6,
		MaxChorusLines: 30,
	}
}
