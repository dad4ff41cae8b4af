package hymnal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Detector reconstructs song boundaries, verse groupings and chorus blocks
// from a flat stream of cleaned text lines. Classification is a single pass
// over the lines with a small lookahead window; the only states are "no song
// open" and "song open". Every rule either advances the cursor or appends
// data, so detection is total: worst case is an empty song list.
type Detector struct {
	config        *DetectorConfig
	songHeader    *regexp.Regexp
	leadingNumber *regexp.Regexp
}

// NewDetector creates a detector with the default keywords and caps.
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultDetectorConfig())
}

// NewDetectorWithConfig creates a detector with custom keywords and caps.
func NewDetectorWithConfig(config *DetectorConfig) *Detector {
	return &Detector{
		config:        config,
		songHeader:    regexp.MustCompile(`^(\d+)\s+(.+)`),
		leadingNumber: regexp.MustCompile(`^\d+\s`),
	}
}

// Detect classifies every line of text and assembles the document structure.
func (d *Detector) Detect(text string) *Document {
	lines := strings.Split(text, "\n")

	doc := &Document{
		Songs: []Song{},
		Metadata: Metadata{
			TotalLines:  countNonBlank(lines),
			ExtractedAt: time.Now(),
		},
	}

	var currentSong *Song
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		// Song header: "<number> <title>", unless the lookahead says this is
		// the start of a numbered verse sequence.
		if m := d.songHeader.FindStringSubmatch(line); m != nil && utf8.RuneCountInString(m[2]) > 3 {
			if d.isSongHeader(lines, i) {
				if currentSong != nil {
					doc.Songs = append(doc.Songs, *currentSong)
				}
				currentSong = &Song{
					Number: m[1],
					Title:  strings.TrimSpace(m[2]),
					Verses: []Verse{},
					Chorus: []string{},
				}
				i++
				continue
			}
		}

		// Book-level main title, at most once and only before the first song.
		if d.isMainTitle(line, doc, currentSong) {
			doc.Title = line
			i++
			continue
		}

		// Chorus marker. A later marker within the same song replaces the
		// earlier block: only the last chorus wins.
		if d.isChorusLine(line) && currentSong != nil {
			chorus, next := d.extractChorus(lines, i)
			currentSong.Chorus = chorus
			i = next
			continue
		}

		// Numbered verse (also reached when the header lookahead rejected
		// the line above).
		if m := d.songHeader.FindStringSubmatch(line); m != nil && currentSong != nil {
			verse, next := d.extractNumberedVerse(lines, i, m[1], m[2])
			if verse != nil {
				currentSong.Verses = append(currentSong.Verses, *verse)
			}
			i = next
			continue
		}

		// Unnumbered verse fallback.
		if currentSong != nil && d.isPotentialVerse(line) {
			verse, next := d.extractUnnumberedVerse(lines, i, currentSong)
			if verse != nil {
				currentSong.Verses = append(currentSong.Verses, *verse)
			}
			i = next
			continue
		}

		i++
	}

	if currentSong != nil {
		doc.Songs = append(doc.Songs, *currentSong)
	}

	doc.Songs = d.filterValidSongs(doc.Songs)
	return doc
}

// isSongHeader disambiguates a "<number> <text>" line between a song header
// and the start of a numbered verse sequence. Page layouts use identical
// surface syntax for both; the heuristic is that verses are numbered
// consecutively, so 3 or more leading-number lines within a 5-line window
// mean verse sequence, not header.
func (d *Detector) isSongHeader(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return true
	}
	next := strings.TrimSpace(lines[i+1])
	if !d.leadingNumber.MatchString(next) {
		return true
	}

	numbered := 0
	for j := i; j < min(i+5, len(lines)); j++ {
		if d.leadingNumber.MatchString(strings.TrimSpace(lines[j])) {
			numbered++
		}
	}
	return numbered < 3
}

// isMainTitle recognizes the book heading: all-uppercase, longer than 10
// characters, before any song and before any earlier title.
func (d *Detector) isMainTitle(line string, doc *Document, currentSong *Song) bool {
	return isAllUpper(line) && utf8.RuneCountInString(line) > 10 &&
		doc.Title == "" && currentSong == nil
}

// isChorusLine reports whether a line contains one of the chorus keywords.
func (d *Detector) isChorusLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, keyword := range d.config.ChorusKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

// extractChorus collects the chorus block following a marker at position i.
// Collection stops at the line cap, at any leading-number line (the next
// verse or song) or at another chorus marker. Returns the collected lines
// and the position where the main scan resumes.
func (d *Detector) extractChorus(lines []string, i int) ([]string, int) {
	chorusLines := []string{}
	j := i + 1

	for j < len(lines) && len(chorusLines) < d.config.MaxChorusLines {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			j++
			continue
		}
		if d.leadingNumber.MatchString(line) {
			break
		}
		if d.isChorusLine(line) {
			break
		}
		chorusLines = append(chorusLines, line)
		j++
	}

	return chorusLines, j
}

// extractNumberedVerse builds a verse from a "<number> <text>" line. A line
// whose remainder runs past 15 words is not a verse start; otherwise
// subsequent lines are collected up to the verse cap, stopping at the next
// leading-number or chorus line. The verse is kept only when the joined text
// is longer than 10 characters; too-short collections are dropped silently
// and the cursor still moves past the consumed lines.
func (d *Detector) extractNumberedVerse(lines []string, i int, number, text string) (*Verse, int) {
	if len(strings.Fields(text)) > 15 {
		return nil, i + 1
	}

	verseLines := []string{text}
	j := i + 1

	for j < len(lines) && len(verseLines) < d.config.MaxVerseLines {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			j++
			continue
		}
		if d.leadingNumber.MatchString(line) {
			break
		}
		if d.isChorusLine(line) {
			break
		}
		verseLines = append(verseLines, line)
		j++
	}

	if len(strings.TrimSpace(strings.Join(verseLines, " "))) > 10 {
		return &Verse{Number: number, Lines: verseLines}, j
	}
	return nil, j
}

// isPotentialVerse reports whether a line can start an unnumbered verse:
// long enough, more than one word, no leading digit, not a heading.
func (d *Detector) isPotentialVerse(line string) bool {
	if utf8.RuneCountInString(line) <= 5 {
		return false
	}
	if line[0] >= '0' && line[0] <= '9' {
		return false
	}
	return len(strings.Fields(line)) > 1 && !isAllUpper(line)
}

// extractUnnumberedVerse collects a verse block without a leading ordinal,
// up to 4 lines. The verse is kept when it is the song's first verse or the
// joined text is substantial; its number is the next sequential index.
func (d *Detector) extractUnnumberedVerse(lines []string, i int, song *Song) (*Verse, int) {
	verseLines := []string{strings.TrimSpace(lines[i])}
	j := i + 1

	for j < len(lines) && len(verseLines) < 4 {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			j++
			continue
		}
		if d.leadingNumber.MatchString(line) {
			break
		}
		if d.isChorusLine(line) {
			break
		}
		verseLines = append(verseLines, line)
		j++
	}

	if len(song.Verses) == 0 || len(strings.Join(verseLines, " ")) > 15 {
		return &Verse{
			Number: strconv.Itoa(len(song.Verses) + 1),
			Lines:  verseLines,
		}, j
	}
	return nil, j
}

// filterValidSongs drops scaffolding: a song survives only with at least one
// verse or a non-empty chorus.
func (d *Detector) filterValidSongs(songs []Song) []Song {
	valid := []Song{}
	for _, song := range songs {
		if len(song.Verses) > 0 || len(song.Chorus) > 0 {
			valid = append(valid, song)
		}
	}
	return valid
}

func countNonBlank(lines []string) int {
	count := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// isAllUpper reports whether a line contains at least one letter and no
// lowercase letters.
func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
