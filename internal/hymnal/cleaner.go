package hymnal

import (
	"regexp"
	"strings"
)

// Cleaner strips musical-notation noise from extracted songbook text while
// keeping prose lines intact. Cleaning is pure: same input and config always
// produce the same output, and no input can make it fail.
type Cleaner struct {
	config          *CleanerConfig
	musicalPatterns []*regexp.Regexp
	musicalChars    *regexp.Regexp
	letterRun       *regexp.Regexp
}

// NewCleaner creates a cleaner with the default notation patterns.
func NewCleaner() *Cleaner {
	return NewCleanerWithConfig(DefaultCleanerConfig())
}

// NewCleanerWithConfig creates a cleaner with custom patterns and threshold.
func NewCleanerWithConfig(config *CleanerConfig) *Cleaner {
	patterns := make([]*regexp.Regexp, 0, len(config.MusicalPatterns))
	for _, p := range config.MusicalPatterns {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+p))
	}

	return &Cleaner{
		config:          config,
		musicalPatterns: patterns,
		// Solfège shorthand plus the punctuation used between pitch symbols.
		musicalChars: regexp.MustCompile(`(?i)[:\-—|,'smdftlri]`),
		letterRun:    regexp.MustCompile(`[a-zA-Z]{3,}`),
	}
}

// Clean removes musical notation line by line and returns the surviving
// prose rejoined with newlines, in original order.
func (c *Cleaner) Clean(text string) string {
	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		original := strings.TrimSpace(line)
		if original == "" {
			continue
		}

		if c.isMusicalNotation(original) {
			continue
		}

		cleaned := c.applyPatterns(original)
		if c.hasValidContent(cleaned) {
			cleanedLines = append(cleanedLines, cleaned)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

// isMusicalNotation reports whether a line is predominantly notation
// characters. Lines with no non-space characters are never flagged.
func (c *Cleaner) isMusicalNotation(line string) bool {
	totalChars := len(strings.ReplaceAll(line, " ", ""))
	if totalChars == 0 {
		return false
	}

	musicalChars := len(c.musicalChars.FindAllString(line, -1))
	return float64(musicalChars)/float64(totalChars) > c.config.MusicalCharThreshold
}

// applyPatterns runs the ordered substitution list and collapses whitespace.
func (c *Cleaner) applyPatterns(line string) string {
	cleaned := line
	for _, pattern := range c.musicalPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	return strings.Join(strings.Fields(cleaned), " ")
}

// hasValidContent is the final guard against notation fragments that survive
// substitution: a kept line must be longer than 2 characters and contain at
// least one run of 3 consecutive letters.
func (c *Cleaner) hasValidContent(line string) bool {
	if len(strings.TrimSpace(line)) <= 2 {
		return false
	}
	return c.letterRun.MatchString(line)
}
