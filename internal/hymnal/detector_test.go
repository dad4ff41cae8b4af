package hymnal

import (
	"fmt"
	"strings"
	"testing"
)

func TestDetect_SongBoundaries(t *testing.T) {
	input := "1 Amazing Grace\nHow sweet the sound\n2 Second Song\nMore words here\n"

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 2 {
		t.Fatalf("got %d songs, want 2: %+v", len(doc.Songs), doc.Songs)
	}
	if doc.Songs[0].Number != "1" || doc.Songs[0].Title != "Amazing Grace" {
		t.Errorf("song 0 = %q %q, want \"1\" \"Amazing Grace\"", doc.Songs[0].Number, doc.Songs[0].Title)
	}
	if doc.Songs[1].Number != "2" || doc.Songs[1].Title != "Second Song" {
		t.Errorf("song 1 = %q %q, want \"2\" \"Second Song\"", doc.Songs[1].Number, doc.Songs[1].Title)
	}
	if len(doc.Songs[0].Verses) == 0 || doc.Songs[0].Verses[0].Lines[0] != "How sweet the sound" {
		t.Errorf("song 0 verses = %+v, want the continuation line", doc.Songs[0].Verses)
	}
	if len(doc.Songs[1].Verses) == 0 || doc.Songs[1].Verses[0].Lines[0] != "More words here" {
		t.Errorf("song 1 verses = %+v, want the continuation line", doc.Songs[1].Verses)
	}
}

func TestDetect_MainTitle(t *testing.T) {
	input := "EVANGELICAL HYMNAL COLLECTION\n1 Amazing Grace\nHow sweet the sound\n"

	doc := NewDetector().Detect(input)

	if doc.Title != "EVANGELICAL HYMNAL COLLECTION" {
		t.Errorf("title = %q, want the uppercase heading", doc.Title)
	}
	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(doc.Songs))
	}
}

func TestDetect_MainTitleOnlyBeforeFirstSong(t *testing.T) {
	input := "1 Amazing Grace\nHow sweet the sound\nTHE GREAT HYMNAL COLLECTION\n"

	doc := NewDetector().Detect(input)

	if doc.Title != "" {
		t.Errorf("title = %q, want empty once a song is open", doc.Title)
	}
}

func TestDetect_VerseSequenceNotHeaders(t *testing.T) {
	// Four consecutive short numbered lines with no song open: the lookahead
	// must keep them from producing four songs, and any scaffolding created
	// from the tail of the window has no content and is filtered out.
	input := "1 rose of dawn\n2 light of day\n3 sun above\n4 moon below\n"

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 0 {
		t.Fatalf("got %d songs, want 0: %+v", len(doc.Songs), doc.Songs)
	}
}

func TestDetect_VerseSequenceUnderOpenSong(t *testing.T) {
	input := strings.Join([]string{
		"12 Morning Hymns",
		"Soft the evening falls",
		"1 rose of dawn",
		"2 light of day",
		"3 sun above",
		"4 moon below",
	}, "\n")

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1: %+v", len(doc.Songs), doc.Songs)
	}
	song := doc.Songs[0]
	if song.Number != "12" {
		t.Errorf("song number = %q, want \"12\"", song.Number)
	}
	if len(song.Verses) < 3 {
		t.Errorf("got %d verses, want the numbered lines absorbed as verses: %+v",
			len(song.Verses), song.Verses)
	}
}

func TestDetect_ChorusCapture(t *testing.T) {
	input := strings.Join([]string{
		"7 Great Is Love",
		"CHORUS",
		"Sing to the king",
		"Lift every voice",
		"Praise without end",
		"12 Now the day is over",
		"Night is drawing nigh",
	}, "\n")

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 2 {
		t.Fatalf("got %d songs, want 2: %+v", len(doc.Songs), doc.Songs)
	}
	chorus := doc.Songs[0].Chorus
	want := []string{"Sing to the king", "Lift every voice", "Praise without end"}
	if len(chorus) != len(want) {
		t.Fatalf("chorus = %v, want %v", chorus, want)
	}
	for i := range want {
		if chorus[i] != want[i] {
			t.Errorf("chorus[%d] = %q, want %q", i, chorus[i], want[i])
		}
	}
	// Processing resumed at the numbered line: it became the next song.
	if doc.Songs[1].Number != "12" {
		t.Errorf("song after chorus = %q, want \"12\"", doc.Songs[1].Number)
	}
}

func TestDetect_ChorusOverwrite(t *testing.T) {
	input := strings.Join([]string{
		"3 Songs of Joy",
		"CHORUS",
		"Alleluia we sing today",
		"CORO",
		"Glory we proclaim forever",
	}, "\n")

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(doc.Songs))
	}
	chorus := doc.Songs[0].Chorus
	if len(chorus) != 1 || chorus[0] != "Glory we proclaim forever" {
		t.Errorf("chorus = %v, want only the last block", chorus)
	}
}

func TestDetect_DiscardsEmptySongs(t *testing.T) {
	input := "5 Lonely Header Song\n"

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 0 {
		t.Errorf("got %d songs, want empty scaffolding dropped: %+v", len(doc.Songs), doc.Songs)
	}
}

func TestDetect_VerseLineCap(t *testing.T) {
	lines := []string{"9 Songs of the Field", "1 Oh,"}
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("walking through the golden field verse line %d", i))
	}

	doc := NewDetector().Detect(strings.Join(lines, "\n"))

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(doc.Songs))
	}
	verses := doc.Songs[0].Verses
	if len(verses) == 0 {
		t.Fatal("no verses detected")
	}
	if len(verses[0].Lines) != 6 {
		t.Errorf("verse has %d lines, want the cap of 6", len(verses[0].Lines))
	}
}

func TestDetect_ChorusLineCap(t *testing.T) {
	lines := []string{"4 Endless Refrain", "REFRAIN"}
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("glory be repeated singing line %d", i))
	}

	doc := NewDetector().Detect(strings.Join(lines, "\n"))

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(doc.Songs))
	}
	if len(doc.Songs[0].Chorus) != 30 {
		t.Errorf("chorus has %d lines, want the cap of 30", len(doc.Songs[0].Chorus))
	}
}

func TestDetect_LongNumberedLineIsNotVerseStart(t *testing.T) {
	// The numbered-sequence lookahead routes the over-long line to the verse
	// rule, where its word count disqualifies it as a verse start.
	long := strings.TrimSpace("1 " + strings.Repeat("word ", 16))
	input := strings.Join([]string{
		"8 Short Title Song",
		"Gentle is the falling rain",
		long,
		"2 bright morning",
		"3 silver evening",
	}, "\n")

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1: %+v", len(doc.Songs), doc.Songs)
	}
	if doc.Songs[0].Number != "8" {
		t.Errorf("song number = %q, want \"8\"", doc.Songs[0].Number)
	}
	for _, verse := range doc.Songs[0].Verses {
		if len(verse.Lines) > 0 && strings.HasPrefix(verse.Lines[0], "word word") {
			t.Errorf("over-long numbered line became a verse: %+v", verse)
		}
	}
}

func TestDetect_UnnumberedVerseNumbering(t *testing.T) {
	input := strings.Join([]string{
		"2 Quiet Waters",
		"Beside the quiet waters he leads me on",
		"",
		"Through valleys deep and shadows long he walks with me always",
	}, "\n")

	doc := NewDetector().Detect(input)

	if len(doc.Songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(doc.Songs))
	}
	verses := doc.Songs[0].Verses
	if len(verses) != 1 {
		t.Fatalf("got %d verses, want 1: %+v", len(verses), verses)
	}
	if verses[0].Number != "1" {
		t.Errorf("verse number = %q, want synthesized \"1\"", verses[0].Number)
	}
	if len(verses[0].Lines) != 2 {
		t.Errorf("verse lines = %v, want blank line skipped between the two", verses[0].Lines)
	}
}

func TestDetect_MetadataCountsNonBlankLines(t *testing.T) {
	input := "1 Amazing Grace\n\nHow sweet the sound\n\n\n"

	doc := NewDetector().Detect(input)

	if doc.Metadata.TotalLines != 2 {
		t.Errorf("total lines = %d, want 2", doc.Metadata.TotalLines)
	}
	if doc.Metadata.ExtractedAt.IsZero() {
		t.Error("extraction timestamp not set")
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	doc := NewDetector().Detect("")

	if doc.Title != "" || len(doc.Songs) != 0 {
		t.Errorf("empty input produced structure: %+v", doc)
	}
}
