package kbp

import "testing"

func karaokeLine(texts ...string) Line {
	line := Line{
		LineHeader: LineHeader{Align: "C", Style: "A"},
	}
	for _, text := range texts {
		line.Syllables = append(line.Syllables, Syllable{Text: text})
	}
	return line
}

func TestLineTextBasic(t *testing.T) {
	line := karaokeLine("Hel", "lo ", "world")
	if got := line.Text(TextOptions{}); got != "Hello world" {
		t.Errorf("expected plain join, got %q", got)
	}
	if got := line.Text(TextOptions{SyllableSeparator: "/"}); got != "Hel/lo /world" {
		t.Errorf("expected separator join, got %q", got)
	}
}

func TestLineTextEmpty(t *testing.T) {
	empty := Line{LineHeader: LineHeader{Align: "C", Style: "A"}}
	if got := empty.Text(TextOptions{SyllableSeparator: "/"}); got != "/" {
		t.Errorf("empty line should render as the separator, got %q", got)
	}

	oneBlank := karaokeLine("")
	if !oneBlank.IsEmpty() {
		t.Error("single empty syllable should make the line empty")
	}

	nonEmpty := karaokeLine("", "x")
	if nonEmpty.IsEmpty() {
		t.Error("two syllables should not be empty even if one is blank")
	}
}

func TestLineTextSpaceIsSeparator(t *testing.T) {
	line := karaokeLine("You ", "got  me", "now")
	got := line.Text(TextOptions{
		SyllableSeparator: "/",
		SpaceIsSeparator:  true,
	})
	// Trailing space already separates; inner run becomes underscores.
	if got != "You got__me/now" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestFileText(t *testing.T) {
	file := &File{
		Pages: []Page{
			{Lines: []Line{
				karaokeLine("One"),
				{LineHeader: LineHeader{Align: "C", Style: "A"}},
			}},
			{Lines: []Line{karaokeLine("Two")}},
		},
	}

	if got := file.Text(TextOptions{PageSeparator: "---"}); got != "One\n---\nTwo" {
		t.Errorf("unexpected text %q", got)
	}

	got := file.Text(TextOptions{PageSeparator: "---", IncludeEmpty: true})
	if got != "One\n\n---\nTwo" {
		t.Errorf("unexpected text with empty lines %q", got)
	}
}
