package kbp

import (
	"regexp"
	"strings"
)

// LineHeader carries a display line's placement, style letter, and overall
// timing. Times are centiseconds.
type LineHeader struct {
	Align    string // L, C, or R
	Style    string // single letter; lowercase selects the fixed variant
	Start    int
	End      int
	Right    int
	Down     int
	Rotation int
}

// IsFixed reports whether the line uses the non-wiped variant of its style.
func (h LineHeader) IsFixed() bool {
	return h.Style >= "a" && h.Style <= "z"
}

// Syllable is one wipe-timed fragment of a line. Times are centiseconds.
type Syllable struct {
	Text  string
	Start int
	End   int
	Wipe  int
}

func (s Syllable) IsEmpty() bool {
	return s.Text == ""
}

// Line is a header plus its syllables in declaration order.
type Line struct {
	LineHeader
	Syllables []Syllable
}

// IsEmpty reports whether the line displays nothing: no syllables, or a
// single empty-text syllable.
func (l Line) IsEmpty() bool {
	return len(l.Syllables) == 0 ||
		(len(l.Syllables) == 1 && l.Syllables[0].IsEmpty())
}

// Page is one PAGEV2 block: its remove/display transition ids plus its lines.
// Empty transition ids mean line-by-line.
type Page struct {
	Remove  string
	Display string
	Lines   []Line
}

// Start is the earliest start among the page's non-empty lines.
func (p Page) Start() int {
	start := 0
	found := false
	for _, l := range p.Lines {
		if l.IsEmpty() {
			continue
		}
		if !found || l.LineHeader.Start < start {
			start = l.LineHeader.Start
			found = true
		}
	}
	return start
}

// End is the latest end among the page's lines.
func (p Page) End() int {
	end := 0
	for _, l := range p.Lines {
		if l.LineHeader.End > end {
			end = l.LineHeader.End
		}
	}
	return end
}

// Image is one IMAGE block of the slideshow. Times are centiseconds.
type Image struct {
	Start         int
	End           int
	Filename      string
	LeaveOnScreen int
}

// Only the last three header fields may be negative.
var lineHeaderRegex = regexp.MustCompile(
	`^[LCR]/[a-zA-Z](/\d+){2}(/-?\d+){3}$`,
)

// syllableSurrogate stands in for a literal "/" inside syllable text, since
// "/" delimits the record's fields.
const syllableSurrogate = "{-}"

// parsePage reads one PAGEV2 block. A header line opens a display line, a
// blank line closes it, and an FX line before any header sets the page's
// transitions. Other non-blank lines are syllable records. start is the
// 1-based line number of the first block line. defaultWipe, when non-zero,
// replaces a syllable wipe id of 0.
func parsePage(block []string, start, defaultWipe int) (Page, error) {
	page := Page{}
	var header *LineHeader
	var syllables []Syllable
	for i, line := range block {
		num := start + i
		switch {
		case header == nil && lineHeaderRegex.MatchString(line):
			h, err := parseLineHeader(line, num)
			if err != nil {
				return page, err
			}
			header = &h
		case line == "" && header != nil:
			page.Lines = append(page.Lines, Line{
				LineHeader: *header,
				Syllables:  syllables,
			})
			syllables = nil
			header = nil
		case header == nil && strings.HasPrefix(line, "FX/"):
			fields := strings.Split(line, "/")
			if len(fields) >= 3 {
				page.Remove, page.Display = fields[1], fields[2]
			}
		case line != "":
			s, err := parseSyllable(line, num, defaultWipe)
			if err != nil {
				return page, err
			}
			syllables = append(syllables, s)
		}
	}
	return page, nil
}

func parseLineHeader(line string, num int) (LineHeader, error) {
	fields := strings.Split(line, "/")
	h := LineHeader{Align: fields[0], Style: fields[1]}
	ints := [5]*int{&h.Start, &h.End, &h.Right, &h.Down, &h.Rotation}
	for i, dst := range ints {
		v, err := atoi(fields[i+2], num, "line header field")
		if err != nil {
			return h, err
		}
		*dst = v
	}
	return h, nil
}

func parseSyllable(line string, num, defaultWipe int) (Syllable, error) {
	fields := strings.Split(line, "/")
	if len(fields) != 4 {
		return Syllable{}, &FormatError{
			Line: num,
			Msg:  "syllable record must have 4 fields",
		}
	}
	s := Syllable{
		Text: strings.ReplaceAll(fields[0], syllableSurrogate, "/"),
	}
	// Only the start field is padded with leading spaces.
	fields[1] = strings.TrimLeft(fields[1], " ")
	var err error
	if s.Start, err = atoi(fields[1], num, "syllable start"); err != nil {
		return s, err
	}
	if s.End, err = atoi(fields[2], num, "syllable end"); err != nil {
		return s, err
	}
	if s.Wipe, err = atoi(fields[3], num, "syllable wipe"); err != nil {
		return s, err
	}
	if defaultWipe != 0 && s.Wipe == 0 {
		s.Wipe = defaultWipe
	}
	return s, nil
}

func parseImage(line string, num int) (Image, error) {
	fields := strings.Split(line, "/")
	if len(fields) != 4 {
		return Image{}, &FormatError{
			Line: num,
			Msg:  "image record must have 4 fields",
		}
	}
	img := Image{Filename: fields[2]}
	var err error
	if img.Start, err = atoi(fields[0], num, "image start"); err != nil {
		return img, err
	}
	if img.End, err = atoi(fields[1], num, "image end"); err != nil {
		return img, err
	}
	if img.LeaveOnScreen, err = atoi(fields[3], num, "image flag"); err != nil {
		return img, err
	}
	return img, nil
}
