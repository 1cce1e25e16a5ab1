package kbp

import (
	"regexp"
	"strings"
)

// PaletteSize is the fixed number of colors a KBP project defines.
const PaletteSize = 16

var colorCodeRegex = regexp.MustCompile(`^[0-9A-F]{3}$`)

// Palette is the project's fixed table of 16 shorthand color codes, each
// three uppercase hex digits (one per channel).
type Palette [PaletteSize]string

// NewPalette validates and builds a palette from exactly 16 codes.
func NewPalette(colors []string) (Palette, error) {
	var p Palette
	if len(colors) != PaletteSize {
		return p, &FormatError{
			Msg: "palette must contain exactly 16 colors",
		}
	}
	for i, c := range colors {
		if !colorCodeRegex.MatchString(c) {
			return p, &FormatError{
				Msg: "palette color " + c + " is not a 3-digit hex code",
			}
		}
		p[i] = c
	}
	return p, nil
}

func parsePalette(line string, num int) (Palette, error) {
	p, err := NewPalette(strings.Split(strings.TrimLeft(line, " "), ","))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Line = num
		}
		return p, err
	}
	return p, nil
}

// AsRGB24 expands each shorthand code to 6 hex digits by doubling each
// character.
func (p Palette) AsRGB24() []string {
	out := make([]string, PaletteSize)
	for i, c := range p {
		var sb strings.Builder
		for _, r := range c {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		out[i] = sb.String()
	}
	return out
}

// AsRGBA32 is AsRGB24 with a fully-opaque alpha channel appended.
func (p Palette) AsRGBA32() []string {
	out := p.AsRGB24()
	for i := range out {
		out[i] += "FF"
	}
	return out
}
