package kbp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Divider separates top-level sections of a KBP file.
const Divider = "-----------------------------"

const (
	headerMarker    = "HEADERV2"
	pageMarker      = "PAGEV2"
	imageMarker     = "IMAGE"
	styleEndMarker  = "  StyleEnd"
	paletteMarker   = "'Palette Colours"
	stylesMarker    = "'Styles"
	marginsMarker   = "'Margins"
	otherMarker     = "'Other"
	trackInfoMarker = "'--- Track Information ---"
)

// ParseOptions control optional normalization during the parse pass.
type ParseOptions struct {
	// ResolveColors replaces each style's palette indexes with the palette's
	// shorthand codes.
	ResolveColors bool
	// ResolveWipe substitutes the file's default wipe detail for syllables
	// that declare wipe 0.
	ResolveWipe bool
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{ResolveWipe: true}
}

// Open reads and parses the KBP file at path with default options.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open KBP file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f, DefaultParseOptions())
}

// Parse buffers the whole source and runs a single forward pass over its
// lines. Input is UTF-8, with or without a BOM.
func Parse(r io.Reader, opts ParseOptions) (*File, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return parseLines(lines, opts)
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(
		transform.NewReader(r, unicode.UTF8BOM.NewDecoder()),
	)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading KBP file: %w", err)
	}
	return lines, nil
}

// parseLines is the section state machine. A divider line arms the next
// line as a potential block marker; HEADERV2 switches into header mode,
// where the titled sub-sections live. Comment and blank lines keep the
// previous divider armed.
func parseLines(lines []string, opts ParseOptions) (*File, error) {
	f := &File{Styles: NewStyleCollection()}
	var have struct {
		colors, styles, margins, other, pages, trackinfo bool
	}
	inHeader := false
	divider := false

	for i, line := range lines {
		if inHeader {
			switch {
			case strings.HasPrefix(line, paletteMarker):
				if i+1 >= len(lines) {
					return nil, &FormatError{
						Line: i + 1,
						Msg:  "palette section missing color line",
					}
				}
				p, err := parsePalette(lines[i+1], i+2)
				if err != nil {
					return nil, err
				}
				f.Colors = p
				have.colors = true

			case strings.HasPrefix(line, stylesMarker):
				end := indexOf(lines, styleEndMarker, i+1)
				if end < 0 {
					return nil, &FormatError{
						Line: i + 1,
						Msg:  "unterminated Styles section",
					}
				}
				var pal *Palette
				if opts.ResolveColors {
					pal = &f.Colors
				}
				styles, err := parseStyles(lines[i+1:end], i+2, pal)
				if err != nil {
					return nil, err
				}
				f.Styles = styles
				have.styles = true

			case strings.HasPrefix(line, marginsMarker):
				if i+1 >= len(lines) {
					return nil, &FormatError{
						Line: i + 1,
						Msg:  "margins section missing value line",
					}
				}
				m, err := parseMargins(lines[i+1], i+2)
				if err != nil {
					return nil, err
				}
				f.Margins = m
				have.margins = true

			case strings.HasPrefix(line, otherMarker):
				if i+1 >= len(lines) {
					return nil, &FormatError{
						Line: i + 1,
						Msg:  "other section missing value line",
					}
				}
				o, err := parseOther(lines[i+1], i+2)
				if err != nil {
					return nil, err
				}
				f.Other = o
				have.other = true

			case line == trackInfoMarker:
				end := indexOf(lines, Divider, i+1)
				if end < 0 {
					return nil, &FormatError{
						Line: i + 1,
						Msg:  "unterminated Track Information section",
					}
				}
				f.TrackInfo = parseTrackInfo(lines[i+1 : end])
				have.trackinfo = true
				if f.TrackInfo.Status() != SyncedStatus {
					return nil, &UnsupportedTrackStateError{
						Status: f.TrackInfo.Status(),
					}
				}
			}
		} else if divider && line == pageMarker {
			end := indexOf(lines, Divider, i+1)
			if end < 0 {
				return nil, &FormatError{
					Line: i + 1,
					Msg:  "unterminated page block",
				}
			}
			defaultWipe := 0
			if opts.ResolveWipe {
				defaultWipe = f.Other.WipeDetail
			}
			page, err := parsePage(lines[i+1:end], i+2, defaultWipe)
			if err != nil {
				return nil, err
			}
			f.Pages = append(f.Pages, page)
			have.pages = true
		} else if divider && line == imageMarker {
			if i+1 >= len(lines) {
				return nil, &FormatError{
					Line: i + 1,
					Msg:  "image block missing record line",
				}
			}
			img, err := parseImage(lines[i+1], i+2)
			if err != nil {
				return nil, err
			}
			f.Images = append(f.Images, img)
		}

		if divider && line == headerMarker {
			inHeader = true
		}
		if line == Divider {
			inHeader = false
			divider = true
		} else if line != "" && !strings.HasPrefix(line, "'") {
			// Blank and comment lines keep the previous divider armed.
			divider = false
		}
	}

	var missing []string
	for _, section := range []struct {
		name string
		ok   bool
	}{
		{"colors", have.colors},
		{"styles", have.styles},
		{"margins", have.margins},
		{"other", have.other},
		{"pages", have.pages},
		{"trackinfo", have.trackinfo},
	} {
		if !section.ok {
			missing = append(missing, section.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSectionError{Sections: missing}
	}
	return f, nil
}

func parseMargins(line string, num int) (Margins, error) {
	fields := strings.Split(strings.TrimLeft(line, " "), ",")
	if len(fields) != 4 {
		return Margins{}, &FormatError{
			Line: num,
			Msg:  "margins line must have 4 fields",
		}
	}
	var m Margins
	var err error
	if m.Left, err = atoi(fields[0], num, "left margin"); err != nil {
		return m, err
	}
	if m.Right, err = atoi(fields[1], num, "right margin"); err != nil {
		return m, err
	}
	if m.Top, err = atoi(fields[2], num, "top margin"); err != nil {
		return m, err
	}
	if m.Spacing, err = atoi(fields[3], num, "line spacing"); err != nil {
		return m, err
	}
	return m, nil
}

func parseOther(line string, num int) (Other, error) {
	fields := strings.Split(strings.TrimLeft(line, " "), ",")
	if len(fields) != 2 {
		return Other{}, &FormatError{
			Line: num,
			Msg:  "other line must have 2 fields",
		}
	}
	var o Other
	var err error
	if o.BorderColor, err = atoi(fields[0], num, "border color"); err != nil {
		return o, err
	}
	if o.WipeDetail, err = atoi(fields[1], num, "wipe detail"); err != nil {
		return o, err
	}
	return o, nil
}

func parseTrackInfo(block []string) TrackInfo {
	info := TrackInfo{}
	prev := ""
	for _, line := range block {
		switch {
		case strings.HasPrefix(line, " "):
			if prev != "" {
				info[prev] += "\n" + strings.TrimLeft(line, " \t")
			}
		case line != "" && !strings.HasPrefix(line, "'"):
			key, value := line, ""
			if idx := strings.IndexAny(line, " \t"); idx >= 0 {
				key = line[:idx]
				value = strings.TrimLeft(line[idx+1:], " \t")
			}
			key = strings.ToLower(key)
			info[key] = value
			prev = key
		}
	}
	return info
}

func indexOf(lines []string, target string, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == target {
			return i
		}
	}
	return -1
}

func atoi(s string, num int, field string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{
			Line: num,
			Msg:  fmt.Sprintf("invalid %s %q", field, s),
			Err:  err,
		}
	}
	return v, nil
}
