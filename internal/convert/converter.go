// Package convert maps a parsed KBP project onto an ASS subtitle document,
// turning per-syllable wipe timing into \k/\kf karaoke tags.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nomadkaraoke/kbputils/internal/ass"
	"github.com/nomadkaraoke/kbputils/internal/kbp"
)

// Fixed render model of KBS at its native resolution.
const (
	playResX = 300
	playResY = 216
	// Vertical size of one rendered line and the offset from a line's top
	// to its anchor point.
	lineHeight     = 19
	baselineOffset = 12
	// Horizontal inset applied inside the left/right margins.
	lineInset = 6
	// KBP font sizes render noticeably smaller in ASS players.
	fontScale = 1.4
)

// Offset is the converter's offset option, either a boolean or a number of
// centiseconds. It is accepted and threaded through for compatibility but
// not yet consulted by any timing formula; its semantics are reserved.
type Offset struct {
	Enabled bool
	Value   int
	Numeric bool
}

// ParseOffset coerces a flag value into an Offset: true/false
// (case-insensitive) or an integer.
func ParseOffset(s string) (Offset, error) {
	switch strings.ToUpper(s) {
	case "TRUE":
		return Offset{Enabled: true}, nil
	case "FALSE":
		return Offset{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Offset{}, fmt.Errorf(
			"offset must be true, false, or an integer, got %q", s,
		)
	}
	return Offset{Value: v, Numeric: true}, nil
}

// Options adjust the produced ASS document.
type Options struct {
	FadeIn       int // ms
	FadeOut      int // ms
	Transparency bool
	Offset       Offset
}

func DefaultOptions() Options {
	return Options{
		FadeIn:       300,
		FadeOut:      200,
		Transparency: true,
		Offset:       Offset{Enabled: true},
	}
}

// Converter produces an ASS document from one parsed KBP file. It assumes
// the file satisfies the parser's invariants and does not revalidate it.
type Converter struct {
	file *kbp.File
	opts Options
}

func New(file *kbp.File, opts Options) *Converter {
	return &Converter{file: file, opts: opts}
}

// Document builds the target document: fixed presentation metadata, one
// dialogue event per non-empty line, and one style per style key actually
// referenced by a line, in first-use order.
func (c *Converter) Document() (*ass.Document, error) {
	doc := &ass.Document{
		Info: ass.ScriptInfo{
			Title:                 "",
			ScriptType:            "v4.00+",
			WrapStyle:             0,
			ScaledBorderAndShadow: true,
			Collisions:            "Normal",
			PlayResX:              playResX,
			PlayResY:              playResY,
		},
	}

	var used []int
	seen := make(map[int]bool)

	for _, page := range c.file.Pages {
		for num, line := range page.Lines {
			if line.IsEmpty() {
				continue
			}
			key, err := kbp.AlphaToKey([]rune(line.Style)[0])
			if err != nil {
				return nil, err
			}
			style, err := c.file.Styles.Get(key)
			if err != nil {
				return nil, err
			}
			if !seen[key] {
				seen[key] = true
				used = append(used, key)
			}
			var text string
			if style.Fixed {
				text = line.Text(kbp.TextOptions{})
			} else {
				text = c.lineText(line, num)
			}
			doc.Events = append(doc.Events, ass.Dialogue{
				Start:  centis(line.LineHeader.Start),
				End:    centis(line.LineHeader.End),
				Style:  StyleName(key, style.Name),
				Effect: "karaoke",
				Text:   text,
			})
		}
	}

	for _, key := range used {
		style, err := c.file.Styles.Get(key)
		if err != nil {
			return nil, err
		}
		assStyle, err := c.assStyle(key, style)
		if err != nil {
			return nil, err
		}
		doc.Styles = append(doc.Styles, assStyle)
	}
	return doc, nil
}

// lineText emits the position and fade tags followed by the wipe markup.
// The cursor tracks where wiping has progressed to; a positive gap before a
// syllable becomes a plain {\k} hold, a negative one (overlap) is absorbed
// into the syllable's own duration with no floor applied.
func (c *Converter) lineText(line kbp.Line, num int) string {
	var sb strings.Builder
	sb.WriteString(c.position(line, num))
	sb.WriteString(c.fadeTag())

	cur := line.LineHeader.Start
	for n, s := range line.Syllables {
		delay := s.Start - cur
		dur := s.End - s.Start

		if delay > 0 {
			sb.WriteString(fmt.Sprintf(`{\k%d}`, delay))
		} else if delay < 0 {
			dur += delay
		}

		// A syllable ends 1cs before the next starts, so absorb that gap
		// here instead of emitting a run of {\k1} holds that would let the
		// error accumulate over a long line.
		if n+1 < len(line.Syllables) && line.Syllables[n+1].Start-s.End == 1 {
			dur++
		}

		sb.WriteString(fmt.Sprintf(`{\kf%d}%s`, dur, s.Text))
		cur = s.Start + dur
	}
	return sb.String()
}

// position places the line on the fixed 300x216 canvas. Centered lines
// anchor at the midpoint; left and right lines re-anchor with \an and inset
// from their margin. Any unknown alignment falls back to right.
func (c *Converter) position(line kbp.Line, num int) string {
	margins := c.file.Margins
	y := margins.Top + num*(margins.Spacing+lineHeight) + baselineOffset
	switch line.Align {
	case "C":
		return fmt.Sprintf(`{\pos(%d,%d)}`, playResX/2, y)
	case "L":
		return fmt.Sprintf(`{\an7\pos(%d,%d)}`, margins.Left+lineInset, y)
	default: // "R", or the file is broken
		return fmt.Sprintf(
			`{\an9\pos(%d,%d)}`, playResX-margins.Right-lineInset, y,
		)
	}
}

func (c *Converter) fadeTag() string {
	return fmt.Sprintf(`{\fad(%d,%d)}`, c.opts.FadeIn, c.opts.FadeOut)
}

// assStyle maps one KBP style onto an ASS style record. ASS has no outline
// wipe slot, so that color lands in BackColour as a best effort. Margins
// are zeroed and alignment pinned because placement is per line.
func (c *Converter) assStyle(key int, style kbp.Style) (ass.Style, error) {
	resolved, err := style.HasColors()
	if err != nil {
		return ass.Style{}, err
	}
	if !resolved {
		if style, err = style.ResolveColors(c.file.Colors); err != nil {
			return ass.Style{}, err
		}
	}

	outline := 0
	for _, w := range style.Outlines {
		outline += w
	}
	shadow := style.Shadows[0] + style.Shadows[1]

	return ass.Style{
		Name:           StyleName(key, style.Name),
		FontName:       style.FontName,
		FontSize:       float64(style.FontSize) * fontScale,
		PrimaryColor:   ToColor(style.TextWipeColor.Code),
		SecondaryColor: ToColor(style.TextColor.Code),
		OutlineColor:   ToColor(style.OutlineColor.Code),
		BackColor:      ToColor(style.OutlineWipeColor.Code),
		Bold:           strings.ContainsRune(style.FontStyle, 'B'),
		Italic:         strings.ContainsRune(style.FontStyle, 'I'),
		Underline:      strings.ContainsRune(style.FontStyle, 'U'),
		StrikeOut:      strings.ContainsRune(style.FontStyle, 'S'),
		ScaleX:         100,
		ScaleY:         100,
		BorderStyle:    1,
		Outline:        float64(outline) / 4,
		Shadow:         float64(shadow) / 2,
		Alignment:      8,
		Encoding:       style.Charset,
	}, nil
}

// StyleName builds the ASS style name for a KBP style key; fixed (negative)
// keys share the zero-padded number of their base style.
func StyleName(key int, name string) string {
	if key < 0 {
		key = -key
	}
	return fmt.Sprintf("Style%02d_%s", key, name)
}

// ToColor converts a 3-digit shorthand code to an ASS &HAABBGGRR color:
// each digit doubled, channel order reversed, fully opaque.
func ToColor(code string) string {
	var sb strings.Builder
	sb.WriteString("&H00")
	runes := []rune(code)
	for i := len(runes) - 1; i >= 0; i-- {
		sb.WriteRune(runes[i])
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// KBP times are centiseconds.
func centis(t int) time.Duration {
	return time.Duration(t) * 10 * time.Millisecond
}
