package kbp

import (
	"regexp"
	"strings"
)

// TextOptions control lyric extraction. To produce text suitable for
// restarting sync on a new project, use IncludeEmpty with a "/" separator
// and SpaceIsSeparator.
type TextOptions struct {
	// PageSeparator is placed on its own line between pages.
	PageSeparator string
	// IncludeEmpty keeps empty lines in the output.
	IncludeEmpty bool
	// SyllableSeparator is inserted between syllables of a line.
	SyllableSeparator string
	// SpaceIsSeparator treats a trailing space as a syllable break;
	// non-breaking runs of spaces become underscores.
	SpaceIsSeparator bool
}

var innerSpaceRegex = regexp.MustCompile(` +[^ ]`)

// Text renders the lyric text of all pages without timing information.
func (f *File) Text(opts TextOptions) string {
	pages := make([]string, len(f.Pages))
	for i, page := range f.Pages {
		var lines []string
		for _, line := range page.Lines {
			if opts.IncludeEmpty || !line.IsEmpty() {
				lines = append(lines, line.Text(opts))
			}
		}
		pages[i] = strings.Join(lines, "\n")
	}
	return strings.Join(pages, "\n"+opts.PageSeparator+"\n")
}

// Text renders the line's lyric text, joined by the configured separator.
func (l Line) Text(opts TextOptions) string {
	// A separator by itself denotes an empty line (as opposed to a page
	// break) when importing lyrics into KBS.
	if l.IsEmpty() {
		return opts.SyllableSeparator
	}

	if opts.SpaceIsSeparator && opts.SyllableSeparator != "" {
		var sb strings.Builder
		for _, syl := range l.Syllables {
			// Underscores mark spaces that do not split the syllable.
			text := innerSpaceRegex.ReplaceAllStringFunc(
				syl.Text,
				func(m string) string {
					rest := strings.TrimLeft(m, " ")
					return strings.Repeat("_", len(m)-len(rest)) + rest
				},
			)
			sb.WriteString(text)
			if !strings.HasSuffix(text, " ") {
				sb.WriteString(opts.SyllableSeparator)
			}
		}
		return strings.TrimSuffix(sb.String(), opts.SyllableSeparator)
	}

	parts := make([]string, len(l.Syllables))
	for i, syl := range l.Syllables {
		parts[i] = syl.Text
	}
	return strings.Join(parts, opts.SyllableSeparator)
}
