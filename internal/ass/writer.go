package ass

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Write serializes the document in section order: script info, styles,
// events.
func (d *Document) Write(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", d.Info.Title))
	sb.WriteString(fmt.Sprintf("ScriptType: %s\n", d.Info.ScriptType))
	sb.WriteString(fmt.Sprintf("WrapStyle: %d\n", d.Info.WrapStyle))
	sb.WriteString(fmt.Sprintf(
		"ScaledBorderAndShadow: %s\n",
		yesNo(d.Info.ScaledBorderAndShadow),
	))
	sb.WriteString(fmt.Sprintf("Collisions: %s\n", d.Info.Collisions))
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", d.Info.PlayResX))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n\n", d.Info.PlayResY))

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, s := range d.Styles {
		sb.WriteString(fmt.Sprintf(
			"Style: %s,%s,%s,%s,%s,%s,%s,%d,%d,%d,%d,%s,%s,%s,%s,%d,%s,%s,%d,%d,%d,%d,%d\n",
			s.Name,
			s.FontName,
			formatFloat(s.FontSize),
			s.PrimaryColor,
			s.SecondaryColor,
			s.OutlineColor,
			s.BackColor,
			assBool(s.Bold),
			assBool(s.Italic),
			assBool(s.Underline),
			assBool(s.StrikeOut),
			formatFloat(s.ScaleX),
			formatFloat(s.ScaleY),
			formatFloat(s.Spacing),
			formatFloat(s.Angle),
			s.BorderStyle,
			formatFloat(s.Outline),
			formatFloat(s.Shadow),
			s.Alignment,
			s.MarginL,
			s.MarginR,
			s.MarginV,
			s.Encoding,
		))
	}
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, e := range d.Events {
		sb.WriteString(fmt.Sprintf(
			"Dialogue: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s\n",
			e.Layer,
			FormatTime(e.Start),
			FormatTime(e.End),
			e.Style,
			e.Name,
			e.MarginL,
			e.MarginR,
			e.MarginV,
			e.Effect,
			e.Text,
		))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTime renders a duration as an ASS timestamp, H:MM:SS.CC.
func FormatTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// ASS encodes true as -1.
func assBool(b bool) int {
	if b {
		return -1
	}
	return 0
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
