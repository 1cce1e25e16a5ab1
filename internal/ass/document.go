package ass

import "time"

// ScriptInfo is the [Script Info] block of an ASS document.
type ScriptInfo struct {
	Title                 string
	ScriptType            string
	WrapStyle             int
	ScaledBorderAndShadow bool
	Collisions            string
	PlayResX              int
	PlayResY              int
}

// Style is one [V4+ Styles] record. Colors are &HAABBGGRR strings.
type Style struct {
	Name           string
	FontName       string
	FontSize       float64
	PrimaryColor   string
	SecondaryColor string
	OutlineColor   string
	BackColor      string
	Bold           bool
	Italic         bool
	Underline      bool
	StrikeOut      bool
	ScaleX         float64
	ScaleY         float64
	Spacing        float64
	Angle          float64
	BorderStyle    int
	Outline        float64
	Shadow         float64
	Alignment      int
	MarginL        int
	MarginR        int
	MarginV        int
	Encoding       int
}

// Dialogue is one [Events] record. Text may embed override tags.
type Dialogue struct {
	Layer   int
	Start   time.Duration
	End     time.Duration
	Style   string
	Name    string
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	Text    string
}

// Document is a complete ASS script.
type Document struct {
	Info   ScriptInfo
	Styles []Style
	Events []Dialogue
}
