// Package kbpfont carries measured line-spacing hints for fonts commonly
// used in KBS projects. The table is reserved for future spacing refinement
// in the converter and is not consulted by the timing or placement logic.
package kbpfont

// DefaultSpacing is the fallback hint (Arial 12 bold) for unknown
// font/size combinations.
const DefaultSpacing = 19

// Hints are indexed by fontsize - 10.
type fontHints struct {
	regular []int
	bold    []int
}

var fontTable = map[string]fontHints{
	"Arial": {
		regular: []int{16, 17, 18, 19, 22, 23, 24, 26, 27},
		bold:    []int{16, 18, 19, 19, 22, 24, 24, 27, 29},
	},
	"Tahoma":                 {regular: []int{16, 18, 19, 21, 23, 24}},
	"Kozuka Gothic Pro H":    {regular: []int{19, 22, 23, 24, 27, 29}},
	"Helvetica LT std":       {regular: []int{15, 18, 19, 20, 23, 24}},
	"Open Sans Semibold":     {regular: []int{19, 22, 23, 24, 27, 28}},
	"Franklin Gothic Book":   {regular: []int{17, 20, 21, 21, 24, 25}},
	"Franklin Gothic Demi":   {regular: []int{17, 20, 21, 21, 24, 25}},
	"Franklin Gothic Medium": {regular: []int{17, 20, 21, 21, 24, 25}},
	"MS Gothic": {
		regular: []int{13, 15, 16, 17, 19, 20, 21, 23, 24},
	},
	"Gadugi": {
		regular: []int{16, 18, 19, 20, 22, 24, 25},
		bold:    []int{16, 18, 19, 20, 21, 24, 25},
	},
	"Verdana": {regular: []int{16, 18, 18, 20, 23, 25, 25}},
}

// Spacing returns the line-spacing hint for a font at a size. known is
// false when the combination is not in the table and the default was used;
// callers decide whether and how to warn.
func Spacing(fontName string, size int, bold bool) (spacing int, known bool) {
	if hints, ok := fontTable[fontName]; ok {
		row := hints.regular
		if bold && hints.bold != nil {
			row = hints.bold
		}
		if idx := size - 10; idx >= 0 && idx < len(row) {
			return row[idx], true
		}
	}
	return DefaultSpacing, false
}
