package convert

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadkaraoke/kbputils/internal/kbp"
)

func testFile(t *testing.T, pages ...kbp.Page) *kbp.File {
	t.Helper()

	palette, err := kbp.NewPalette([]string{
		"000", "FFF", "F00", "0F0", "00F", "FF0", "0FF", "F0F",
		"888", "CCC", "800", "080", "008", "880", "088", "808",
	})
	require.NoError(t, err)

	styles := kbp.NewStyleCollection()
	require.NoError(t, styles.Set(1, kbp.Style{
		Name:             "Default",
		TextColor:        kbp.Color{Index: 1},
		OutlineColor:     kbp.Color{Index: 0},
		TextWipeColor:    kbp.Color{Index: 2},
		OutlineWipeColor: kbp.Color{Index: 0},
		FontName:         "Arial",
		FontSize:         12,
		FontStyle:        "B",
		Outlines:         [4]int{2, 2, 2, 2},
		Shadows:          [2]int{1, 1},
	}))
	require.NoError(t, styles.Set(2, kbp.Style{
		Name:             "Female",
		TextColor:        kbp.Color{Index: 4},
		OutlineColor:     kbp.Color{Index: 0},
		TextWipeColor:    kbp.Color{Index: 5},
		OutlineWipeColor: kbp.Color{Index: 0},
		FontName:         "Arial",
		FontSize:         12,
		FontStyle:        "BI",
		Outlines:         [4]int{1, 1, 1, 1},
		Shadows:          [2]int{0, 0},
	}))

	return &kbp.File{
		Colors:    palette,
		Styles:    styles,
		Margins:   kbp.Margins{Left: 2, Right: 2, Top: 0, Spacing: 12},
		Other:     kbp.Other{BorderColor: 0, WipeDetail: 2},
		TrackInfo: kbp.TrackInfo{"status": "1"},
		Pages:     pages,
	}
}

func karaokeLine(align, style string, start, end int, syls ...kbp.Syllable) kbp.Line {
	return kbp.Line{
		LineHeader: kbp.LineHeader{
			Align: align,
			Style: style,
			Start: start,
			End:   end,
		},
		Syllables: syls,
	}
}

func TestDocumentSingleLine(t *testing.T) {
	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "A", 100, 500,
			kbp.Syllable{Text: "Hi", Start: 100, End: 200},
			kbp.Syllable{Text: "there", Start: 205, End: 500},
		),
	}})

	doc, err := New(file, DefaultOptions()).Document()
	require.NoError(t, err)

	require.Len(t, doc.Events, 1)
	event := doc.Events[0]
	assert.Equal(t, time.Second, event.Start)
	assert.Equal(t, 5*time.Second, event.End)
	assert.Equal(t, "Style01_Default", event.Style)
	assert.Equal(t, "karaoke", event.Effect)
	// No hold before "Hi" (delay 0); 5cs gap before "there" becomes a
	// hold; no +1 adjustment since the gap is not exactly 1cs.
	assert.Equal(t,
		`{\pos(150,12)}{\fad(300,200)}{\kf100}Hi{\k5}{\kf295}there`,
		event.Text,
	)

	require.Len(t, doc.Styles, 1)
	style := doc.Styles[0]
	assert.Equal(t, "Style01_Default", style.Name)
	assert.InDelta(t, 16.8, style.FontSize, 1e-9)
	assert.Equal(t, "&H00FFFFFF", style.SecondaryColor) // text
	assert.Equal(t, "&H000000FF", style.PrimaryColor)   // text wipe
	assert.Equal(t, "&H00000000", style.OutlineColor)
	assert.Equal(t, "&H00000000", style.BackColor)
	assert.True(t, style.Bold)
	assert.False(t, style.Italic)
	assert.InDelta(t, 2.0, style.Outline, 1e-9)
	assert.InDelta(t, 1.0, style.Shadow, 1e-9)
	assert.Equal(t, 8, style.Alignment)
	assert.Equal(t, 0, style.MarginL)

	assert.Equal(t, 300, doc.Info.PlayResX)
	assert.Equal(t, 216, doc.Info.PlayResY)
	assert.Equal(t, "v4.00+", doc.Info.ScriptType)
	assert.True(t, doc.Info.ScaledBorderAndShadow)
}

func TestContinuityAdjustment(t *testing.T) {
	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "A", 100, 200,
			kbp.Syllable{Text: "A", Start: 100, End: 149},
			kbp.Syllable{Text: "B", Start: 150, End: 200},
		),
	}})

	doc, err := New(file, DefaultOptions()).Document()
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	// The 1cs end-before-start convention is absorbed into the first
	// syllable, so no {\k1} hold appears.
	assert.True(t, strings.HasSuffix(
		doc.Events[0].Text, `{\kf50}A{\kf50}B`,
	), "got %q", doc.Events[0].Text)
}

func TestOverlapAbsorption(t *testing.T) {
	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "A", 100, 300,
			kbp.Syllable{Text: "A", Start: 100, End: 200},
			kbp.Syllable{Text: "B", Start: 180, End: 300},
		),
	}})

	doc, err := New(file, DefaultOptions()).Document()
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	// B starts 20cs before the cursor: no hold, and B's own duration
	// shrinks from 120 to 100.
	assert.True(t, strings.HasSuffix(
		doc.Events[0].Text, `{\kf100}A{\kf100}B`,
	), "got %q", doc.Events[0].Text)
}

func TestFixedLinePlainText(t *testing.T) {
	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "b", 600, 900,
			kbp.Syllable{Text: "Fixed ", Start: 600, End: 700},
			kbp.Syllable{Text: "line", Start: 701, End: 900},
		),
	}})

	doc, err := New(file, DefaultOptions()).Document()
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	assert.Equal(t, "Fixed line", doc.Events[0].Text)
	assert.Equal(t, "Style02_Female_fixed", doc.Events[0].Style)

	require.Len(t, doc.Styles, 1)
	fixed := doc.Styles[0]
	assert.Equal(t, "Style02_Female_fixed", fixed.Name)
	// Wipe colors collapse to the non-wipe values on fixed styles.
	assert.Equal(t, fixed.SecondaryColor, fixed.PrimaryColor)
	assert.Equal(t, fixed.OutlineColor, fixed.BackColor)
}

func TestEmptyLinesSkippedButCounted(t *testing.T) {
	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "A", 100, 200),
		karaokeLine("C", "A", 300, 400,
			kbp.Syllable{Text: "Hey", Start: 300, End: 400},
		),
	}})

	doc, err := New(file, DefaultOptions()).Document()
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	// The empty line produces no event but still occupies slot 0, so the
	// second line keeps its vertical position: 0 + 1*(12+19) + 12.
	assert.True(t, strings.HasPrefix(
		doc.Events[0].Text, `{\pos(150,43)}`,
	), "got %q", doc.Events[0].Text)
}

func TestPositionAnchors(t *testing.T) {
	syl := kbp.Syllable{Text: "x", Start: 0, End: 10}
	tests := []struct {
		align string
		want  string
	}{
		{"C", `{\pos(150,12)}`},
		{"L", `{\an7\pos(8,12)}`},
		{"R", `{\an9\pos(292,12)}`},
		// Defensive fallback for malformed alignment.
		{"Q", `{\an9\pos(292,12)}`},
	}
	for _, tt := range tests {
		file := testFile(t, kbp.Page{Lines: []kbp.Line{
			karaokeLine(tt.align, "A", 0, 10, syl),
		}})
		doc, err := New(file, DefaultOptions()).Document()
		require.NoError(t, err)
		require.Len(t, doc.Events, 1)
		assert.True(t, strings.HasPrefix(doc.Events[0].Text, tt.want),
			"align %q: got %q", tt.align, doc.Events[0].Text)
	}
}

func TestFadeOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.FadeIn = 0
	opts.FadeOut = 50

	file := testFile(t, kbp.Page{Lines: []kbp.Line{
		karaokeLine("C", "A", 0, 10, kbp.Syllable{Text: "x", Start: 0, End: 10}),
	}})
	doc, err := New(file, opts).Document()
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	assert.Contains(t, doc.Events[0].Text, `{\fad(0,50)}`)
	// The fade appears once per event, not per syllable.
	assert.Equal(t, 1, strings.Count(doc.Events[0].Text, `\fad`))
}

func TestToColor(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ABC", "&H00CCBBAA"},
		{"000", "&H00000000"},
		{"F00", "&H000000FF"},
		{"08F", "&H00FF8800"},
	}
	for _, tt := range tests {
		got := ToColor(tt.code)
		assert.Equal(t, tt.want, got, "code %s", tt.code)
		assert.Len(t, got, 10, "code %s", tt.code)
		assert.True(t, strings.HasPrefix(got, "&H00"), "code %s", tt.code)
	}
}

func TestStyleName(t *testing.T) {
	assert.Equal(t, "Style01_Default", StyleName(1, "Default"))
	assert.Equal(t, "Style01_Default_fixed", StyleName(-1, "Default_fixed"))
	assert.Equal(t, "Style12_Loud", StyleName(12, "Loud"))
}

func TestParseOffset(t *testing.T) {
	off, err := ParseOffset("true")
	require.NoError(t, err)
	assert.Equal(t, Offset{Enabled: true}, off)

	off, err = ParseOffset("FALSE")
	require.NoError(t, err)
	assert.Equal(t, Offset{}, off)

	off, err = ParseOffset("25")
	require.NoError(t, err)
	assert.Equal(t, Offset{Value: 25, Numeric: true}, off)

	_, err = ParseOffset("later")
	assert.Error(t, err)
}
