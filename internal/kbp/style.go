package kbp

import (
	"fmt"
	"sort"
	"strings"
)

// Color is one of a style's four color fields. KBP stores colors as palette
// indexes; they may optionally be resolved to the palette's shorthand codes
// at parse time. A style never mixes the two representations.
type Color struct {
	Index    int    // palette index, valid while !Resolved
	Code     string // 3-digit shorthand, valid while Resolved
	Resolved bool
}

func (c Color) String() string {
	if c.Resolved {
		return c.Code
	}
	return fmt.Sprintf("palette[%d]", c.Index)
}

// Style is one visual style record from the Styles header section.
type Style struct {
	Name             string
	TextColor        Color
	OutlineColor     Color
	TextWipeColor    Color
	OutlineWipeColor Color
	FontName         string
	FontSize         int
	FontStyle        string // membership of B/I/U/S selects bold/italic/underline/strikeout
	Charset          int
	Outlines         [4]int // left, right, top, bottom edge widths
	Shadows          [2]int // right, down offsets
	WipeStyle        int
	AllCaps          string
	Fixed            bool
}

// HasColors reports whether the style's colors are resolved. The four fields
// must agree; mixing representations is a TypeMismatchError.
func (s Style) HasColors() (bool, error) {
	fields := [4]Color{
		s.TextColor, s.OutlineColor, s.TextWipeColor, s.OutlineWipeColor,
	}
	resolved := 0
	for _, c := range fields {
		if c.Resolved {
			resolved++
		}
	}
	switch resolved {
	case 4:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, &TypeMismatchError{Style: s.Name}
	}
}

// ResolveColors returns a copy of the style with all four color fields
// replaced by their palette codes. Styles that are already resolved are
// returned unchanged.
func (s Style) ResolveColors(palette Palette) (Style, error) {
	resolved, err := s.HasColors()
	if err != nil {
		return s, err
	}
	if resolved {
		return s, nil
	}
	for _, field := range []*Color{
		&s.TextColor, &s.OutlineColor, &s.TextWipeColor, &s.OutlineWipeColor,
	} {
		if field.Index < 0 || field.Index >= PaletteSize {
			return s, &FormatError{
				Msg: fmt.Sprintf(
					"style %q references palette index %d",
					s.Name, field.Index,
				),
			}
		}
		field.Code = palette[field.Index]
		field.Resolved = true
	}
	return s, nil
}

// MakeFixed derives the non-wiped variant of a style. The wipe colors are
// never shown on a fixed line, so they are redefined to the non-wipe values
// for compatibility with formats that always render them.
func (s Style) MakeFixed() Style {
	if s.Fixed {
		return s
	}
	s.Name += "_fixed"
	s.TextWipeColor = s.TextColor
	s.OutlineWipeColor = s.OutlineColor
	s.Fixed = true
	return s
}

// AlphaToKey maps a style letter from a line header to its signed integer
// key: A-Z to 1..26, a-z to -1..-26.
func AlphaToKey(letter rune) (int, error) {
	switch {
	case letter >= 'A' && letter <= 'Z':
		return int(letter-'A') + 1, nil
	case letter >= 'a' && letter <= 'z':
		return -int(letter-'a') - 1, nil
	default:
		return 0, &FormatError{Msg: fmt.Sprintf("invalid style letter %q", letter)}
	}
}

// KeyToAlpha is the inverse of AlphaToKey.
func KeyToAlpha(key int) (rune, error) {
	switch {
	case key >= 1 && key <= 26:
		return rune('A' + key - 1), nil
	case key >= -26 && key <= -1:
		return rune('a' - key - 1), nil
	default:
		return 0, &KeyRangeError{Key: key}
	}
}

// StyleCollection maps signed style keys to styles. Positive keys hold the
// styles parsed from the header; the negative (fixed) counterpart of a key is
// derived on first access and cached.
type StyleCollection struct {
	styles map[int]Style
}

func NewStyleCollection() StyleCollection {
	return StyleCollection{styles: make(map[int]Style)}
}

func validKey(key int) bool {
	return (key >= 1 && key <= 26) || (key >= -26 && key <= -1)
}

// Set stores a style under key, rejecting keys outside the valid range.
func (c StyleCollection) Set(key int, s Style) error {
	if !validKey(key) {
		return &KeyRangeError{Key: key}
	}
	c.styles[key] = s
	return nil
}

// Get returns the style for key. A negative key whose positive counterpart
// exists derives, caches, and returns the fixed variant.
func (c StyleCollection) Get(key int) (Style, error) {
	if !validKey(key) {
		return Style{}, &KeyRangeError{Key: key}
	}
	if s, ok := c.styles[key]; ok {
		return s, nil
	}
	if key < 0 {
		if base, ok := c.styles[-key]; ok {
			fixed := base.MakeFixed()
			c.styles[key] = fixed
			return fixed, nil
		}
	}
	return Style{}, fmt.Errorf("kbp: style %d not defined", key)
}

// GetAlpha looks up a style by its letter alias.
func (c StyleCollection) GetAlpha(letter rune) (Style, error) {
	key, err := AlphaToKey(letter)
	if err != nil {
		return Style{}, err
	}
	return c.Get(key)
}

func (c StyleCollection) Len() int {
	return len(c.styles)
}

// Keys returns the present keys sorted ascending.
func (c StyleCollection) Keys() []int {
	keys := make([]int, 0, len(c.styles))
	for k := range c.styles {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// AlphaKeys returns the letter aliases of the present keys, in Keys() order.
func (c StyleCollection) AlphaKeys() []rune {
	keys := c.Keys()
	out := make([]rune, len(keys))
	for i, k := range keys {
		r, _ := KeyToAlpha(k)
		out[i] = r
	}
	return out
}

// parseStyles reads the Styles header block. Records are three lines each:
// colors/name, font, and outline/shadow/flags, separated by blank lines;
// comment lines may appear anywhere and are dropped before record grouping.
// start is the 1-based line number of the first block line.
func parseStyles(
	block []string, start int, palette *Palette,
) (StyleCollection, error) {
	var lines []string
	var nums []int
	for i, line := range block {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "'") {
			continue
		}
		lines = append(lines, trimmed)
		nums = append(nums, start+i)
	}

	styles := NewStyleCollection()
	open := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case line == "":
			open = false
		case !open && strings.HasPrefix(line, "Style"):
			if i+2 >= len(lines) {
				return styles, &FormatError{
					Line: nums[i],
					Msg:  "truncated style record",
				}
			}
			s, key, err := parseStyleRecord(
				line, lines[i+1], lines[i+2], nums[i],
			)
			if err != nil {
				return styles, err
			}
			if palette != nil {
				if s, err = s.ResolveColors(*palette); err != nil {
					return styles, err
				}
			}
			// Stored key is the declared number plus one: KBS shows style 0
			// as 01, and the shift leaves negative keys free for fixed
			// variants.
			if err := styles.Set(key+1, s); err != nil {
				return styles, err
			}
			open = true
		}
	}
	return styles, nil
}

func parseStyleRecord(
	colorLine, fontLine, flagLine string, num int,
) (Style, int, error) {
	var s Style

	fields := strings.Split(colorLine, ",")
	if len(fields) != 6 {
		return s, 0, &FormatError{
			Line: num,
			Msg:  "style color line must have 6 fields",
		}
	}
	key, err := atoi(fields[0][len("Style"):], num, "style number")
	if err != nil {
		return s, 0, err
	}
	s.Name = fields[1]
	for i, dst := range []*Color{
		&s.TextColor, &s.OutlineColor, &s.TextWipeColor, &s.OutlineWipeColor,
	} {
		idx, err := atoi(fields[i+2], num, "style color")
		if err != nil {
			return s, 0, err
		}
		*dst = Color{Index: idx}
	}

	fields = strings.Split(fontLine, ",")
	if len(fields) != 4 {
		return s, 0, &FormatError{
			Line: num + 1,
			Msg:  "style font line must have 4 fields",
		}
	}
	s.FontName = fields[0]
	if s.FontSize, err = atoi(fields[1], num+1, "font size"); err != nil {
		return s, 0, err
	}
	s.FontStyle = fields[2]
	if s.Charset, err = atoi(fields[3], num+1, "charset"); err != nil {
		return s, 0, err
	}

	fields = strings.Split(flagLine, ",")
	if len(fields) != 8 {
		return s, 0, &FormatError{
			Line: num + 2,
			Msg:  "style outline line must have 8 fields",
		}
	}
	for i := range s.Outlines {
		if s.Outlines[i], err = atoi(fields[i], num+2, "outline width"); err != nil {
			return s, 0, err
		}
	}
	for i := range s.Shadows {
		if s.Shadows[i], err = atoi(fields[i+4], num+2, "shadow offset"); err != nil {
			return s, 0, err
		}
	}
	if s.WipeStyle, err = atoi(fields[6], num+2, "wipe style"); err != nil {
		return s, 0, err
	}
	s.AllCaps = fields[7]
	return s, key, nil
}
