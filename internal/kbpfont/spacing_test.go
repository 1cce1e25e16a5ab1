package kbpfont

import "testing"

func TestSpacing(t *testing.T) {
	tests := []struct {
		font      string
		size      int
		bold      bool
		want      int
		wantKnown bool
	}{
		{"Arial", 10, false, 16, true},
		{"Arial", 12, false, 18, true},
		{"Arial", 12, true, 19, true},
		{"Gadugi", 14, true, 21, true},
		{"Tahoma", 13, false, 21, true},
		// Bold falls back to the regular row when no bold row exists.
		{"Tahoma", 13, true, 21, true},
		{"Verdana", 9, false, DefaultSpacing, false},
		{"Verdana", 20, false, DefaultSpacing, false},
		{"Comic Sans MS", 12, false, DefaultSpacing, false},
	}

	for _, tt := range tests {
		got, known := Spacing(tt.font, tt.size, tt.bold)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf(
				"Spacing(%q, %d, %t) = (%d, %t), want (%d, %t)",
				tt.font, tt.size, tt.bold, got, known, tt.want, tt.wantKnown,
			)
		}
	}
}
