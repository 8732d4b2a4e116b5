package ui

import "testing"

func TestFirstExisting(t *testing.T) {
	tests := []struct {
		name    string
		present map[string]bool
		want    string
	}{
		{"none", map[string]bool{}, ""},
		{"first wins", map[string]bool{"a": true, "b": true}, "a"},
		{"later", map[string]bool{"c": true}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstExisting([]string{"a", "b", "c"}, func(p string) bool { return tt.present[p] })
			if got != tt.want {
				t.Errorf("firstExisting() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGlyphRanges(t *testing.T) {
	if len(glyphRanges)%2 != 1 {
		t.Fatalf("glyph ranges must be pairs plus a terminator, got %d entries", len(glyphRanges))
	}
	if glyphRanges[len(glyphRanges)-1] != 0 {
		t.Error("glyph ranges must end with 0")
	}
	for i := 0; i+1 < len(glyphRanges)-1; i += 2 {
		if glyphRanges[i] > glyphRanges[i+1] {
			t.Errorf("range %d: start %#x > end %#x", i/2, glyphRanges[i], glyphRanges[i+1])
		}
	}
}
