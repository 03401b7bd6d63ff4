package robowriter

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name   string
		r      rune
		want   int
		wantOk bool
	}{
		{"ascii", 'A', 65, true},
		{"space", ' ', 32, true},
		{"control", '\x01', 1, true},
		{"acute", 'é', 'e', true},
		{"capital grave", 'À', 'A', true},
		{"cedilla", 'ç', 'c', true},
		{"umlaut", 'ü', 'u', true},
		{"no ascii base", '€', 0, false},
		{"cyrillic", 'Ж', 0, false},
		{"negative", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fold(tt.r, DefaultConfig.MaxCharacters)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("Fold(%q) = %d, %v, want %d, %v", tt.r, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestFold_smallTable(t *testing.T) {
	if _, ok := Fold('z', 64); ok {
		t.Error("Fold('z', 64) found a code beyond the table")
	}
}
