package robowriter

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

const fontHAndSpace = `999 65 4
0 0 0
0 18 1
10 18 1
10 0 0
999 32 0
`

func TestLoadFont(t *testing.T) {
	type args struct {
		src string
	}
	tests := []struct {
		name     string
		args     args
		want     map[int]int // code -> number of strokes
		wantErr  error
		wantLine int
	}{
		{
			name: "glyph and space",
			args: args{src: fontHAndSpace},
			want: map[int]int{65: 4, 32: 0, 66: 0, 127: 0, 0: 0},
		},
		{
			name: "other lines are ignored",
			args: args{src: "# comment\n\n999 abc\nhello\n999 73 1\n4 0 0\ntrailing\n"},
			want: map[int]int{73: 1},
		},
		{
			name: "later entry replaces earlier",
			args: args{src: "999 73 1\n4 0 0\n999 73 2\n0 0 0\n0 18 1\n"},
			want: map[int]int{73: 2},
		},
		{
			name: "extra fields are ignored",
			args: args{src: "999 73 1 extra\n4 0 0 comment\n"},
			want: map[int]int{73: 1},
		},
		{
			name:     "code out of range",
			args:     args{src: fontHAndSpace + "999 200 1\n0 0 0\n"},
			wantErr:  ErrInvalidCode,
			wantLine: 7,
		},
		{
			name:     "negative code",
			args:     args{src: "999 -1 1\n0 0 0\n"},
			wantErr:  ErrInvalidCode,
			wantLine: 1,
		},
		{
			name:     "truncated",
			args:     args{src: "999 65 3\n0 0 0\n0 18 1\n"},
			wantErr:  ErrTruncatedInput,
			wantLine: 3,
		},
		{
			name:     "stroke is not a number",
			args:     args{src: "999 65 2\n0 0 0\nx y z\n"},
			wantErr:  ErrMalformedStroke,
			wantLine: 3,
		},
		{
			name:     "stroke is short",
			args:     args{src: "999 65 1\n0 0\n"},
			wantErr:  ErrMalformedStroke,
			wantLine: 2,
		},
		{
			name:     "blank stroke line",
			args:     args{src: "999 65 2\n0 0 0\n\n1 1 1\n"},
			wantErr:  ErrMalformedStroke,
			wantLine: 3,
		},
		{
			name:     "invalid pen",
			args:     args{src: "999 65 1\n0 0 2\n"},
			wantErr:  ErrMalformedStroke,
			wantLine: 2,
		},
		{
			name:     "too many strokes",
			args:     args{src: "999 65 51\n"},
			wantErr:  ErrStrokeCount,
			wantLine: 1,
		},
		{
			name:     "negative stroke count",
			args:     args{src: "999 65 -1\n"},
			wantErr:  ErrStrokeCount,
			wantLine: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFont(strings.NewReader(tt.args.src))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadFont() error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("LoadFont() returned a font with error %v", err)
				}
				var fe *FontError
				if !errors.As(err, &fe) {
					t.Fatalf("LoadFont() error %T is not a *FontError", err)
				}
				if fe.Line != tt.wantLine {
					t.Errorf("FontError.Line = %d, want %d", fe.Line, tt.wantLine)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFont() unexpected error = %v", err)
			}
			if got.Len() != DefaultConfig.MaxCharacters {
				t.Errorf("Len() = %d, want %d", got.Len(), DefaultConfig.MaxCharacters)
			}
			for code, n := range tt.want {
				g, ok := got.Glyph(code)
				if !ok {
					t.Fatalf("Glyph(%d) not found", code)
				}
				if g.Code != code {
					t.Errorf("Glyph(%d).Code = %d", code, g.Code)
				}
				if len(g.Strokes) != n {
					t.Errorf("Glyph(%d) has %d strokes, want %d", code, len(g.Strokes), n)
				}
			}
		})
	}
}

func TestLoadFont_strokes(t *testing.T) {
	font, err := LoadFont(strings.NewReader(fontHAndSpace))
	if err != nil {
		t.Fatal(err)
	}
	g, _ := font.Glyph(65)
	want := []Stroke{{0, 0, false}, {0, 18, true}, {10, 18, true}, {10, 0, false}}
	for i, st := range want {
		if g.Strokes[i] != st {
			t.Errorf("stroke %d = %v, want %v", i, g.Strokes[i], st)
		}
	}
	if g.Advance() != 10 {
		t.Errorf("Advance() = %d, want 10", g.Advance())
	}
	if codes := font.Codes(); len(codes) != 1 || codes[0] != 65 {
		t.Errorf("Codes() = %v, want [65]", codes)
	}
}

func TestLoadFont_longLines(t *testing.T) {
	long := strings.Repeat("#", 70000)
	tests := []struct {
		name string
		src  string
	}{
		{"long comment", long + "\n" + fontHAndSpace},
		{"long trailing line", fontHAndSpace + long},
		{"long stroke comment", "999 65 1\n0 0 0 " + long + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font, err := LoadFont(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("LoadFont() error = %v", err)
			}
			if g, _ := font.Glyph(65); !g.Defined() {
				t.Error("glyph 65 not loaded")
			}
		})
	}
}

func TestLoadFont_readError(t *testing.T) {
	errDisk := errors.New("disk gone")
	tests := []struct {
		name     string
		r        io.Reader
		wantLine int
		wantCode int
	}{
		{
			name:     "between glyphs",
			r:        io.MultiReader(strings.NewReader("999 65 1\n0 0 0\n"), iotest.ErrReader(errDisk)),
			wantLine: 3,
			wantCode: -1,
		},
		{
			name:     "inside a glyph",
			r:        io.MultiReader(strings.NewReader("# font\n999 65 2\n0 0 0\n"), iotest.ErrReader(errDisk)),
			wantLine: 4,
			wantCode: 65,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFont(tt.r)
			if !errors.Is(err, errDisk) || !errors.Is(err, ErrSourceUnavailable) {
				t.Fatalf("LoadFont() error = %v, want %v and %v", err, errDisk, ErrSourceUnavailable)
			}
			var fe *FontError
			if !errors.As(err, &fe) {
				t.Fatalf("LoadFont() error %T is not a *FontError", err)
			}
			if fe.Line != tt.wantLine || fe.Code != tt.wantCode {
				t.Errorf("FontError line %d code %d, want line %d code %d", fe.Line, fe.Code, tt.wantLine, tt.wantCode)
			}
		})
	}
}

func TestConfig_LoadFont_invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative characters", func(c *Config) { c.MaxCharacters = -1 }},
		{"no characters", func(c *Config) { c.MaxCharacters = 0 }},
		{"negative strokes", func(c *Config) { c.MaxStrokes = -1 }},
		{"zero glyph height", func(c *Config) { c.GlyphHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.modify(&cfg)
			font, err := cfg.LoadFont(strings.NewReader(fontHAndSpace))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadFont() error = %v, want %v", err, ErrInvalidConfig)
			}
			if font != nil {
				t.Error("LoadFont() returned a font for an invalid config")
			}
		})
	}
}

func TestConfig_LoadFont(t *testing.T) {
	cfg := DefaultConfig
	cfg.MaxCharacters = 64
	cfg.MaxStrokes = 2

	if _, err := cfg.LoadFont(strings.NewReader(fontHAndSpace)); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("code 65 with 64 characters: error = %v, want %v", err, ErrInvalidCode)
	}
	if _, err := cfg.LoadFont(strings.NewReader("999 32 3\n")); !errors.Is(err, ErrStrokeCount) {
		t.Errorf("3 strokes with capacity 2: error = %v, want %v", err, ErrStrokeCount)
	}
	font, err := cfg.LoadFont(strings.NewReader("999 33 2\n0 0 0\n0 18 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if font.Len() != 64 {
		t.Errorf("Len() = %d, want 64", font.Len())
	}
}

func TestLoadFontFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFontFile(filepath.Join(t.TempDir(), "nofont.txt"))
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("LoadFontFile() error = %v, want %v", err, ErrSourceUnavailable)
		}
	})
	t.Run("test font", func(t *testing.T) {
		font, err := LoadFontFile(filepath.Join("testdata", "SingleStrokeFont.txt"))
		if err != nil {
			t.Fatal(err)
		}
		for code, n := range map[int]int{'H': 7, 'I': 3, 'e': 9, ' ': 0} {
			if g, _ := font.Glyph(code); len(g.Strokes) != n {
				t.Errorf("glyph %q has %d strokes, want %d", rune(code), len(g.Strokes), n)
			}
		}
	})
}

func TestFontError_Error(t *testing.T) {
	err := &FontError{Line: 3, Code: 200, Err: ErrInvalidCode}
	if got, want := err.Error(), "font: line 3: character 200: invalid character code"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err = &FontError{Line: 9, Code: -1, Err: ErrSourceUnavailable}
	if got, want := err.Error(), "font: line 9: font source unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
