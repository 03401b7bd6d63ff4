// Package robowriter turns plain text into pen plotter commands for a robot
// arm that writes with a single stroke font.
package robowriter

// Stroke is a single target coordinate of a glyph, in font units, and the pen
// state used while moving to it.
type Stroke struct {
	X, Y    int
	PenDown bool
}

// Glyph is the stroke program of one character.
type Glyph struct {
	Code    int
	Strokes []Stroke
}

// Defined reports whether the glyph has anything to draw.
func (g Glyph) Defined() bool {
	return len(g.Strokes) > 0
}

// Advance is the width of the glyph in font units: the X coordinate of its
// last stroke.  Undefined glyphs have zero advance.
func (g Glyph) Advance() int {
	if len(g.Strokes) == 0 {
		return 0
	}
	return g.Strokes[len(g.Strokes)-1].X
}

// Font is the font table.  It holds exactly one glyph per valid character
// code and is never modified after LoadFont returns it, so it is safe to
// share between goroutines.
type Font struct {
	glyphs []Glyph
}

func newFont(size int) *Font {
	f := &Font{glyphs: make([]Glyph, size)}
	for i := range f.glyphs {
		f.glyphs[i].Code = i
	}
	return f
}

// Len returns the number of character codes in the table.
func (f *Font) Len() int {
	return len(f.glyphs)
}

// Glyph returns the glyph for code.  ok is false if code is outside of the
// table.  The stroke slice is shared with the table and must not be modified.
func (f *Font) Glyph(code int) (g Glyph, ok bool) {
	if code < 0 || code >= len(f.glyphs) {
		return Glyph{}, false
	}
	return f.glyphs[code], true
}

// Width returns the advance of the glyph for code at the given scale.  ok is
// false when the glyph cannot be rendered, in which case it takes no room.
func (f *Font) Width(code int, scale float64) (w float64, ok bool) {
	g, ok := f.Glyph(code)
	if !ok || !g.Defined() {
		return 0, false
	}
	return float64(g.Advance()) * scale, true
}

// Codes returns the codes of all defined glyphs, in ascending order.
func (f *Font) Codes() []int {
	var codes []int
	for _, g := range f.glyphs {
		if g.Defined() {
			codes = append(codes, g.Code)
		}
	}
	return codes
}
