package robowriter

import "seehuhn.de/go/geom/matrix"

// RenderGlyph returns the commands that draw the glyph for code, scaled by
// scale and with its origin at (originX, originY).
//
// A pen state command is issued before the first move and whenever the pen
// state changes between two strokes, followed by one move per stroke, in
// stroke order.  The font is not modified and no state is kept between
// calls: identical arguments produce identical commands.
//
// If the glyph is out of range or has no strokes, the error is a
// *RenderError wrapping ErrUnknownGlyph.
func RenderGlyph(f *Font, code int, scale, originX, originY float64) ([]Command, error) {
	g, ok := f.Glyph(code)
	if !ok || !g.Defined() {
		return nil, &RenderError{Code: code, Err: ErrUnknownGlyph}
	}

	m := matrix.Matrix{scale, 0, 0, scale, originX, originY}
	cmds := make([]Command, 0, 2*len(g.Strokes))
	for i, st := range g.Strokes {
		pen := penOf(st.PenDown)
		if i == 0 || st.PenDown != g.Strokes[i-1].PenDown {
			cmds = append(cmds, PenCommand(pen))
		}
		x, y := m.Apply(float64(st.X), float64(st.Y))
		cmds = append(cmds, MoveCommand(pen, x, y))
	}
	return cmds, nil
}
