package robowriter

import (
	"errors"
	"fmt"
)

// Font loading errors.
var (
	ErrSourceUnavailable = errors.New("font source unavailable")
	ErrInvalidCode       = errors.New("invalid character code")
	ErrTruncatedInput    = errors.New("truncated input")
	ErrMalformedStroke   = errors.New("malformed stroke")
	ErrStrokeCount       = errors.New("stroke count out of range")
)

// ErrUnknownGlyph is returned when a character has no strokes or is outside
// of the font table.
var ErrUnknownGlyph = errors.New("unknown glyph")

// FontError describes a failure to load a font.  Line is the 1-based line of
// the font source where the problem was detected, Code is the character code
// of the glyph being read, or -1 if it is not known.
type FontError struct {
	Line int
	Code int
	Err  error
}

func (e *FontError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("font: line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("font: line %d: character %d: %s", e.Line, e.Code, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}

// RenderError is returned by RenderGlyph.
type RenderError struct {
	Code int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render character %d: %s", e.Code, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
