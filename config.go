package robowriter

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for a Config that cannot describe a font or
// a writing area.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the tunables of the font and layout engine.  Distances are in
// millimetres unless stated otherwise.
type Config struct {
	// MaxCharacters is the size of the font table: codes 0..MaxCharacters-1
	// are valid.
	MaxCharacters int
	// MaxStrokes is the stroke capacity of a single glyph.
	MaxStrokes int
	// GlyphHeight is the design height of the font, in font units.
	GlyphHeight float64
	// LineSpacing is the gap between two lines of text.
	LineSpacing float64
	// WordSpacing is the gap between two words, in font units.  It is
	// multiplied by the scale.
	WordSpacing float64
	// MaxLineWidth is the width available for a line of text.
	MaxLineWidth float64
	// MinHeight and MaxHeight bound the text height accepted by Scale.
	MinHeight float64
	MaxHeight float64
}

// DefaultConfig matches the single stroke font shipped with the writer and
// a 100mm wide writing area.
var DefaultConfig = Config{
	MaxCharacters: 128,
	MaxStrokes:    50,
	GlyphHeight:   18,
	LineSpacing:   5,
	WordSpacing:   5,
	MaxLineWidth:  100,
	MinHeight:     4,
	MaxHeight:     10,
}

// validate checks the limits that the loader and Scale depend on.
func (c Config) validate() error {
	switch {
	case c.MaxCharacters <= 0:
		return fmt.Errorf("%w: MaxCharacters is %d, must be positive", ErrInvalidConfig, c.MaxCharacters)
	case c.MaxStrokes < 0:
		return fmt.Errorf("%w: MaxStrokes is %d, must not be negative", ErrInvalidConfig, c.MaxStrokes)
	case !(c.GlyphHeight > 0):
		return fmt.Errorf("%w: GlyphHeight is %v, must be positive", ErrInvalidConfig, c.GlyphHeight)
	case !(c.MinHeight > 0) || !(c.MaxHeight >= c.MinHeight):
		return fmt.Errorf("%w: text height range %v-%v", ErrInvalidConfig, c.MinHeight, c.MaxHeight)
	}
	return nil
}

// Scale returns the scale factor that renders glyphs height millimetres tall.
func (c Config) Scale(height float64) (float64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	if height < c.MinHeight || height > c.MaxHeight {
		return 0, fmt.Errorf("text height %.2f outside of %.1f-%.1f mm", height, c.MinHeight, c.MaxHeight)
	}
	return height / c.GlyphHeight, nil
}

// TextHeight returns the height of a line of text at the given scale.
func (c Config) TextHeight(scale float64) float64 {
	return c.GlyphHeight * scale
}

// LineAdvance is the vertical distance between two baselines.
func (c Config) LineAdvance(scale float64) float64 {
	return c.LineSpacing + c.TextHeight(scale)
}
