package robowriter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// headerMarker starts every glyph header line: "999 <code> <strokes>".
const headerMarker = "999"

// LoadFont reads a font with the DefaultConfig limits.
func LoadFont(r io.Reader) (*Font, error) {
	return DefaultConfig.LoadFont(r)
}

// LoadFontFile reads the font file name with the DefaultConfig limits.
func LoadFontFile(name string) (*Font, error) {
	return DefaultConfig.LoadFontFile(name)
}

// LoadFontFile opens the font file name and loads it.
func (c Config) LoadFontFile(name string) (*Font, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()
	slog.Debug("loading font", "file", name)
	return c.LoadFont(f)
}

// LoadFont parses the font description from r.  Each glyph starts with a
// header line
//
//	999 <code> <strokes>
//
// followed by exactly <strokes> lines of "<x> <y> <pen>".  Lines outside of a
// glyph that are not headers are ignored.  Codes that have no entry in the
// source get an empty glyph.
//
// The returned font is complete: on error no font is returned.  Errors in the
// source are reported as a *FontError, an invalid c as ErrInvalidConfig.
func (c Config) LoadFont(r io.Reader) (*Font, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	font := newFont(c.MaxCharacters)

	lr := lineReader{br: bufio.NewReader(r)}
	fontErr := func(code int, err error) error {
		return &FontError{Line: lr.line, Code: code, Err: err}
	}
	// the line that could not be read is the one after the last line read.
	readErr := func(code int) error {
		return &FontError{Line: lr.line + 1, Code: code, Err: fmt.Errorf("%w: %w", ErrSourceUnavailable, lr.Err())}
	}
	for lr.Next() {
		code, count, ok := parseHeader(lr.Text())
		if !ok {
			continue
		}
		lg := slog.With("line", lr.line, "code", code, "strokes", count)
		if code < 0 || code >= c.MaxCharacters {
			lg.Debug("invalid character code")
			return nil, fontErr(code, fmt.Errorf("%w: must be in 0..%d", ErrInvalidCode, c.MaxCharacters-1))
		}
		if count < 0 || count > c.MaxStrokes {
			lg.Debug("invalid stroke count")
			return nil, fontErr(code, fmt.Errorf("%w: %d, maximum is %d", ErrStrokeCount, count, c.MaxStrokes))
		}

		strokes := make([]Stroke, 0, count)
		for i := range count {
			if !lr.Next() {
				if lr.Err() != nil {
					return nil, readErr(code)
				}
				return nil, fontErr(code, fmt.Errorf("%w: got %d of %d strokes", ErrTruncatedInput, i, count))
			}
			st, err := parseStroke(lr.Text())
			if err != nil {
				return nil, fontErr(code, err)
			}
			strokes = append(strokes, st)
		}
		font.glyphs[code].Strokes = strokes
		lg.Debug("glyph loaded")
	}
	if lr.Err() != nil {
		return nil, readErr(-1)
	}
	slog.Debug("font loaded", "glyphs", len(font.Codes()), "lines", lr.line)
	return font, nil
}

// lineReader reads lines of any length, counting them.
type lineReader struct {
	br   *bufio.Reader
	line int // number of lines read
	text string
	err  error
}

// Next reads the next line.  It returns false at the end of the input or on
// a read error.
func (lr *lineReader) Next() bool {
	if lr.err != nil {
		return false
	}
	s, err := lr.br.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		lr.err = err
		return false
	}
	lr.line++
	lr.text = strings.TrimRight(s, "\r\n")
	return true
}

// Text returns the last line read, without the line terminator.
func (lr *lineReader) Text() string {
	return lr.text
}

// Err returns the read error, if any.  The end of the input is not an error.
func (lr *lineReader) Err() error {
	if errors.Is(lr.err, io.EOF) {
		return nil
	}
	return lr.err
}

// parseHeader returns the character code and stroke count of a glyph header
// line.  ok is false if the line is not a header.
func parseHeader(line string) (code, count int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != headerMarker {
		return 0, 0, false
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	count, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, false
	}
	return code, count, true
}

func parseStroke(line string) (Stroke, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Stroke{}, fmt.Errorf("%w: %q: expected \"<x> <y> <pen>\"", ErrMalformedStroke, line)
	}
	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return Stroke{}, fmt.Errorf("%w: %q: %w", ErrMalformedStroke, line, err)
		}
		v[i] = n
	}
	if v[2] != 0 && v[2] != 1 {
		return Stroke{}, fmt.Errorf("%w: %q: pen must be 0 or 1", ErrMalformedStroke, line)
	}
	return Stroke{X: v[0], Y: v[1], PenDown: v[2] == 1}, nil
}
