package robowriter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Hook is run by the Engine before or after the text.  It may send
// commands to the sink, for example to initialise the robot.
type Hook func(ctx context.Context, sink Sink) error

// Engine lays out text and sends the resulting commands to a sink.  An
// Engine keeps no state between calls to Layout.
type Engine struct {
	Font   *Font
	Config Config
	// Before is run once before the first word, After once after the last
	// word has been sent.  Either may be nil.
	Before Hook
	After  Hook
}

// NewEngine returns an Engine with the DefaultConfig.
func NewEngine(f *Font) *Engine {
	return &Engine{Font: f, Config: DefaultConfig}
}

// Stats describes the text written by Layout.
type Stats struct {
	Words   int
	Lines   int
	Glyphs  int // glyphs rendered
	Skipped int // characters without a glyph
	// Cursor is the final position of the layout cursor.
	Cursor vec.Vec2
	// Bounds encloses all moves sent to the sink.
	Bounds rect.Rect
}

// LayoutText lays out the text from r with a default Engine.
func LayoutText(ctx context.Context, f *Font, r io.Reader, scale float64, sink Sink) (*Stats, error) {
	return NewEngine(f).Layout(ctx, r, scale, sink)
}

// Layout reads whitespace separated words from r and writes them line by
// line, scaled by scale, sending the commands to sink.
//
// The first baseline is one text height below the origin.  A word that does
// not fit on the current line starts a new line one line advance lower; a
// word that does not fit on an empty line is written anyway.  Characters
// without a glyph are skipped and take no room.
//
// A sink error stops the layout and is returned.
func (e *Engine) Layout(ctx context.Context, r io.Reader, scale float64, sink Sink) (*Stats, error) {
	if e.Before != nil {
		if err := e.Before(ctx, sink); err != nil {
			return nil, fmt.Errorf("before: %w", err)
		}
	}

	l := layout{
		Engine: e,
		scale:  scale,
		sink:   sink,
		cursor: vec.Vec2{X: 0, Y: -e.Config.TextHeight(scale)},
	}
	br := bufio.NewReader(r)
	for {
		w, err := readWord(br)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		if err := l.word(ctx, w); err != nil {
			return nil, err
		}
	}

	if e.After != nil {
		if err := e.After(ctx, sink); err != nil {
			return nil, fmt.Errorf("after: %w", err)
		}
	}
	l.stats.Cursor = l.cursor
	slog.Debug("layout done", "words", l.stats.Words, "lines", l.stats.Lines, "glyphs", l.stats.Glyphs, "skipped", l.stats.Skipped)
	return &l.stats, nil
}

// readWord returns the next run of non-space characters, of any length.  It
// returns io.EOF when there are no more words.
func readWord(br *bufio.Reader) (string, error) {
	var word strings.Builder
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && word.Len() > 0 {
				return word.String(), nil
			}
			return "", err
		}
		if unicode.IsSpace(r) {
			if word.Len() > 0 {
				return word.String(), nil
			}
			continue
		}
		word.WriteRune(r)
	}
}

// layout is the state of a single Layout call.
type layout struct {
	*Engine
	scale  float64
	sink   Sink
	cursor vec.Vec2
	stats  Stats
	moved  bool // Bounds holds at least one point
}

func (l *layout) word(ctx context.Context, word string) error {
	width := l.width(word)
	if l.stats.Lines == 0 {
		l.stats.Lines = 1
	} else if l.cursor.X > 0 && l.cursor.X+width > l.Config.MaxLineWidth {
		l.cursor.X = 0
		l.cursor.Y -= l.Config.LineAdvance(l.scale)
		l.stats.Lines++
		slog.Debug("line break", "line", l.stats.Lines, "y", l.cursor.Y, "word", word)
	}

	for _, r := range word {
		code, ok := Fold(r, l.Font.Len())
		if !ok {
			l.skip(r, word)
			continue
		}
		cmds, err := RenderGlyph(l.Font, code, l.scale, l.cursor.X, l.cursor.Y)
		if err != nil {
			if errors.Is(err, ErrUnknownGlyph) {
				l.skip(r, word)
				continue
			}
			return err
		}
		for _, c := range cmds {
			if err := l.sink.Send(ctx, c); err != nil {
				return fmt.Errorf("character %q: %w", r, err)
			}
			if c.Kind == KindMove {
				l.extend(vec.Vec2{X: c.X, Y: c.Y})
			}
		}
		w, _ := l.Font.Width(code, l.scale)
		l.cursor.X += w
		l.stats.Glyphs++
	}
	l.cursor.X += l.scale * l.Config.WordSpacing
	l.stats.Words++
	return nil
}

// width returns the width of word.  It must agree with the cursor advance
// in word.
func (l *layout) width(word string) float64 {
	var width float64
	for _, r := range word {
		code, ok := Fold(r, l.Font.Len())
		if !ok {
			continue
		}
		if w, ok := l.Font.Width(code, l.scale); ok {
			width += w
		}
	}
	return width
}

func (l *layout) skip(r rune, word string) {
	l.stats.Skipped++
	slog.Debug("no glyph for character", "char", string(r), "word", word)
}

func (l *layout) extend(p vec.Vec2) {
	b := &l.stats.Bounds
	if !l.moved {
		*b = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
		l.moved = true
		return
	}
	b.LLx = min(b.LLx, p.X)
	b.LLy = min(b.LLy, p.Y)
	b.URx = max(b.URx, p.X)
	b.URy = max(b.URy, p.Y)
}
