// Command fonted allows you to view single stroke font files before loading
// them into the writer.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rusq/robowriter"
)

var (
	fontFile = flag.String("font", "SingleStrokeFont.txt", "single stroke font `file`")
	prn      = flag.Bool("p", false, "only plot the glyphs, without the stroke table")
	verbose  = flag.Bool("v", os.Getenv("DEBUG") == "1", "enable verbose logging")
)

func main() {
	flag.Parse()
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	font, err := robowriter.LoadFontFile(*fontFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	codes := font.Codes()
	if flag.NArg() > 0 {
		codes = codes[:0]
		for _, r := range strings.Join(flag.Args(), "") {
			codes = append(codes, int(r))
		}
	}
	for _, code := range codes {
		if err := printGlyph(os.Stdout, font, code, !*prn, [2]rune{' ', 'X'}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printGlyph(w io.Writer, font *robowriter.Font, code int, table bool, disp [2]rune) error {
	g, ok := font.Glyph(code)
	if !ok || !g.Defined() {
		return fmt.Errorf("character %q (%d): %w", rune(code), code, robowriter.ErrUnknownGlyph)
	}
	if _, err := fmt.Fprintf(w, "%q (%d): %d strokes, advance %d\n", rune(code), code, len(g.Strokes), g.Advance()); err != nil {
		return err
	}
	if table {
		for i, st := range g.Strokes {
			pen := 0
			if st.PenDown {
				pen = 1
			}
			if _, err := fmt.Fprintf(w, "  %2d: %3d %3d %d\n", i, st.X, st.Y, pen); err != nil {
				return err
			}
		}
	}
	return plotGlyph(w, g, disp)
}

// plotGlyph draws the pen down strokes of g, top row first.
func plotGlyph(w io.Writer, g robowriter.Glyph, disp [2]rune) error {
	var maxX, maxY int
	for _, st := range g.Strokes {
		maxX, maxY = max(maxX, st.X), max(maxY, st.Y)
	}
	grid := make([][]bool, maxY+1)
	for y := range grid {
		grid[y] = make([]bool, maxX+1)
	}
	var x0, y0 int
	for _, st := range g.Strokes {
		if st.PenDown {
			line(grid, x0, y0, st.X, st.Y)
		}
		x0, y0 = st.X, st.Y
	}

	for y := maxY; y >= 0; y-- {
		var buf strings.Builder
		for _, on := range grid[y] {
			if on {
				buf.WriteRune(disp[1])
			} else {
				buf.WriteRune(disp[0])
			}
		}
		buf.WriteByte('\n')
		if _, err := io.WriteString(w, buf.String()); err != nil {
			return err
		}
	}
	return nil
}

// line sets the cells between (x0, y0) and (x1, y1), both included.
// Negative coordinates are clipped.
func line(grid [][]bool, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = true
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
