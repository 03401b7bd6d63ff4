package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rusq/robowriter"
)

// askHeight asks for the text height until the answer is within the range
// allowed by cfg.
func askHeight(in io.Reader, out io.Writer, cfg robowriter.Config) (float64, error) {
	br := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "Enter text height (%.1f-%.1f mm): ", cfg.MinHeight, cfg.MaxHeight)
		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			return 0, fmt.Errorf("text height: %w", err)
		}
		height, perr := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if perr == nil && height >= cfg.MinHeight && height <= cfg.MaxHeight {
			return height, nil
		}
		fmt.Fprintf(out, "Invalid height. Please enter a value between %.1f and %.1f mm\n", cfg.MinHeight, cfg.MaxHeight)
		if err != nil {
			return 0, fmt.Errorf("text height: %w", err)
		}
	}
}
