package robowriter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

type DecodeError struct {
	Message string
	Line    int
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at line %d: %s", e.Message, e.Line, e.Err)
	}
	return fmt.Sprintf("%s at line %d", e.Message, e.Line)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeProgram decodes a G-code program, as written by a WriterSink, into
// commands.  Pen state changes (S words) and linear moves (G0, G1) are
// recognised, any other line becomes a raw command.  Blank lines and
// comments are dropped.
func DecodeProgram(r io.Reader) ([]Command, error) {
	d := NewDecoder(r)

	var commands []Command
LOOP:
	for {
		cmd, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break LOOP // End of stream
			}
			return nil, err
		}
		commands = append(commands, cmd)
		slog.Debug("command", "line", d.line, "kind", cmd.Kind, "text", cmd.Text)
	}

	return commands, nil
}

// Decoder reads commands from a G-code program.
type Decoder struct {
	s    *bufio.Scanner
	line int     // current line number
	x, y float64 // last position, for moves that omit an axis
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{s: bufio.NewScanner(r)}
}

// Next returns the next command of the program.  It returns io.EOF at the
// end of the program.
func (d *Decoder) Next() (Command, error) {
	for d.s.Scan() {
		d.line++
		cmd, ok, err := d.decodeLine(d.s.Text())
		if err != nil {
			return Command{}, &DecodeError{Message: "invalid command", Line: d.line, Err: err}
		}
		if ok {
			return cmd, nil
		}
	}
	if err := d.s.Err(); err != nil {
		return Command{}, &DecodeError{Message: "read error", Line: d.line, Err: err}
	}
	return Command{}, io.EOF
}

// decodeLine decodes a single line.  ok is false if the line holds no
// command.
func (d *Decoder) decodeLine(line string) (cmd Command, ok bool, err error) {
	text := strings.TrimSpace(stripComments(line))
	if text == "" {
		return Command{}, false, nil
	}
	words := strings.Fields(strings.ToUpper(text))
	switch words[0] {
	case "G0", "G00", "G1", "G01":
		pen := PenUp
		if strings.HasSuffix(words[0], "1") {
			pen = PenDown
		}
		x, y := d.x, d.y
		var seen bool
		for _, w := range words[1:] {
			if len(w) < 2 || (w[0] != 'X' && w[0] != 'Y') {
				continue
			}
			v, err := strconv.ParseFloat(w[1:], 64)
			if err != nil {
				return Command{}, false, fmt.Errorf("%s: %w", w, err)
			}
			if w[0] == 'X' {
				x = v
			} else {
				y = v
			}
			seen = true
		}
		if !seen {
			break
		}
		d.x, d.y = x, y
		cmd := MoveCommand(pen, x, y)
		cmd.Text = text
		return cmd, true, nil
	default:
		if len(words) == 1 && len(words[0]) > 1 && words[0][0] == 'S' {
			v, err := strconv.ParseFloat(words[0][1:], 64)
			if err != nil {
				return Command{}, false, fmt.Errorf("%s: %w", words[0], err)
			}
			cmd := PenCommand(penOf(v > 0))
			cmd.Text = text
			return cmd, true, nil
		}
	}
	return RawCommand(text), true, nil
}

// stripComments removes ";" comments and parenthesised comments.
func stripComments(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	for {
		i := strings.IndexByte(line, '(')
		if i < 0 {
			return line
		}
		j := strings.IndexByte(line[i:], ')')
		if j < 0 {
			return line[:i]
		}
		line = line[:i] + line[i+j+1:]
	}
}

// decodeLines decodes the lines of a command sequence.  Lines that fail to
// decode are kept as raw commands.
func decodeLines(lines []string) []Command {
	var d Decoder
	cmds := make([]Command, 0, len(lines))
	for _, l := range lines {
		cmd, ok, err := d.decodeLine(l)
		if err != nil {
			cmd, ok = RawCommand(l), true
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
