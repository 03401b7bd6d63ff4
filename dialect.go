package robowriter

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed drivers/grbl.csv
var grblcsv []byte

// DefaultDialect is the GRBL dialect spoken by the robot controller.
var DefaultDialect *Dialect

func init() {
	var err error
	DefaultDialect, err = readDialect(bytes.NewReader(grblcsv), nil)
	if err != nil {
		panic(fmt.Sprintf("failed to load default dialect: %v", err))
	}
}

// Dialect is the textual encoding of plotter commands understood by a
// controller.
type Dialect struct {
	// Wake is sent to wake the controller up.
	Wake string
	// PenDown and PenUp engage and disengage the pen.
	PenDown string
	PenUp   string
	// Draw and Travel are format strings for pen-down and pen-up moves, they
	// receive X and Y as float64 arguments.
	Draw   string
	Travel string
	// Init is sent once before writing, Home once after.
	Init []string
	Home []string
}

// LoadDialect reads a dialect from the CSV file name.  Entries that are not
// in the file are taken from the DefaultDialect.
func LoadDialect(name string) (*Dialect, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDialect(f, DefaultDialect)
}

// readDialect reads "name,value" rows.  The init and home names may appear
// several times, their values are sent in file order.
func readDialect(r io.Reader, base *Dialect) (*Dialect, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	var d Dialect
	if base != nil {
		d = *base
	}
	var initSet, homeSet bool
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		// header is expected to be: "name,value"
		rowMap := map[string]string{}
		for i, key := range header {
			rowMap[key] = row[i]
		}

		value := rowMap["value"]
		switch name := rowMap["name"]; name {
		case "wake":
			d.Wake = value
		case "pen_down":
			d.PenDown = value
		case "pen_up":
			d.PenUp = value
		case "draw":
			d.Draw = value
		case "travel":
			d.Travel = value
		case "init":
			if !initSet {
				d.Init, initSet = nil, true
			}
			d.Init = append(d.Init, value)
		case "home":
			if !homeSet {
				d.Home, homeSet = nil, true
			}
			d.Home = append(d.Home, value)
		default:
			return nil, fmt.Errorf("unknown dialect entry %q", name)
		}
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Dialect) validate() error {
	entries := []struct{ name, format string }{
		{"draw", d.Draw},
		{"travel", d.Travel},
	}
	for _, e := range entries {
		if s := fmt.Sprintf(e.format, 0.0, 0.0); strings.Contains(s, "%!") {
			return fmt.Errorf("dialect entry %s: bad format %q", e.name, e.format)
		}
	}
	return nil
}

// Encode returns the text of the command, without the line terminator.
func (d *Dialect) Encode(c Command) string {
	if c.Text != "" {
		return c.Text
	}
	switch c.Kind {
	case KindPen:
		if c.Pen == PenDown {
			return d.PenDown
		}
		return d.PenUp
	case KindMove:
		f := d.Travel
		if c.Pen == PenDown {
			f = d.Draw
		}
		return fmt.Sprintf(f, c.X, c.Y)
	}
	return ""
}

// WakeCommand returns the wake up command.
func (d *Dialect) WakeCommand() Command {
	return RawCommand(d.Wake)
}

// InitCommands returns the commands that prepare the robot for writing.
func (d *Dialect) InitCommands() []Command {
	return decodeLines(d.Init)
}

// HomeCommands returns the commands that lift the pen and return the robot
// to the origin.
func (d *Dialect) HomeCommands() []Command {
	return decodeLines(d.Home)
}

// InitHook returns a Hook that sends InitCommands.
func (d *Dialect) InitHook() Hook {
	return sendAll(d.InitCommands())
}

// HomeHook returns a Hook that sends HomeCommands.
func (d *Dialect) HomeHook() Hook {
	return sendAll(d.HomeCommands())
}

func sendAll(cmds []Command) Hook {
	return func(ctx context.Context, sink Sink) error {
		for _, c := range cmds {
			if err := sink.Send(ctx, c); err != nil {
				return err
			}
		}
		return nil
	}
}
