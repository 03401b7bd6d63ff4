package robowriter

import "fmt"

// Pen is the state of the pen.
type Pen uint8

const (
	PenUp   Pen = iota // disengaged
	PenDown            // engaged, drawing
)

func (p Pen) String() string {
	if p == PenDown {
		return "down"
	}
	return "up"
}

func penOf(down bool) Pen {
	if down {
		return PenDown
	}
	return PenUp
}

// Kind is the kind of a Command.
type Kind uint8

const (
	KindRaw  Kind = iota // literal text, passed to the device as is
	KindPen              // pen state change
	KindMove             // move to X, Y with the pen in state Pen
)

func (k Kind) String() string {
	switch k {
	case KindPen:
		return "pen"
	case KindMove:
		return "move"
	case KindRaw:
		return "raw"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Command is a single instruction for the plotter.
type Command struct {
	Kind Kind
	Pen  Pen
	X, Y float64
	// Text, if not empty, is the literal encoding of the command and takes
	// precedence over the dialect.  It is always set for KindRaw.
	Text string
}

// PenCommand returns a pen state change command.
func PenCommand(p Pen) Command {
	return Command{Kind: KindPen, Pen: p}
}

// MoveCommand returns a command that moves to x, y with the pen in state p.
func MoveCommand(p Pen, x, y float64) Command {
	return Command{Kind: KindMove, Pen: p, X: x, Y: y}
}

// RawCommand returns a command that is sent to the device verbatim.
func RawCommand(s string) Command {
	return Command{Kind: KindRaw, Text: s}
}

// String returns the command encoded in the default dialect.
func (c Command) String() string {
	return DefaultDialect.Encode(c)
}
