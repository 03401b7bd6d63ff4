// Command robowriter writes a text file with the writing robot.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/rusq/robowriter"
)

var params = struct {
	font       string
	height     float64
	port       string
	baud       int
	output     string
	preview    string
	dialect    string
	replay     string
	isTemplate bool
	verbose    bool
}{
	font: "SingleStrokeFont.txt",
}

func init() {
	flag.Usage = usage
	flag.StringVar(&params.font, "font", params.font, "single stroke font `file`")
	flag.Float64Var(&params.height, "height", 0, "text height in mm (asked for if not set)")
	flag.StringVar(&params.port, "port", os.Getenv("ROBOWRITER_PORT"), "serial `port` of the robot")
	flag.IntVar(&params.baud, "baud", robowriter.DefaultBaudRate, "serial port baud rate")
	flag.StringVar(&params.output, "o", "", "write G-code to `file` instead of the robot (- for stdout)")
	flag.StringVar(&params.preview, "preview", "", "write a PNG preview to `file`")
	flag.StringVar(&params.dialect, "dialect", "", "controller dialect CSV `file`")
	flag.StringVar(&params.replay, "replay", "", "send the G-code program `file` instead of writing text")
	flag.BoolVar(&params.isTemplate, "t", false, "treat input as a Go template")
	flag.BoolVar(&params.verbose, "v", os.Getenv("DEBUG") == "1", "enable verbose logging")
}

func main() {
	flag.Parse()

	if params.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input string) error {
	d := robowriter.DefaultDialect
	if params.dialect != "" {
		var err error
		d, err = robowriter.LoadDialect(params.dialect)
		if err != nil {
			return fmt.Errorf("failed to load dialect: %w", err)
		}
	}

	if params.replay != "" {
		return withSink(ctx, d, func(sink robowriter.Sink) error {
			return replay(ctx, params.replay, sink)
		})
	}

	// the font is a hand written asset, refuse to do anything if it is broken.
	font, err := robowriter.LoadFontFile(params.font)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	scale, err := textScale(robowriter.DefaultConfig, params.height, input)
	if err != nil {
		return err
	}

	r, err := openInput(input)
	if err != nil {
		return err
	}
	defer r.Close()

	var text io.Reader = r
	if params.isTemplate {
		var buf bytes.Buffer
		if err := robowriter.ExpandTemplate(&buf, r); err != nil {
			return fmt.Errorf("template: %w", err)
		}
		text = &buf
	}

	eng := robowriter.NewEngine(font)
	eng.Before = d.InitHook()
	eng.After = d.HomeHook()
	return withSink(ctx, d, func(sink robowriter.Sink) error {
		st, err := eng.Layout(ctx, text, scale, sink)
		if err != nil {
			return err
		}
		slog.Info("text written", "input", input, "words", st.Words, "lines", st.Lines, "glyphs", st.Glyphs, "skipped", st.Skipped)
		return nil
	})
}

// errHeightFromStdin is returned when the text height would have to be asked
// for on the input that carries the text.
var errHeightFromStdin = errors.New("text is read from stdin, set the text height with -height")

// textScale returns the scale for the given text height, or asks the user
// for it if height is zero.
func textScale(cfg robowriter.Config, height float64, input string) (float64, error) {
	if height == 0 {
		if isStdin(input) {
			return 0, errHeightFromStdin
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return 0, errors.New("text height is not set, use -height")
		}
		var err error
		height, err = askHeight(os.Stdin, os.Stdout, cfg)
		if err != nil {
			return 0, err
		}
	}
	slog.Debug("text height", "mm", height)
	return cfg.Scale(height)
}

// isStdin reports whether the text is read from the standard input.
func isStdin(input string) bool {
	return input == "" || input == "-"
}

func openInput(input string) (io.ReadCloser, error) {
	if isStdin(input) {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return file, nil
}

// withSink opens the output (a file or the robot), and calls fn with it.
// If a preview was requested, commands are also sent to the preview.
func withSink(ctx context.Context, d *robowriter.Dialect, fn func(robowriter.Sink) error) error {
	var (
		sink      robowriter.Sink
		closeSink func() error
	)
	if params.output != "" {
		w := io.WriteCloser(nopWriteCloser{os.Stdout})
		if params.output != "-" {
			file, err := os.Create(params.output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			w = file
		}
		ws := robowriter.NewWriterSink(w, d)
		sink = ws
		closeSink = func() error {
			if err := ws.Flush(); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		}
	} else {
		dev, err := openDevice(ctx, d)
		if err != nil {
			return err
		}
		sink, closeSink = dev, dev.Close
	}

	var preview *robowriter.Preview
	if params.preview != "" {
		preview = robowriter.NewPreview()
		sink = robowriter.MultiSink(sink, preview)
	}

	if err := fn(sink); err != nil {
		closeSink()
		return err
	}
	if err := closeSink(); err != nil {
		return err
	}
	if preview != nil {
		return writePreview(params.preview, preview)
	}
	return nil
}

func openDevice(ctx context.Context, d *robowriter.Dialect) (*robowriter.Device, error) {
	if params.port == "" {
		ports, err := robowriter.ListPorts()
		if err != nil || len(ports) == 0 {
			return nil, errors.New("no serial port given, use -port")
		}
		return nil, fmt.Errorf("no serial port given, use -port, available: %s", strings.Join(ports, ", "))
	}
	dev, err := robowriter.OpenSerial(params.port, params.baud, d)
	if err != nil {
		return nil, err
	}
	if err := dev.Wake(ctx); err != nil {
		dev.Close()
		return nil, err
	}
	fmt.Fprintln(os.Stderr, "The robot is now ready to draw")
	return dev, nil
}

func replay(ctx context.Context, name string, sink robowriter.Sink) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open program: %w", err)
	}
	defer f.Close()
	cmds, err := robowriter.DecodeProgram(f)
	if err != nil {
		return fmt.Errorf("failed to decode program: %w", err)
	}
	for _, c := range cmds {
		if err := sink.Send(ctx, c); err != nil {
			return err
		}
	}
	slog.Info("program sent", "program", name, "commands", len(cmds))
	return nil
}

func writePreview(name string, p *robowriter.Preview) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	if err := p.WritePNG(f, previewScale); err != nil {
		f.Close()
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return f.Close()
}

// previewScale is the preview resolution in pixels per millimetre.
const previewScale = 10

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Robot Writer - writes a text file with a pen plotter robot arm, using a\n")
	fmt.Fprintf(out, "single stroke font.  Commands are sent over the serial port, or saved\n")
	fmt.Fprintf(out, "to a G-code file with -o.\n\n")
	fmt.Fprintf(out, "Usage: %s [flags] [input]\n\n", os.Args[0])
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
}
