package robowriter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Sink accepts commands, one at a time.  Send blocks until the command has
// been accepted, for a device that is when it has been acknowledged.
type Sink interface {
	Send(ctx context.Context, c Command) error
}

// SinkFunc is an adapter to use an ordinary function as a Sink.
type SinkFunc func(ctx context.Context, c Command) error

func (f SinkFunc) Send(ctx context.Context, c Command) error {
	return f(ctx, c)
}

// Recorder is a Sink that keeps the commands in memory.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Send(_ context.Context, c Command) error {
	r.Commands = append(r.Commands, c)
	return nil
}

// Program returns the recorded commands encoded in the default dialect, one
// per line.
func (r *Recorder) Program() string {
	var buf strings.Builder
	for _, c := range r.Commands {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}
	return buf.String()
}

type errWriter struct {
	io.Writer
	Err error
	N   int
}

// WriteString writes s to the underlying writer, unless an earlier write
// failed.
func (ew *errWriter) WriteString(s string) {
	if ew.Err != nil {
		return
	}
	n, err := io.WriteString(ew.Writer, s)
	if err != nil {
		ew.Err = err
		return
	}
	ew.N += n
}

// WriterSink writes commands as lines of text to a writer.  It is used to
// save programs to a file instead of sending them to a device.
type WriterSink struct {
	bw *bufio.Writer
	ew errWriter
	d  *Dialect
}

// NewWriterSink returns a WriterSink that encodes commands with d.  If d is
// nil, the DefaultDialect is used.  Call Flush when done.
func NewWriterSink(w io.Writer, d *Dialect) *WriterSink {
	if d == nil {
		d = DefaultDialect
	}
	bw := bufio.NewWriter(w)
	return &WriterSink{bw: bw, ew: errWriter{Writer: bw}, d: d}
}

func (s *WriterSink) Send(_ context.Context, c Command) error {
	s.ew.WriteString(s.d.Encode(c))
	s.ew.WriteString("\n")
	if s.ew.Err != nil {
		return fmt.Errorf("write error: %w", s.ew.Err)
	}
	return nil
}

// Written returns the number of bytes written so far.
func (s *WriterSink) Written() int {
	return s.ew.N
}

// Flush flushes buffered output to the underlying writer.
func (s *WriterSink) Flush() error {
	if s.ew.Err != nil {
		return fmt.Errorf("write error: %w", s.ew.Err)
	}
	return s.bw.Flush()
}

// MultiSink sends every command to all sinks, in order.  It stops at the
// first sink that fails.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, c Command) error {
		for _, s := range sinks {
			if err := s.Send(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
}
