package robowriter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Device errors.
var (
	ErrDeviceError = errors.New("device error")
	ErrAlarm       = errors.New("device alarm")
	ErrNoReply     = errors.New("no reply from device")
)

// prompt is the byte the controller prints once it is ready.
const prompt = '$'

// DefaultBaudRate is the baud rate of the robot controller.
const DefaultBaudRate = 115200

var gWaitMultiplier time.Duration = 1 // device delay multiplier, to turn it off in tests.

// Device is the robot controller.  It is a Sink: Send writes a command and
// waits for the controller to acknowledge it.
type Device struct {
	// SettleDelay is waited after each acknowledged command.
	SettleDelay time.Duration
	// WakeDelay is waited between the wake up string and reading the
	// prompt.
	WakeDelay time.Duration

	w       io.Writer
	br      *bufio.Reader
	d       *Dialect
	replies *trieNode
	closer  io.Closer
}

// NewDevice returns a Device that talks to the controller over rw, encoding
// commands with d.  If d is nil, the DefaultDialect is used.
func NewDevice(rw io.ReadWriter, d *Dialect) *Device {
	if d == nil {
		d = DefaultDialect
	}
	return &Device{
		SettleDelay: 100 * time.Millisecond,
		WakeDelay:   100 * time.Millisecond,
		w:           rw,
		br:          bufio.NewReader(rw),
		d:           d,
		replies:     buildTrie(grblReplies),
	}
}

// OpenSerial opens the serial port name.
func OpenSerial(name string, baud int, d *Dialect) (*Device, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("unable to open port %s: %w", name, err)
	}
	slog.Debug("port open", "port", name, "baud", baud)
	dev := NewDevice(port, d)
	dev.closer = port
	return dev, nil
}

// ListPorts returns the names of the serial ports of the system.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Close closes the serial port.
func (dev *Device) Close() error {
	if dev.closer == nil {
		return nil
	}
	return dev.closer.Close()
}

// Wake wakes the controller up and waits until it is ready.
func (dev *Device) Wake(ctx context.Context) error {
	if err := dev.write(ctx, dev.d.WakeCommand()); err != nil {
		return err
	}
	if err := sleep(ctx, dev.WakeDelay); err != nil {
		return err
	}
	banner, err := dev.br.ReadString(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("wake: %w", ErrNoReply)
		}
		return fmt.Errorf("wake: %w", err)
	}
	slog.Debug("device ready", "banner", strings.TrimSpace(banner))
	return nil
}

// Send writes the command and blocks until the controller replies.
func (dev *Device) Send(ctx context.Context, c Command) error {
	if err := dev.write(ctx, c); err != nil {
		return err
	}
	if err := dev.waitReply(ctx, c); err != nil {
		return err
	}
	return sleep(ctx, dev.SettleDelay)
}

func (dev *Device) write(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := dev.d.Encode(c)
	slog.Debug("send", "command", text)
	if _, err := io.WriteString(dev.w, text+"\n"); err != nil {
		return fmt.Errorf("write %q: %w", text, err)
	}
	return nil
}

// waitReply reads lines until one of them is an acknowledgement or an
// error.  Other lines, such as status messages, are logged and skipped.
func (dev *Device) waitReply(ctx context.Context, c Command) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := dev.br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("command %q: %w", dev.d.Encode(c), ErrNoReply)
			}
			return fmt.Errorf("command %q: %w", dev.d.Encode(c), err)
		}
		spec, found, _ := dev.replies.findReply(bytes.NewReader([]byte(line)))
		if !found {
			slog.Debug("reply skipped", "text", line)
			if err != nil {
				return fmt.Errorf("command %q: %w", dev.d.Encode(c), ErrNoReply)
			}
			continue
		}
		slog.Debug("reply", "text", line)
		switch spec.Kind {
		case replyError:
			return fmt.Errorf("command %q: %w: %s", dev.d.Encode(c), ErrDeviceError, line)
		case replyAlarm:
			return fmt.Errorf("command %q: %w: %s", dev.d.Encode(c), ErrAlarm, line)
		}
		return nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	d *= gWaitMultiplier
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
