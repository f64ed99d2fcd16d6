// Package serialport supplies the driver's capabilities on a host
// computer: the module's UART behind a USB serial adapter, with CS and
// SET wired to the adapter's RTS and DTR outputs.
package serialport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.bug.st/serial"
)

var (
	// ErrNoPortName is returned by Dial when PortName is empty.
	ErrNoPortName = errors.New("serialport: serial port name is required")

	// ErrNilContext is returned by Dial when called with a nil context.
	ErrNilContext = errors.New("serialport: context is nil")
)

const (
	// DefaultBaudRate is the module's factory UART speed.
	DefaultBaudRate = 9600

	// DefaultReadTimeout bounds a single byte read so the driver's
	// ReadPolicy gets a chance to run between attempts.
	DefaultReadTimeout = 100 * time.Millisecond
)

// SerialDialer opens the module's serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0" or "COM3".
	PortName string
	// BaudRate is used when Mode is nil. Defaults to DefaultBaudRate.
	BaudRate int
	// Mode overrides the complete line settings.
	Mode *serial.Mode
	// ReadTimeout bounds one read call. Defaults to DefaultReadTimeout.
	ReadTimeout time.Duration
	// Logger receives open/close events. Optional.
	Logger *slog.Logger
}

// Dial opens the port. The context is only checked before opening since
// opening a serial device does not block for long.
func (d SerialDialer) Dial(ctx context.Context) (*Port, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if d.PortName == "" {
		return nil, ErrNoPortName
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = DefaultBaudRate
		}
		mode = &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	p, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("serialport: set read timeout: %w", err)
	}

	if d.Logger != nil {
		d.Logger.Info("Serial port opened",
			"port", d.PortName,
			"baud_rate", mode.BaudRate,
			"read_timeout", timeout,
		)
	}

	return NewPort(p), nil
}
