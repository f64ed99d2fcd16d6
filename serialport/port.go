package serialport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"

	"i4.energy/across/jdy40gw/jdy40"
)

// Port adapts a go.bug.st/serial port to the driver's Serial capability.
type Port struct {
	port serial.Port
	rbuf [1]byte
	wbuf [1]byte
}

var _ jdy40.Serial = (*Port)(nil)

func NewPort(p serial.Port) *Port {
	return &Port{port: p}
}

// ReadByte returns jdy40.ErrNoData when the port's read timeout expires
// without data.
func (p *Port) ReadByte() (byte, error) {
	n, err := p.port.Read(p.rbuf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, jdy40.ErrNoData
	}
	return p.rbuf[0], nil
}

func (p *Port) WriteByte(c byte) error {
	p.wbuf[0] = c
	n, err := p.port.Write(p.wbuf[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

// Pin returns the modem control output l as an OutputPin.
func (p *Port) Pin(l Line) *LinePin {
	return &LinePin{port: p.port, line: l}
}

func (p *Port) Close() error {
	return p.port.Close()
}

// Line is a modem control output of the serial adapter.
type Line uint8

const (
	RTS Line = iota
	DTR
)

func (l Line) String() string {
	switch l {
	case RTS:
		return "rts"
	case DTR:
		return "dtr"
	default:
		return fmt.Sprintf("Line(%d)", uint8(l))
	}
}

// ParseLine accepts "rts" or "dtr", case-insensitively.
func ParseLine(s string) (Line, error) {
	switch strings.ToLower(s) {
	case "rts":
		return RTS, nil
	case "dtr":
		return DTR, nil
	}
	return 0, fmt.Errorf("serialport: unknown control line %q", s)
}

// LinePin drives a modem control line as a digital output.
//
// USB serial bridges invert these lines at the connector: asserting RTS
// pulls the pin low. High therefore deasserts the line. Set Direct when
// the wiring already inverts the signal.
type LinePin struct {
	port   serial.Port
	line   Line
	Direct bool
}

var _ jdy40.OutputPin = (*LinePin)(nil)

func (l *LinePin) High() error { return l.drive(true) }
func (l *LinePin) Low() error  { return l.drive(false) }

func (l *LinePin) drive(high bool) error {
	asserted := !high
	if l.Direct {
		asserted = high
	}
	switch l.line {
	case RTS:
		return l.port.SetRTS(asserted)
	case DTR:
		return l.port.SetDTR(asserted)
	default:
		return fmt.Errorf("serialport: unknown control line %v", l.line)
	}
}

// SleepDelay implements the Delayer capability with time.Sleep.
type SleepDelay struct{}

var _ jdy40.Delayer = SleepDelay{}

func (SleepDelay) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
