package jdy40

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"i4.energy/across/jdy40gw/at"
)

// settleMs is how long the module needs after a mode transition before
// it reliably accepts commands or payload.
const settleMs = 2

// Driver talks to a JDY-40 transceiver through its UART and the CS/SET
// control lines.
//
// A Driver exclusively owns its capabilities for its whole lifetime and
// is not safe for concurrent use. Programs with more than one logical
// caller wrap it in a Shared.
type Driver struct {
	// serial is the UART byte stream to the module
	serial Serial
	// delay provides the settling delays around config mode
	delay Delayer
	// cs and set are the control lines; both low selects config mode
	cs  OutputPin
	set OutputPin

	// config is the last successfully applied configuration, or the
	// initial one before the first ApplyConfig
	config Config
	policy ReadPolicy
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Driver over the given capabilities. No I/O is performed;
// call Init or ApplyConfig to configure the module.
func New(serial Serial, delay Delayer, cs, set OutputPin, options Options) (*Driver, error) {
	if serial == nil || delay == nil || cs == nil || set == nil {
		return nil, ErrNilCapability
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	options.setDefaults()

	return &Driver{
		serial: serial,
		delay:  delay,
		cs:     cs,
		set:    set,
		config: *options.initialConfig,
		policy: options.readPolicy,
		logger: options.logger,
		now:    time.Now,
	}, nil
}

// Config returns the configuration the module was last configured with.
// Before the first successful ApplyConfig it is the initial configuration
// Init would apply.
func (d *Driver) Config() Config {
	return d.config
}

// Init applies the driver's initial configuration (DefaultConfig unless
// overridden through OptionsBuilder.WithInitialConfig).
func (d *Driver) Init() error {
	return d.ApplyConfig(d.config)
}

// ApplyConfig pushes cfg into the module:
//
//  1. CS and SET are driven low to enter config mode, then the module
//     gets 2 ms to settle.
//  2. Power, speed, mode, network, device and channel are sent in that
//     order, each followed by a wait for "OK\r\n". The first exchange
//     that fails aborts the rest.
//  3. CS and SET are driven high to leave config mode, followed by
//     another 2 ms settle. This also happens after a failed exchange.
//
// Exchange failures wrap ErrWrite or ErrRead. Failures in step 3 wrap
// ErrModeExit and are joined with any earlier error.
func (d *Driver) ApplyConfig(cfg Config) error {
	if err := cfg.check(); err != nil {
		return err
	}

	d.logger.Debug("entering config mode", "config", cfg.String())

	err := d.enterConfigMode()
	if err == nil {
		d.delay.DelayMs(settleMs)
		err = d.configure(cfg)
	}

	if exitErr := d.exitConfigMode(); exitErr != nil {
		d.logger.Error("failed to leave config mode", "error", exitErr)
		err = errors.Join(err, exitErr)
	}
	if err != nil {
		return err
	}

	d.config = cfg
	d.logger.Info("module configured", "config", cfg.String())
	return nil
}

func (d *Driver) configure(cfg Config) error {
	steps := cfg.steps()
	for i, s := range steps {
		if err := d.SendCommand(s.cmd); err != nil {
			d.logger.Error("configuration aborted",
				"step", s.name,
				"index", i+1,
				"error", err,
			)
			return fmt.Errorf("configure %s (step %d of %d): %w", s.name, i+1, len(steps), err)
		}
		d.logger.Debug("configuration step acknowledged", "step", s.name, "index", i+1)
	}
	return nil
}

func (d *Driver) enterConfigMode() error {
	if err := drive(d.cs, "CS", false); err != nil {
		return err
	}
	return drive(d.set, "SET", false)
}

// exitConfigMode attempts both lines even if the first one fails.
func (d *Driver) exitConfigMode() error {
	err := errors.Join(
		drive(d.cs, "CS", true),
		drive(d.set, "SET", true),
	)
	d.delay.DelayMs(settleMs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrModeExit, err)
	}
	return nil
}

func drive(pin OutputPin, name string, high bool) error {
	var err error
	level := "low"
	if high {
		level = "high"
		err = pin.High()
	} else {
		err = pin.Low()
	}
	if err != nil {
		return fmt.Errorf("%w: %w: drive %s %s: %w", ErrWrite, ErrPin, name, level, err)
	}
	return nil
}

// SendCommand writes cmd and waits for the module's acknowledgment.
//
// A write failure or a response other than "OK\r\n" returns an error
// wrapping ErrWrite. A read failure under a bounded ReadPolicy returns
// an error wrapping ErrRead.
func (d *Driver) SendCommand(cmd []byte) error {
	if err := d.WriteBuffer(cmd); err != nil {
		return err
	}

	resp, err := d.readAck()
	if err != nil {
		return fmt.Errorf("await acknowledgment of %q: %w", cmd, err)
	}
	if !at.IsAck(resp[:]) {
		return fmt.Errorf("%w: %w: sent %q, got %q", ErrWrite, ErrNotAcknowledged, cmd, resp[:])
	}
	return nil
}

// IsAcknowledged reads exactly four bytes and reports whether they are
// the literal "OK\r\n". The only error is ErrRead from a bounded
// ReadPolicy; under the default policy it blocks until four bytes
// arrived.
func (d *Driver) IsAcknowledged() (bool, error) {
	resp, err := d.readAck()
	if err != nil {
		return false, err
	}
	return at.IsAck(resp[:]), nil
}

func (d *Driver) readAck() ([len(at.Ack)]byte, error) {
	var resp [len(at.Ack)]byte
	err := d.ReadBuffer(resp[:])
	return resp, err
}

// WriteBuffer transmits p as is, one byte at a time, with no
// acknowledgment expected. The first byte the transport rejects stops
// the transfer and is reported as ErrWrite.
func (d *Driver) WriteBuffer(p []byte) error {
	for i, b := range p {
		if err := d.serial.WriteByte(b); err != nil {
			return fmt.Errorf("%w: byte %d of %d: %w", ErrWrite, i+1, len(p), err)
		}
	}
	return nil
}

// ReadBuffer fills out completely, one byte at a time. Bytes beyond
// len(out) stay unread in the transport.
//
// Under the default unbounded ReadPolicy this blocks until len(out)
// bytes have arrived, so out must be sized to what the module will
// actually send.
func (d *Driver) ReadBuffer(out []byte) error {
	for n := range out {
		b, err := d.readByte()
		if err != nil {
			return fmt.Errorf("byte %d of %d: %w", n+1, len(out), err)
		}
		out[n] = b
	}
	return nil
}

func (d *Driver) readByte() (byte, error) {
	var (
		attempts int
		start    time.Time
	)
	if d.policy.Timeout > 0 {
		start = d.now()
	}
	for {
		b, err := d.serial.ReadByte()
		if err == nil {
			return b, nil
		}
		attempts++
		if d.policy.MaxAttempts > 0 && attempts >= d.policy.MaxAttempts {
			return 0, fmt.Errorf("%w: gave up after %d attempts: %w", ErrRead, attempts, err)
		}
		if d.policy.Timeout > 0 && d.now().Sub(start) >= d.policy.Timeout {
			return 0, fmt.Errorf("%w: %w after %s: %w", ErrRead, ErrTimeout, d.policy.Timeout, err)
		}
	}
}
