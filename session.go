package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"i4.energy/across/jdy40gw/jdy40"
	"i4.energy/across/jdy40gw/serialport"
)

var errReadTimeout = errors.New("read timeout must be positive")

// openDriver opens the module described by config and returns a driver
// together with the closer for its transport.
//
// Host sessions always use a bounded read policy so a silent module
// cannot hang the process, and a receive loop sharing the driver hands
// the lock back between bytes.
func openDriver(ctx context.Context, config *Config, logger *slog.Logger) (*jdy40.Driver, io.Closer, error) {
	if config.ReadTimeout <= 0 {
		return nil, nil, fmt.Errorf("%w: got %s", errReadTimeout, config.ReadTimeout)
	}

	opts, err := jdy40.NewOptionsBuilder().
		WithReadTimeout(config.ReadTimeout).
		WithLogger(logger.With("component", "driver")).
		Build()
	if err != nil {
		return nil, nil, err
	}

	if config.Simulate {
		serial := jdy40.NewTestSerial(true, serialport.DefaultReadTimeout)
		cs, set := serial.Pins()
		d, err := jdy40.New(serial, serialport.SleepDelay{}, cs, set, opts)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using simulated module")
		return d, serial, nil
	}

	csLine, err := serialport.ParseLine(config.CSLine)
	if err != nil {
		return nil, nil, err
	}
	setLine, err := serialport.ParseLine(config.SetLine)
	if err != nil {
		return nil, nil, err
	}
	if csLine == setLine {
		return nil, nil, fmt.Errorf("CS and SET cannot share the %v line", csLine)
	}

	port, err := serialport.SerialDialer{
		PortName: config.SerialPort,
		BaudRate: config.BaudRate,
		Logger:   logger.With("component", "serial"),
	}.Dial(ctx)
	if err != nil {
		return nil, nil, err
	}

	d, err := jdy40.New(port, serialport.SleepDelay{}, port.Pin(csLine), port.Pin(setLine), opts)
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	return d, port, nil
}
