package jdy40

import "errors"

var (
	// ErrRead is returned when a byte could not be obtained from the
	// serial transport under the driver's ReadPolicy.
	ErrRead = errors.New("jdy40: read error")

	// ErrWrite is returned when a byte could not be transmitted, a
	// control pin could not be driven, or a command was sent but not
	// acknowledged.
	ErrWrite = errors.New("jdy40: write error")

	// ErrInvalidBaudRate and ErrInvalidChannel are part of the driver's
	// error vocabulary but no operation produces them: the module's
	// accepted ranges for the raw address fields are not documented.
	ErrInvalidBaudRate = errors.New("jdy40: invalid baud rate")
	ErrInvalidChannel  = errors.New("jdy40: invalid channel")

	// ErrNotAcknowledged accompanies ErrWrite when the module answered a
	// command with anything other than "OK\r\n".
	ErrNotAcknowledged = errors.New("command not acknowledged")

	// ErrPin accompanies ErrWrite when a control line could not be driven.
	ErrPin = errors.New("control pin")

	// ErrModeExit marks failures while leaving config mode. Callers that
	// treat the exit as best-effort can test for it with errors.Is.
	ErrModeExit = errors.New("leave config mode")

	// ErrTimeout accompanies ErrRead when a bounded ReadPolicy deadline
	// expired.
	ErrTimeout = errors.New("read deadline exceeded")

	// ErrNoData is returned by transports whose byte read timed out
	// without data. The driver treats it like any other transient read
	// failure and retries according to its ReadPolicy.
	ErrNoData = errors.New("no data available")

	// ErrNilCapability is returned by New when a capability is missing.
	ErrNilCapability = errors.New("jdy40: nil capability")

	// ErrInvalidOptions is returned by OptionsBuilder.Build.
	ErrInvalidOptions = errors.New("jdy40: invalid options")
)
