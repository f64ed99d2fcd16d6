package jdy40

import "io"

//go:generate go tool mockgen -source=capability.go -destination=mock_capability.go -package=jdy40

// Serial is the byte stream to the module's UART.
//
// ReadByte blocks until a byte is available or the transport gives up;
// any error is considered transient and the read is retried according to
// the driver's ReadPolicy. WriteByte blocks until the byte was accepted
// by the transport.
type Serial interface {
	io.ByteReader
	io.ByteWriter
}

// OutputPin is a digital output line such as CS or SET.
type OutputPin interface {
	High() error
	Low() error
}

// Delayer provides a blocking delay with millisecond granularity.
type Delayer interface {
	DelayMs(ms uint32)
}
