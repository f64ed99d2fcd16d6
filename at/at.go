package at

import "errors"

const (
	// Terminal Control
	CRLF = "\r\n"

	// Command prefix shared by every configuration command
	Prefix = "AT+"

	// Response Codes
	OK = "OK"

	// Command keywords
	KeywordBaud  = "BAUD"
	KeywordPower = "POWE"
	KeywordClass = "CLSS"
)

// Ack is the exact acknowledgment the module emits after accepting a
// command. Only a byte-for-byte match counts.
var Ack = [4]byte{'O', 'K', '\r', '\n'}

// ErrUnsupported is returned by the Parse functions for values outside
// the module's command table.
var ErrUnsupported = errors.New("unsupported value")

// IsAck reports whether p is exactly the acknowledgment signature.
func IsAck(p []byte) bool {
	return len(p) == len(Ack) && [4]byte(p) == Ack
}
