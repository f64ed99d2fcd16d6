package at

import (
	"fmt"
	"strings"
)

// Speed is the UART baud rate the module uses after leaving config mode.
type Speed uint8

const (
	Baud1200 Speed = iota
	Baud2400
	Baud4800
	Baud9600
	Baud14400
	Baud19200
)

var speedTable = [...]struct {
	bps int
	cmd string
}{
	Baud1200:  {1200, "AT+BAUD1\r\n"},
	Baud2400:  {2400, "AT+BAUD2\r\n"},
	Baud4800:  {4800, "AT+BAUD3\r\n"},
	Baud9600:  {9600, "AT+BAUD4\r\n"},
	Baud14400: {14400, "AT+BAUD5\r\n"},
	Baud19200: {19200, "AT+BAUD6\r\n"},
}

// Valid reports whether s is one of the declared speeds.
func (s Speed) Valid() bool { return int(s) < len(speedTable) }

// Command returns the AT command selecting s. The slice is a fresh copy.
func (s Speed) Command() []byte {
	if !s.Valid() {
		return nil
	}
	return []byte(speedTable[s].cmd)
}

// BitsPerSecond returns the baud rate, or 0 for an undeclared value.
func (s Speed) BitsPerSecond() int {
	if !s.Valid() {
		return 0
	}
	return speedTable[s].bps
}

func (s Speed) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Speed(%d)", uint8(s))
	}
	return fmt.Sprintf("%dbps", speedTable[s].bps)
}

// ParseSpeed maps a baud rate in bits per second to its Speed.
func ParseSpeed(bps int) (Speed, error) {
	for i, e := range speedTable {
		if e.bps == bps {
			return Speed(i), nil
		}
	}
	return 0, fmt.Errorf("%w: baud rate %d", ErrUnsupported, bps)
}

// Power is the transmit power level.
type Power uint8

const (
	PowerMinus25dB Power = iota
	PowerMinus15dB
	PowerMinus5dB
	Power0dB
	Power3dB
	Power6dB
	Power9dB
	Power10dB
	Power12dB
)

// The module's table has no index 8: 12 dBm is POWE9.
var powerTable = [...]struct {
	dbm int
	cmd string
}{
	PowerMinus25dB: {-25, "AT+POWE0\r\n"},
	PowerMinus15dB: {-15, "AT+POWE1\r\n"},
	PowerMinus5dB:  {-5, "AT+POWE2\r\n"},
	Power0dB:       {0, "AT+POWE3\r\n"},
	Power3dB:       {3, "AT+POWE4\r\n"},
	Power6dB:       {6, "AT+POWE5\r\n"},
	Power9dB:       {9, "AT+POWE6\r\n"},
	Power10dB:      {10, "AT+POWE7\r\n"},
	Power12dB:      {12, "AT+POWE9\r\n"},
}

func (p Power) Valid() bool { return int(p) < len(powerTable) }

// Command returns the AT command selecting p. The slice is a fresh copy.
func (p Power) Command() []byte {
	if !p.Valid() {
		return nil
	}
	return []byte(powerTable[p].cmd)
}

// DBm returns the output power in dBm.
func (p Power) DBm() int {
	if !p.Valid() {
		return 0
	}
	return powerTable[p].dbm
}

func (p Power) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Power(%d)", uint8(p))
	}
	return fmt.Sprintf("%ddBm", powerTable[p].dbm)
}

// ParsePower maps an output power in dBm to its Power level.
func ParsePower(dbm int) (Power, error) {
	for i, e := range powerTable {
		if e.dbm == dbm {
			return Power(i), nil
		}
	}
	return 0, fmt.Errorf("%w: power %d dBm", ErrUnsupported, dbm)
}

// Mode is the module's operating class (CLSS).
type Mode uint8

const (
	// ModeA0 is the transparent serial transceiver.
	ModeA0 Mode = iota
	// ModeC0 is a remote controller or IO key with indicator light (transmitting side).
	ModeC0
	// ModeC1 is a remote controller or IO key without indicator light (transmitting side).
	ModeC1
	// ModeC2 holds IO low, pulses high on receive, back low after 30 ms.
	ModeC2
	// ModeC3 holds IO high, pulses low on receive, back high after 30 ms.
	ModeC3
	// ModeC4 holds IO low, high on a pressed signal, low on a lift signal.
	ModeC4
	// ModeC5 inverts IO on every pressed signal.
	ModeC5
)

var modeTable = [...]struct {
	name string
	cmd  string
}{
	ModeA0: {"A0", "AT+CLSSA0\r\n"},
	ModeC0: {"C0", "AT+CLSSC0\r\n"},
	ModeC1: {"C1", "AT+CLSSC1\r\n"},
	ModeC2: {"C2", "AT+CLSSC2\r\n"},
	ModeC3: {"C3", "AT+CLSSC3\r\n"},
	ModeC4: {"C4", "AT+CLSSC4\r\n"},
	ModeC5: {"C5", "AT+CLSSC5\r\n"},
}

func (m Mode) Valid() bool { return int(m) < len(modeTable) }

// Command returns the AT command selecting m. The slice is a fresh copy.
func (m Mode) Command() []byte {
	if !m.Valid() {
		return nil
	}
	return []byte(modeTable[m].cmd)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeTable[m].name
}

// ParseMode maps a class name such as "A0" or "c3" to its Mode.
func ParseMode(name string) (Mode, error) {
	for i, e := range modeTable {
		if strings.EqualFold(e.name, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: mode %q", ErrUnsupported, name)
}
