package jdy40

import (
	"fmt"

	"i4.energy/across/jdy40gw/at"
)

// Config is one complete set of module parameters. It is a plain value;
// copies are independent.
//
// Network, Device and Channel are written to the module as raw bytes,
// without AT framing. That is how the module expects them.
type Config struct {
	Speed   at.Speed
	Power   at.Power
	Mode    at.Mode
	Network [4]byte
	Device  [4]byte
	Channel [3]byte
}

// DefaultConfig returns the factory baseline.
func DefaultConfig() Config {
	return Config{
		Speed:   at.Baud9600,
		Power:   at.Power6dB,
		Mode:    at.ModeA0,
		Network: [4]byte{6, 5, 4, 3},
		Device:  [4]byte{0, 0, 1, 0},
		Channel: [3]byte{0, 0, 7},
	}
}

// step is one send-and-acknowledge exchange of a configuration.
type step struct {
	name string
	cmd  []byte
}

// steps returns the exchanges in the order the module's AT parser
// expects them. Must not be reordered.
func (c Config) steps() []step {
	return []step{
		{"power", c.Power.Command()},
		{"speed", c.Speed.Command()},
		{"mode", c.Mode.Command()},
		{"network", c.Network[:]},
		{"device", c.Device[:]},
		{"channel", c.Channel[:]},
	}
}

// check rejects enumeration values outside the command table, which
// would otherwise produce an empty command.
func (c Config) check() error {
	switch {
	case !c.Speed.Valid():
		return fmt.Errorf("jdy40: config: %w: %v", at.ErrUnsupported, c.Speed)
	case !c.Power.Valid():
		return fmt.Errorf("jdy40: config: %w: %v", at.ErrUnsupported, c.Power)
	case !c.Mode.Valid():
		return fmt.Errorf("jdy40: config: %w: %v", at.ErrUnsupported, c.Mode)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("speed=%v power=%v mode=%v network=%v device=%v channel=%v",
		c.Speed, c.Power, c.Mode, c.Network, c.Device, c.Channel)
}
