package at_test

import (
	"errors"
	"testing"

	"i4.energy/across/jdy40gw/at"
)

func TestSpeedCommand(t *testing.T) {
	tests := []struct {
		speed at.Speed
		bps   int
		wire  string
	}{
		{at.Baud1200, 1200, "AT+BAUD1\r\n"},
		{at.Baud2400, 2400, "AT+BAUD2\r\n"},
		{at.Baud4800, 4800, "AT+BAUD3\r\n"},
		{at.Baud9600, 9600, "AT+BAUD4\r\n"},
		{at.Baud14400, 14400, "AT+BAUD5\r\n"},
		{at.Baud19200, 19200, "AT+BAUD6\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.speed.String(), func(t *testing.T) {
			if got := string(tt.speed.Command()); got != tt.wire {
				t.Errorf("Command() = %q, want %q", got, tt.wire)
			}
			if len(tt.speed.Command()) != 10 {
				t.Errorf("Command() length = %d, want 10", len(tt.speed.Command()))
			}
			if got := tt.speed.BitsPerSecond(); got != tt.bps {
				t.Errorf("BitsPerSecond() = %d, want %d", got, tt.bps)
			}
			parsed, err := at.ParseSpeed(tt.bps)
			if err != nil || parsed != tt.speed {
				t.Errorf("ParseSpeed(%d) = %v, %v", tt.bps, parsed, err)
			}
		})
	}
}

func TestPowerCommand(t *testing.T) {
	tests := []struct {
		power at.Power
		dbm   int
		wire  string
	}{
		{at.PowerMinus25dB, -25, "AT+POWE0\r\n"},
		{at.PowerMinus15dB, -15, "AT+POWE1\r\n"},
		{at.PowerMinus5dB, -5, "AT+POWE2\r\n"},
		{at.Power0dB, 0, "AT+POWE3\r\n"},
		{at.Power3dB, 3, "AT+POWE4\r\n"},
		{at.Power6dB, 6, "AT+POWE5\r\n"},
		{at.Power9dB, 9, "AT+POWE6\r\n"},
		{at.Power10dB, 10, "AT+POWE7\r\n"},
		{at.Power12dB, 12, "AT+POWE9\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.power.String(), func(t *testing.T) {
			if got := string(tt.power.Command()); got != tt.wire {
				t.Errorf("Command() = %q, want %q", got, tt.wire)
			}
			if got := tt.power.DBm(); got != tt.dbm {
				t.Errorf("DBm() = %d, want %d", got, tt.dbm)
			}
			parsed, err := at.ParsePower(tt.dbm)
			if err != nil || parsed != tt.power {
				t.Errorf("ParsePower(%d) = %v, %v", tt.dbm, parsed, err)
			}
		})
	}
}

func TestModeCommand(t *testing.T) {
	tests := []struct {
		mode at.Mode
		name string
		wire string
	}{
		{at.ModeA0, "A0", "AT+CLSSA0\r\n"},
		{at.ModeC0, "C0", "AT+CLSSC0\r\n"},
		{at.ModeC1, "C1", "AT+CLSSC1\r\n"},
		{at.ModeC2, "C2", "AT+CLSSC2\r\n"},
		{at.ModeC3, "C3", "AT+CLSSC3\r\n"},
		{at.ModeC4, "C4", "AT+CLSSC4\r\n"},
		{at.ModeC5, "C5", "AT+CLSSC5\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.mode.Command()); got != tt.wire {
				t.Errorf("Command() = %q, want %q", got, tt.wire)
			}
			if len(tt.mode.Command()) != 11 {
				t.Errorf("Command() length = %d, want 11", len(tt.mode.Command()))
			}
			if got := tt.mode.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}

	if m, err := at.ParseMode("c3"); err != nil || m != at.ModeC3 {
		t.Errorf("ParseMode(c3) = %v, %v", m, err)
	}
}

func TestCommandIsCopy(t *testing.T) {
	cmd := at.Baud9600.Command()
	cmd[0] = 'X'
	if got := string(at.Baud9600.Command()); got != "AT+BAUD4\r\n" {
		t.Errorf("table was modified through returned slice: %q", got)
	}
}

func TestUndeclaredValues(t *testing.T) {
	if at.Speed(6).Command() != nil || at.Speed(6).Valid() {
		t.Error("Speed(6) should not be valid")
	}
	if at.Power(9).Command() != nil || at.Power(9).Valid() {
		t.Error("Power(9) should not be valid")
	}
	if at.Mode(7).Command() != nil || at.Mode(7).Valid() {
		t.Error("Mode(7) should not be valid")
	}
	if got := at.Speed(42).String(); got != "Speed(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseUnsupported(t *testing.T) {
	if _, err := at.ParseSpeed(115200); !errors.Is(err, at.ErrUnsupported) {
		t.Errorf("ParseSpeed(115200) error = %v, want ErrUnsupported", err)
	}
	if _, err := at.ParsePower(11); !errors.Is(err, at.ErrUnsupported) {
		t.Errorf("ParsePower(11) error = %v, want ErrUnsupported", err)
	}
	if _, err := at.ParseMode("B0"); !errors.Is(err, at.ErrUnsupported) {
		t.Errorf("ParseMode(B0) error = %v, want ErrUnsupported", err)
	}
}
