package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"i4.energy/across/jdy40gw/at"
	"i4.energy/across/jdy40gw/jdy40"
)

// configDocument is the external form of a jdy40.Config, shared by the
// gateway's JSON API and the configure command's flags. Unset fields
// keep the value of the configuration they are applied to.
type configDocument struct {
	// Speed is the baud rate in bits per second
	Speed *int `json:"speed,omitempty"`
	// Power is the transmit power in dBm
	Power *int `json:"power,omitempty"`
	// Mode is the operating class, e.g. "A0" or "C3"
	Mode    *string `json:"mode,omitempty"`
	Network []int   `json:"network,omitempty"`
	Device  []int   `json:"device,omitempty"`
	Channel []int   `json:"channel,omitempty"`
}

func documentFromConfig(cfg jdy40.Config) configDocument {
	speed, power, mode := cfg.Speed.BitsPerSecond(), cfg.Power.DBm(), cfg.Mode.String()
	return configDocument{
		Speed:   &speed,
		Power:   &power,
		Mode:    &mode,
		Network: ints(cfg.Network[:]),
		Device:  ints(cfg.Device[:]),
		Channel: ints(cfg.Channel[:]),
	}
}

// apply returns base with the document's fields applied.
func (d configDocument) apply(base jdy40.Config) (jdy40.Config, error) {
	cfg := base
	var err error

	if d.Speed != nil {
		if cfg.Speed, err = at.ParseSpeed(*d.Speed); err != nil {
			return base, err
		}
	}
	if d.Power != nil {
		if cfg.Power, err = at.ParsePower(*d.Power); err != nil {
			return base, err
		}
	}
	if d.Mode != nil {
		if cfg.Mode, err = at.ParseMode(*d.Mode); err != nil {
			return base, err
		}
	}
	if d.Network != nil {
		if err := fillBytes(cfg.Network[:], d.Network, "network"); err != nil {
			return base, err
		}
	}
	if d.Device != nil {
		if err := fillBytes(cfg.Device[:], d.Device, "device"); err != nil {
			return base, err
		}
	}
	if d.Channel != nil {
		if err := fillBytes(cfg.Channel[:], d.Channel, "channel"); err != nil {
			return base, err
		}
	}
	return cfg, nil
}

// fillBytes copies src into dst. The field sizes are fixed by the module,
// so src must have exactly len(dst) values that fit in a byte.
func fillBytes(dst []byte, src []int, field string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%s: need exactly %d bytes, got %d", field, len(dst), len(src))
	}
	for i, v := range src {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("%s: value %d at index %d does not fit in a byte", field, v, i)
		}
		dst[i] = byte(v)
	}
	return nil
}

func ints(p []byte) []int {
	out := make([]int, len(p))
	for i, b := range p {
		out[i] = int(b)
	}
	return out
}

// parseByteList parses "6,5,4,3" (decimal or 0x-prefixed values).
func parseByteList(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 0, 8)
		if err != nil {
			return nil, fmt.Errorf("byte list %q: %w", s, err)
		}
		out = append(out, int(v))
	}
	return out, nil
}

// decodePayload returns the bytes to transmit for a text or hex payload.
func decodePayload(payload string, isHex bool) ([]byte, error) {
	if !isHex {
		return []byte(payload), nil
	}
	p, err := hex.DecodeString(strings.ReplaceAll(payload, " ", ""))
	if err != nil {
		return nil, fmt.Errorf("hex payload: %w", err)
	}
	return p, nil
}
