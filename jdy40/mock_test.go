package jdy40_test

import (
	"i4.energy/across/jdy40gw/at"
	"i4.energy/across/jdy40gw/jdy40"
)

// MockSequenceBuilder collects ordered expectations on a MockSerial so
// a test can pass them to gomock.InOrder.
type MockSequenceBuilder struct {
	serial *jdy40.MockSerial
	calls  []any
}

func NewMockSequence(serial *jdy40.MockSerial) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		serial: serial,
		calls:  []any{},
	}
}

// Write expects every byte of p to be written, in order.
func (b *MockSequenceBuilder) Write(p []byte) *MockSequenceBuilder {
	for _, c := range p {
		b.calls = append(b.calls, b.serial.EXPECT().WriteByte(c).Return(nil))
	}
	return b
}

// Respond makes the next reads return the bytes of p, in order.
func (b *MockSequenceBuilder) Respond(p []byte) *MockSequenceBuilder {
	for _, c := range p {
		b.calls = append(b.calls, b.serial.EXPECT().ReadByte().Return(c, nil))
	}
	return b
}

// Command expects cmd to be written and answers it with "OK\r\n".
func (b *MockSequenceBuilder) Command(cmd []byte) *MockSequenceBuilder {
	return b.Write(cmd).Respond(at.Ack[:])
}

// Configuration expects the six exchanges of cfg, all acknowledged.
func (b *MockSequenceBuilder) Configuration(cfg jdy40.Config) *MockSequenceBuilder {
	return b.
		Command(cfg.Power.Command()).
		Command(cfg.Speed.Command()).
		Command(cfg.Mode.Command()).
		Command(cfg.Network[:]).
		Command(cfg.Device[:]).
		Command(cfg.Channel[:])
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

// enterCalls are the expectations for entering config mode.
func enterCalls(cs, set *jdy40.MockOutputPin, delay *jdy40.MockDelayer) []any {
	return []any{
		cs.EXPECT().Low().Return(nil),
		set.EXPECT().Low().Return(nil),
		delay.EXPECT().DelayMs(uint32(2)),
	}
}

// exitCalls are the expectations for leaving config mode.
func exitCalls(cs, set *jdy40.MockOutputPin, delay *jdy40.MockDelayer) []any {
	return []any{
		cs.EXPECT().High().Return(nil),
		set.EXPECT().High().Return(nil),
		delay.EXPECT().DelayMs(uint32(2)),
	}
}
