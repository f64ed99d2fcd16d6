package jdy40

import (
	"io"
	"sync"
	"time"

	"i4.energy/across/jdy40gw/at"
)

// TestSerial is an in-memory module used by tests and by simulated
// sessions. Bytes queued with Feed are returned by ReadByte; written
// bytes are recorded.
//
// With AutoAck set it answers like a module in config mode: whenever a
// read finds the queue empty and something was written in config mode
// since the last answer, "OK\r\n" is queued first. Once the control
// lines come from Pins, config mode means CS and SET are both low and
// payload written outside it is never answered. Without Pins every
// write counts as a command.
type TestSerial struct {
	mu          sync.Mutex
	rx          []byte
	tx          []byte
	autoAck     bool
	pendingAck  bool
	readTimeout time.Duration
	notify      chan struct{}
	closed      bool

	wired  bool
	csLow  bool
	setLow bool
}

// NewTestSerial creates a TestSerial. A zero readTimeout makes ReadByte
// return ErrNoData immediately when nothing is queued; otherwise it waits
// up to readTimeout for Feed.
func NewTestSerial(autoAck bool, readTimeout time.Duration) *TestSerial {
	return &TestSerial{
		autoAck:     autoAck,
		readTimeout: readTimeout,
		notify:      make(chan struct{}, 1),
	}
}

func (s *TestSerial) WriteByte(c byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return io.ErrClosedPipe
	}
	s.tx = append(s.tx, c)
	if s.configMode() {
		s.pendingAck = true
	}
	return nil
}

// Pins returns CS and SET lines that tell s when the module is in config
// mode. Both start high, like a module in transparent mode.
func (s *TestSerial) Pins() (cs, set *TestPin) {
	s.mu.Lock()
	s.wired = true
	s.mu.Unlock()

	cs = &TestPin{onDrive: func(high bool) { s.setLine(&s.csLow, high) }}
	set = &TestPin{onDrive: func(high bool) { s.setLine(&s.setLow, high) }}
	return cs, set
}

func (s *TestSerial) setLine(low *bool, high bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*low = !high
	if !s.configMode() {
		s.pendingAck = false
	}
}

func (s *TestSerial) configMode() bool {
	return !s.wired || (s.csLow && s.setLow)
}

func (s *TestSerial) ReadByte() (byte, error) {
	var timeout <-chan time.Time
	for {
		s.mu.Lock()
		if len(s.rx) == 0 && s.autoAck && s.pendingAck && s.configMode() {
			s.rx = append(s.rx, at.Ack[:]...)
			s.pendingAck = false
		}
		if len(s.rx) > 0 {
			b := s.rx[0]
			s.rx = s.rx[1:]
			s.mu.Unlock()
			return b, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return 0, io.EOF
		}
		if s.readTimeout <= 0 {
			return 0, ErrNoData
		}
		if timeout == nil {
			timeout = time.After(s.readTimeout)
		}
		select {
		case <-s.notify:
		case <-timeout:
			return 0, ErrNoData
		}
	}
}

// Feed queues data to be read, simulating bytes received by the module.
func (s *TestSerial) Feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rx = append(s.rx, data...)
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Written returns a copy of everything written so far.
func (s *TestSerial) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.tx))
	copy(out, s.tx)
	return out
}

// Pending returns the number of queued bytes not read yet.
func (s *TestSerial) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rx)
}

func (s *TestSerial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.notify)
	return nil
}

// TestPin records every level it is driven to.
type TestPin struct {
	mu      sync.Mutex
	history []bool
	// Err, when set, is returned by every call and the level is not
	// recorded.
	Err error

	onDrive func(high bool)
}

func (p *TestPin) High() error { return p.drive(true) }
func (p *TestPin) Low() error  { return p.drive(false) }

func (p *TestPin) drive(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.history = append(p.history, level)
	if p.onDrive != nil {
		p.onDrive(level)
	}
	return nil
}

// History returns the levels driven so far, true meaning high.
func (p *TestPin) History() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bool, len(p.history))
	copy(out, p.history)
	return out
}
