package jdy40

import "sync"

// Shared serializes access to a Driver for programs with several logical
// callers. Each method holds the lock for the whole operation, so a
// configuration sequence is never interleaved with payload traffic.
type Shared struct {
	mu     sync.Mutex
	driver *Driver
}

func NewShared(d *Driver) *Shared {
	return &Shared{driver: d}
}

func (s *Shared) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.Init()
}

func (s *Shared) ApplyConfig(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.ApplyConfig(cfg)
}

func (s *Shared) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.Config()
}

func (s *Shared) WriteBuffer(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.WriteBuffer(p)
}

// ReadBuffer holds the lock until out is full or the driver's ReadPolicy
// gives up. Readers polling in a loop should use a bounded policy so
// writers get a turn.
func (s *Shared) ReadBuffer(out []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.ReadBuffer(out)
}
