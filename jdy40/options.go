package jdy40

import (
	"fmt"
	"log/slog"
	"time"
)

// ReadPolicy controls how long the driver keeps retrying a byte read
// that fails.
//
// The zero value retries forever, which is what a bare-metal target
// with nothing else to schedule wants: a read blocks until the module
// sends data. Hosts that share the transport or must not hang set
// MaxAttempts, Timeout, or both.
//
// Timeout is only checked between failed attempts, so it relies on the
// transport returning (for example ErrNoData) instead of blocking
// forever.
type ReadPolicy struct {
	// MaxAttempts is the number of consecutive failed reads of one byte
	// after which the driver gives up. Zero means unlimited.
	MaxAttempts int
	// Timeout bounds the wait for one byte. Zero means no deadline.
	Timeout time.Duration
}

// Unbounded reports whether p never gives up.
func (p ReadPolicy) Unbounded() bool {
	return p.MaxAttempts == 0 && p.Timeout == 0
}

// Options configures a Driver. Build one with NewOptionsBuilder; the
// zero value is valid and gives the bare-metal defaults.
type Options struct {
	readPolicy    ReadPolicy
	logger        *slog.Logger
	initialConfig *Config
}

func (o *Options) validate() error {
	if o.readPolicy.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative max read attempts %d", ErrInvalidOptions, o.readPolicy.MaxAttempts)
	}
	if o.readPolicy.Timeout < 0 {
		return fmt.Errorf("%w: negative read timeout %s", ErrInvalidOptions, o.readPolicy.Timeout)
	}
	if o.initialConfig != nil {
		if err := o.initialConfig.check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.initialConfig == nil {
		cfg := DefaultConfig()
		o.initialConfig = &cfg
	}
}

// OptionsBuilder assembles Options step by step.
type OptionsBuilder struct {
	opts Options
}

func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{}
}

func (b *OptionsBuilder) WithReadPolicy(p ReadPolicy) *OptionsBuilder {
	b.opts.readPolicy = p
	return b
}

func (b *OptionsBuilder) WithMaxReadAttempts(n int) *OptionsBuilder {
	b.opts.readPolicy.MaxAttempts = n
	return b
}

func (b *OptionsBuilder) WithReadTimeout(d time.Duration) *OptionsBuilder {
	b.opts.readPolicy.Timeout = d
	return b
}

func (b *OptionsBuilder) WithLogger(l *slog.Logger) *OptionsBuilder {
	b.opts.logger = l
	return b
}

// WithInitialConfig sets the configuration Init applies. Defaults to
// DefaultConfig.
func (b *OptionsBuilder) WithInitialConfig(cfg Config) *OptionsBuilder {
	b.opts.initialConfig = &cfg
	return b
}

func (b *OptionsBuilder) Build() (Options, error) {
	if err := b.opts.validate(); err != nil {
		return Options{}, err
	}
	return b.opts, nil
}
