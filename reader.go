package main

import (
	"context"
	"errors"
	"io"

	"i4.energy/across/jdy40gw/jdy40"
)

// Radio is what the commands and the gateway need from the module.
// *jdy40.Shared implements it.
type Radio interface {
	ApplyConfig(cfg jdy40.Config) error
	Config() jdy40.Config
	WriteBuffer(p []byte) error
	ReadBuffer(out []byte) error
}

var _ Radio = (*jdy40.Shared)(nil)

// radioReader exposes the module's received payload as an io.Reader.
// Each Read returns at most one byte. A read that merely timed out
// waiting for data is retried until ctx is done, which ends the stream
// with io.EOF.
type radioReader struct {
	ctx   context.Context
	radio Radio
}

func (r *radioReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if r.ctx.Err() != nil {
			return 0, io.EOF
		}
		err := r.radio.ReadBuffer(p[:1])
		if err == nil {
			return 1, nil
		}
		if errors.Is(err, jdy40.ErrTimeout) && errors.Is(err, jdy40.ErrNoData) {
			continue
		}
		return 0, err
	}
}
