package jdy40_test

import (
	"bytes"
	"slices"
	"sync"
	"testing"

	"i4.energy/across/jdy40gw/jdy40"
)

func TestSharedSerializesCallers(t *testing.T) {
	serial := jdy40.NewTestSerial(true, 0)
	cs, set := serial.Pins()
	d, err := jdy40.New(serial, noDelay{}, cs, set, jdy40.Options{})
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	shared := jdy40.NewShared(d)

	const configs, payloads = 5, 20
	var wg sync.WaitGroup
	errs := make(chan error, configs+payloads)
	for range configs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- shared.ApplyConfig(jdy40.DefaultConfig())
		}()
	}
	for range payloads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- shared.WriteBuffer([]byte("xy"))
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}

	sequence := slices.Concat(
		[]byte("AT+POWE5\r\nAT+BAUD4\r\nAT+CLSSA0\r\n"),
		[]byte{6, 5, 4, 3, 0, 0, 1, 0, 0, 0, 7},
	)
	written := serial.Written()
	if got := bytes.Count(written, sequence); got != configs {
		t.Errorf("found %d uninterrupted configuration sequences, want %d", got, configs)
	}
	if want := configs*len(sequence) + payloads*2; len(written) != want {
		t.Errorf("wrote %d bytes, want %d", len(written), want)
	}
	if shared.Config() != jdy40.DefaultConfig() {
		t.Errorf("Config() = %v", shared.Config())
	}
}
