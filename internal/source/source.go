// Package source feeds input bytes, one at a time and in order, to a typing callback.
package source

import (
	"errors"
	"io"
	"time"

	"github.com/bnema/waytype/internal/logger"
)

// DefaultChunkSize is the read size used by Stream when none is configured.
const DefaultChunkSize = 100

// ByteFunc handles one input byte. A non-nil error stops the source.
type ByteFunc func(b byte) error

// Option configures how bytes are delivered.
type Option func(*feeder)

// WithDelay sleeps for d between consecutive bytes.
func WithDelay(d time.Duration) Option {
	return func(f *feeder) {
		f.delay = d
	}
}

// WithSleep replaces time.Sleep, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(f *feeder) {
		f.sleep = sleep
	}
}

type feeder struct {
	fn    ByteFunc
	delay time.Duration
	sleep func(time.Duration)
	count int
}

func newFeeder(fn ByteFunc, opts []Option) *feeder {
	f := &feeder{fn: fn, sleep: time.Sleep}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *feeder) feed(b byte) error {
	if f.count > 0 && f.delay > 0 {
		f.sleep(f.delay)
	}
	f.count++
	return f.fn(b)
}

// Literal feeds every byte of text once, in order.
func Literal(text string, fn ByteFunc, opts ...Option) error {
	f := newFeeder(fn, opts)
	for i := 0; i < len(text); i++ {
		if err := f.feed(text[i]); err != nil {
			return err
		}
	}
	logger.Debug("Literal input consumed", "bytes", f.count)
	return nil
}

// Stream reads r in chunks of up to chunk bytes until end of stream. Read
// errors end the stream like EOF; only errors from fn are returned. A read of
// zero bytes without an error is retried.
func Stream(r io.Reader, chunk int, fn ByteFunc, opts ...Option) error {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	f := newFeeder(fn, opts)
	buf := make([]byte, chunk)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if ferr := f.feed(b); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("Input stream stopped on read error", "error", err, "bytes", f.count)
			} else {
				logger.Debug("Input stream closed", "bytes", f.count)
			}
			return nil
		}
	}
}
