// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"io"
	"log/slog"
	"time"
)

// PartialReader wraps an [io.Reader] and, on each Read, consumes the
// next scripted [Op] to decide whether to pass the call through,
// truncate the request, or fail with a synthetic fault.
//
// The wrapper never touches bytes in flight: it only decides how many
// bytes of a request reach the wrapped reader, or whether the request
// is replaced by an error. Content is byte-for-byte whatever the
// wrapped reader produced.
//
// All fields are safe to modify after construction but before first
// use. Fields must not be mutated concurrently with calls to Read.
type PartialReader struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewReader] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or
	// custom logging).
	//
	// Set by [NewReader] to [DefaultSLogger].
	Logger SLogger

	// TimeNow is the function to get the current time (configurable
	// for testing).
	//
	// Set by [NewReader] to [time.Now].
	TimeNow func() time.Time

	// Waker is notified when a [KindWouldBlock] fault is injected
	// into a Read. See [Waker] for the contract.
	//
	// Set by [NewReader] to [DefaultWaker].
	Waker Waker

	// inner is the wrapped reader.
	inner io.Reader

	// script drives the per-Read decisions.
	script *Script
}

var _ io.Reader = &PartialReader{}

// NewReader returns a [*PartialReader] wrapping inner and driven by
// the given script.
func NewReader(inner io.Reader, script *Script) *PartialReader {
	return &PartialReader{
		ErrClassifier: DefaultErrClassifier,
		Logger:        DefaultSLogger(),
		TimeNow:       time.Now,
		Waker:         DefaultWaker,
		inner:         inner,
		script:        script,
	}
}

// Read implements [io.Reader].
//
// The next scripted op determines the outcome:
//
//   - [Unlimited], or an exhausted script: forward the full request
//     to the wrapped reader and return its result verbatim;
//   - [Limited](n): forward a request for min(n, len(buf)) bytes and
//     return the wrapped reader's result verbatim. Limited(0)
//     forwards a zero-length read;
//   - [Err](kind): fail with an [*InjectedError] without touching the
//     wrapped reader. [KindWouldBlock] additionally notifies Waker.
func (r *PartialReader) Read(buf []byte) (int, error) {
	d := decide(r.script, "read", len(buf), r.Waker)

	t0 := r.TimeNow()
	r.Logger.Debug(
		"readStart",
		slog.Int("ioBufferSize", len(buf)),
		slog.String("scriptedOp", d.label),
		slog.Time("t", t0),
	)

	var (
		count int
		err   error
	)
	if d.err != nil {
		err = d.err
	} else {
		count, err = r.inner.Read(buf[:d.limit])
	}

	r.Logger.Debug(
		"readDone",
		slog.Int("ioBytesCount", count),
		slog.Any("err", err),
		slog.String("errClass", r.ErrClassifier.Classify(err)),
		slog.String("scriptedOp", d.label),
		slog.Time("t0", t0),
		slog.Time("t", r.TimeNow()),
	)

	return count, err
}

// Close forwards to the wrapped reader when it implements
// [io.Closer] and returns nil otherwise. Close never consumes a
// scripted op: finalization is not fault-injectable, tests needing a
// failing close can arrange it at the wrapped-reader level.
func (r *PartialReader) Close() error {
	if closer, ok := r.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SetScript replaces the active script, discarding any unconsumed
// ops. The replacement takes effect starting with the next Read.
func (r *PartialReader) SetScript(script *Script) {
	r.script = script
}

// Inner returns the wrapped reader.
//
// The accessor never touches the script. Since the wrapper holds the
// reader by reference, Inner serves both for inspection and for
// reclaiming the reader once the wrapper is no longer needed.
func (r *PartialReader) Inner() io.Reader {
	return r.inner
}
