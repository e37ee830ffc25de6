// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"io"
	"log/slog"
	"time"
)

// Flusher is the flushing interface optionally implemented by wrapped
// writers, matching the method set of [*bufio.Writer].
type Flusher interface {
	Flush() error
}

// PartialWriter wraps an [io.Writer] and, on each Write or Flush,
// consumes the next scripted [Op] to decide whether to pass the call
// through, truncate it, or fail with a synthetic fault.
//
// Truncation caps how many leading bytes of the caller's data are
// forwarded; the wrapped writer's own return value is what the caller
// observes, so the wrapper never claims success for bytes it did not
// forward.
//
// All fields are safe to modify after construction but before first
// use. Fields must not be mutated concurrently with calls to Write
// or Flush.
type PartialWriter struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewWriter] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or
	// custom logging).
	//
	// Set by [NewWriter] to [DefaultSLogger].
	Logger SLogger

	// TimeNow is the function to get the current time (configurable
	// for testing).
	//
	// Set by [NewWriter] to [time.Now].
	TimeNow func() time.Time

	// Waker is notified when a [KindWouldBlock] fault is injected
	// into a Write. Flush never notifies it. See [Waker].
	//
	// Set by [NewWriter] to [DefaultWaker].
	Waker Waker

	// inner is the wrapped writer.
	inner io.Writer

	// script drives the per-operation decisions.
	script *Script
}

var _ io.Writer = &PartialWriter{}

// NewWriter returns a [*PartialWriter] wrapping inner and driven by
// the given script.
func NewWriter(inner io.Writer, script *Script) *PartialWriter {
	return &PartialWriter{
		ErrClassifier: DefaultErrClassifier,
		Logger:        DefaultSLogger(),
		TimeNow:       time.Now,
		Waker:         DefaultWaker,
		inner:         inner,
		script:        script,
	}
}

// Write implements [io.Writer].
//
// The next scripted op determines the outcome:
//
//   - [Unlimited], or an exhausted script: forward all of data to the
//     wrapped writer and return its result verbatim;
//   - [Limited](n): forward data[:min(n, len(data))] and return the
//     wrapped writer's result verbatim;
//   - [Err](kind): fail with an [*InjectedError] without touching the
//     wrapped writer. [KindWouldBlock] additionally notifies Waker.
func (w *PartialWriter) Write(data []byte) (int, error) {
	d := decide(w.script, "write", len(data), w.Waker)

	t0 := w.TimeNow()
	w.Logger.Debug(
		"writeStart",
		slog.Int("ioBufferSize", len(data)),
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
		count, err = w.inner.Write(data[:d.limit])
	}

	w.Logger.Debug(
		"writeDone",
		slog.Int("ioBytesCount", count),
		slog.Any("err", err),
		slog.String("errClass", w.ErrClassifier.Classify(err)),
		slog.String("scriptedOp", d.label),
		slog.Time("t0", t0),
		slog.Time("t", w.TimeNow()),
	)

	return count, err
}

// Flush consumes the next scripted op as well.
//
// An [Err] op fails the flush without forwarding it; any other op,
// including [Limited] (whose count is meaningless for a flush), lets
// the flush through. The flush is forwarded to the wrapped writer
// when it implements [Flusher] and is a no-op otherwise.
//
// Unlike Write, Flush never notifies the Waker, not even for a
// would-block fault.
func (w *PartialWriter) Flush() error {
	fault, label := decideFlush(w.script)

	t0 := w.TimeNow()
	w.Logger.Debug(
		"flushStart",
		slog.String("scriptedOp", label),
		slog.Time("t", t0),
	)

	var err error
	if fault != nil {
		err = fault
	} else if flusher, ok := w.inner.(Flusher); ok {
		err = flusher.Flush()
	}

	w.Logger.Debug(
		"flushDone",
		slog.Any("err", err),
		slog.String("errClass", w.ErrClassifier.Classify(err)),
		slog.String("scriptedOp", label),
		slog.Time("t0", t0),
		slog.Time("t", w.TimeNow()),
	)

	return err
}

// Close forwards to the wrapped writer when it implements
// [io.Closer] and returns nil otherwise. Close never consumes a
// scripted op: finalization is not fault-injectable, tests needing a
// failing close can arrange it at the wrapped-writer level.
func (w *PartialWriter) Close() error {
	if closer, ok := w.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SetScript replaces the active script, discarding any unconsumed
// ops. The replacement takes effect starting with the next Write or
// Flush.
func (w *PartialWriter) SetScript(script *Script) {
	w.script = script
}

// Inner returns the wrapped writer.
//
// The accessor never touches the script. Since the wrapper holds the
// writer by reference, Inner serves both for inspection and for
// reclaiming the writer once the wrapper is no longer needed.
func (w *PartialWriter) Inner() io.Writer {
	return w.inner
}
