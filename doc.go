// SPDX-License-Identifier: GPL-3.0-or-later

// Package partialio provides deterministic fault injection for
// byte-stream I/O.
//
// # Core Abstraction
//
// The package is built around scripts of partial operations:
//
//	script := partialio.NewScript(
//		partialio.Err(partialio.KindWouldBlock),
//		partialio.Limited(2),
//	)
//
// A wrapper around a reader, writer, or connection consumes one
// scripted [Op] per operation, in order, and maps it to an outcome:
//
//   - [Unlimited]: pass the call through unchanged
//   - [Limited]: cap the request to a byte budget
//   - [Err]: fail with a synthetic fault, without touching the
//     wrapped stream
//
// Once a script runs out, the wrapper degrades to transparent
// pass-through, so partially specified scripts are valid and simply
// "run out" of fault injection. Use SetScript (or SetReadScript /
// SetWriteScript on connections) to install fresh faults mid-test.
//
// # Available Wrappers
//
//   - [PartialReader]: wraps an [io.Reader]
//   - [PartialWriter]: wraps an [io.Writer], also intercepting Flush
//   - [PartialConn]: wraps a [net.Conn] with one script per direction
//
// Wrappers never observe or mutate bytes in flight: they only decide
// how many bytes of a request are forwarded, or whether the request
// is replaced by an error. Errors from the wrapped stream propagate
// verbatim; injected faults carry a fixed "partialio:" message prefix
// and unwrap to the matching errno (see [InjectedError]).
//
// # Cooperative Wakeup
//
// A synthetic would-block fault differs from a real one in that no
// readiness notification will ever follow it. Callers integrating
// with an event loop install a [Waker] on the wrapper: every injected
// [KindWouldBlock] read or write triggers exactly one Wake, arranging
// for the operation to be re-polled instead of hanging. Flush never
// wakes, matching the narrower scope of the behavior being simulated.
// The default waker is a no-op, which yields a plain synchronous
// wrapper.
//
// # Observability
//
// All wrappers support structured logging via [SLogger] (compatible
// with [log/slog]). By default logging is disabled. Every intercepted
// operation emits Start/Done events at [slog.LevelDebug] carrying the
// scripted decision, byte counts, err, and errClass. Error
// classification is configurable via [ErrClassifier]. Use [NewSpanID]
// with [*slog.Logger.With] to correlate the events of one scripted
// exercise.
//
// # Design Boundaries
//
// This package intentionally has no state beyond the current position
// in each script and the wrapped stream. The following are out of
// scope and should live at the wrapped-stream level or in the test
// harness:
//
//   - Latency and jitter simulation
//   - Retry and backoff logic
//   - Fault-injectable Close: finalization forwards directly
//
// Wrappers are synchronous and complete every call on the calling
// goroutine; they are not safe for concurrent calls sharing a script
// cursor without external synchronization.
package partialio
