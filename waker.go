// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

// Waker receives a notification whenever an interceptor injects a
// [KindWouldBlock] fault into a read or write.
//
// A genuine would-block error tells the caller to wait for an
// external readiness notification before retrying. For a synthetic
// fault that notification never arrives, so a caller integrating with
// an event loop or cooperative scheduler installs a Waker to request
// an immediate re-poll instead of hanging.
//
// Contract expectations:
//   - Wake is invoked once per injected would-block read or write.
//   - Flush never invokes Wake, even for a would-block fault. This
//     mirrors the asymmetry of the behavior being simulated and is
//     intentional.
//   - Wake must not block: it runs on the caller's goroutine inside
//     the failing operation. Channel-based implementations should use
//     a buffered channel or a non-blocking send.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to the [Waker] interface.
//
// This allows using simple closures as wakers:
//
//	w.Waker = WakerFunc(func() { readyCh <- struct{}{} })
type WakerFunc func()

var _ Waker = WakerFunc(nil)

// Wake implements [Waker].
func (f WakerFunc) Wake() {
	f()
}

// DefaultWaker is a no-op waker. With it installed the interceptor
// behaves as a plain synchronous wrapper: would-block faults are
// returned like any other injected error, with no side channel.
var DefaultWaker = WakerFunc(func() {})
