// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import "syscall"

// InjectedError is the error returned when a scripted [Err] decision
// fails an operation. It never originates from, and never wraps, an
// error produced by the wrapped stream.
//
// The message carries a fixed "partialio:" prefix so that synthetic
// faults remain distinguishable from genuine I/O errors in logs and
// test failures.
type InjectedError struct {
	// Kind is the fault category requested by the script.
	Kind ErrKind

	// Operation is the name of the interrupted operation: "read",
	// "write", or "flush".
	Operation string
}

var _ error = &InjectedError{}

// Error implements the error interface.
func (e *InjectedError) Error() string {
	return "partialio: synthetic " + e.Kind.String() + " error during " + e.Operation
}

// Unwrap maps the fault category onto the corresponding errno, so
// that errno-aware code treats an injected fault like the real thing:
//
//   - [KindWouldBlock] unwraps to [syscall.EAGAIN], hence
//     errors.Is(err, syscall.EAGAIN) holds;
//   - [KindInterrupted] unwraps to [syscall.EINTR];
//   - [KindOther] does not unwrap to anything.
func (e *InjectedError) Unwrap() error {
	switch e.Kind {
	case KindWouldBlock:
		return syscall.EAGAIN
	case KindInterrupted:
		return syscall.EINTR
	default:
		return nil
	}
}
