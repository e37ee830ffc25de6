// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

// decision is the outcome of consuming one scripted op on behalf of
// a buffered operation (read or write).
type decision struct {
	// limit is the number of bytes to forward to the wrapped stream,
	// already capped at the size of the caller's buffer.
	limit int

	// err is the fault to inject instead of forwarding, or nil.
	err *InjectedError

	// label is the scriptedOp attribute for structured logging.
	label string
}

// decide consumes the next op from script and maps it onto buflen
// bytes of the named operation ("read" or "write").
//
// Truncation caps the request size, never the bytes in flight: the
// wrapped stream sees a request for decision.limit bytes and its own
// result is what the caller observes. An exhausted script degrades to
// transparent pass-through.
//
// When the op injects a would-block fault, waker is notified so that
// a cooperative caller is re-polled instead of waiting forever for a
// readiness event that a synthetic fault cannot deliver.
func decide(script *Script, operation string, buflen int, waker Waker) decision {
	op, ok := script.Next()
	if !ok {
		return decision{limit: buflen, err: nil, label: "exhausted"}
	}
	switch op.kind {
	case opLimited:
		return decision{limit: min(op.limit, buflen), err: nil, label: op.String()}

	case opErr:
		if op.errKind == KindWouldBlock {
			waker.Wake()
		}
		fault := &InjectedError{Kind: op.errKind, Operation: operation}
		return decision{limit: 0, err: fault, label: op.String()}

	default:
		return decision{limit: buflen, err: nil, label: op.String()}
	}
}

// decideFlush consumes the next op from script on behalf of a flush.
//
// Only an [Err] op is meaningful for a flush: it fails the flush
// without forwarding it. A [Limited] count is meaningless for a flush
// and is treated exactly like [Unlimited]. Flush never notifies the
// waker, not even for a would-block fault; this asymmetry with write
// is intentional.
func decideFlush(script *Script) (*InjectedError, string) {
	op, ok := script.Next()
	if !ok {
		return nil, "exhausted"
	}
	if op.kind == opErr {
		return &InjectedError{Kind: op.errKind, Operation: "flush"}, op.String()
	}
	return nil, op.String()
}
