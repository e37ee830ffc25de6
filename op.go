// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import "strconv"

// ErrKind is the closed set of fault categories that a scripted
// [Op] can inject.
//
// The set is deliberately small: tests assert on the category, and a
// stable category set keeps those assertions meaningful across
// releases.
type ErrKind uint8

const (
	// KindWouldBlock is a retryable readiness fault (EAGAIN-like).
	//
	// This is the only kind that triggers the [Waker] hook: a real
	// would-block error implies a later readiness notification, which
	// a synthetic fault will never deliver.
	KindWouldBlock ErrKind = iota

	// KindInterrupted is a transient interruption fault (EINTR-like).
	KindInterrupted

	// KindOther is a generic, non-retryable fault.
	KindOther
)

// String returns the camelCase label used in structured logging.
func (k ErrKind) String() string {
	switch k {
	case KindWouldBlock:
		return "wouldBlock"
	case KindInterrupted:
		return "interrupted"
	case KindOther:
		return "other"
	default:
		return "errKind(unknown)"
	}
}

// opKind discriminates the [Op] variants.
type opKind uint8

const (
	opUnlimited opKind = iota
	opLimited
	opErr
)

// Op is a single scripted decision consumed by an interceptor: let
// the operation through unchanged, cap it to a byte budget, or fail
// it with a synthetic fault.
//
// Construct values with [Unlimited], [Limited], and [Err]. The zero
// value is equivalent to [Unlimited].
type Op struct {
	kind    opKind
	limit   int
	errKind ErrKind
}

// Unlimited returns an [Op] that lets the operation through without
// truncation or injected error.
func Unlimited() Op {
	return Op{kind: opUnlimited}
}

// Limited returns an [Op] that caps the operation to at most n bytes.
//
// A zero n is valid and forwards a zero-length request to the wrapped
// stream. Limited panics if n is negative, since a negative budget in
// a test script is always a bug.
func Limited(n int) Op {
	if n < 0 {
		panic("partialio: Limited called with negative byte count")
	}
	return Op{kind: opLimited, limit: n}
}

// Err returns an [Op] that fails the operation with a synthetic
// fault of the given kind, without touching the wrapped stream.
func Err(kind ErrKind) Op {
	return Op{kind: opErr, errKind: kind}
}

// String returns a compact description for debug logging.
func (op Op) String() string {
	switch op.kind {
	case opUnlimited:
		return "unlimited"
	case opLimited:
		return "limited(" + strconv.Itoa(op.limit) + ")"
	case opErr:
		return "err(" + op.errKind.String() + ")"
	default:
		return "op(unknown)"
	}
}
