// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

// Script is an exhaustible, order-preserving cursor over a finite or
// infinite sequence of [Op] values. Each interceptor operation
// consumes exactly one value, in order, at most once.
//
// A Script is fused: after [Script.Next] reports exhaustion once,
// every later call also reports exhaustion, even if the underlying
// source is stateful and could produce more values later. This makes
// "ran out of script" a stable terminal state rather than a property
// of a possibly misbehaving source.
//
// A Script is not safe for concurrent use without external
// synchronization.
type Script struct {
	// source produces the next op, or false when none remain.
	source func() (Op, bool)

	// exhausted latches the first false returned by source.
	exhausted bool
}

// NewScript returns a [*Script] that yields the given ops in order
// and is then exhausted. An empty call yields an immediately
// exhausted script, which makes every interceptor operation a
// transparent pass-through.
func NewScript(ops ...Op) *Script {
	idx := 0
	return NewScriptFunc(func() (Op, bool) {
		if idx >= len(ops) {
			return Op{}, false
		}
		op := ops[idx]
		idx++
		return op, true
	})
}

// NewScriptFunc returns a [*Script] backed by an arbitrary producer.
// The producer returns the next op and true, or false when no further
// ops remain. Once it returns false it is never called again.
//
// Use this for infinite or stateful sources that [NewScript] and
// [Repeat] cannot express.
func NewScriptFunc(source func() (Op, bool)) *Script {
	return &Script{source: source, exhausted: false}
}

// Repeat returns a [*Script] that yields op forever.
func Repeat(op Op) *Script {
	return NewScriptFunc(func() (Op, bool) {
		return op, true
	})
}

// Next returns the next scripted op, or false if the script is
// exhausted. Exhaustion is sticky.
func (s *Script) Next() (Op, bool) {
	if s.exhausted {
		return Op{}, false
	}
	op, ok := s.source()
	if !ok {
		s.exhausted = true
		return Op{}, false
	}
	return op, true
}
