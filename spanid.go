// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 representing a span.
//
// A span is a sequence of operations exercised against a single
// scripted wrapper. For example, a test that drives a writer through
// a would-block fault followed by a short write is one span.
//
// Attach the span ID to the wrapper's logger with [*slog.Logger.With]
// so that every readStart/readDone (or write/flush) event emitted
// while consuming one script can be correlated during log analysis.
//
// The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
