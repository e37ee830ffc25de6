// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"context"
	"log/slog"
	"net"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordNames extracts the event names from captured log records.
func recordNames(records []slog.Record) []string {
	var names []string
	for _, record := range records {
		names = append(names, record.Message)
	}
	return names
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set. This is the minimum needed for code that calls
// [safeconn.LocalAddr], [safeconn.RemoteAddr], and [safeconn.Network]
// during construction.
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
	}
}

// funcReader adapts a function to [io.Reader] so tests can record
// exactly which requests reach the wrapped reader.
type funcReader struct {
	ReadFunc func(p []byte) (int, error)
}

// Read implements [io.Reader].
func (r *funcReader) Read(p []byte) (int, error) {
	return r.ReadFunc(p)
}

// funcReadCloser is a [funcReader] that also implements [io.Closer].
type funcReadCloser struct {
	funcReader
	CloseFunc func() error
}

// Close implements [io.Closer].
func (r *funcReadCloser) Close() error {
	return r.CloseFunc()
}

// funcWriter adapts a function to [io.Writer]. It deliberately does
// NOT implement [Flusher], so tests can exercise the non-flushable
// path.
type funcWriter struct {
	WriteFunc func(p []byte) (int, error)
}

// Write implements [io.Writer].
func (w *funcWriter) Write(p []byte) (int, error) {
	return w.WriteFunc(p)
}

// funcFlushWriter is a [funcWriter] that also implements [Flusher].
type funcFlushWriter struct {
	funcWriter
	FlushFunc func() error
}

// Flush implements [Flusher].
func (w *funcFlushWriter) Flush() error {
	return w.FlushFunc()
}

// funcWriteCloser is a [funcWriter] that also implements [io.Closer].
type funcWriteCloser struct {
	funcWriter
	CloseFunc func() error
}

// Close implements [io.Closer].
func (w *funcWriteCloser) Close() error {
	return w.CloseFunc()
}

// countingWaker returns a [Waker] that increments the returned counter
// on each wakeup.
func countingWaker() (Waker, *int) {
	var count int
	return WakerFunc(func() { count++ }), &count
}
