// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/bassosimone/safeconn"
)

// PartialConn wraps a [net.Conn] and applies the scripted decision
// protocol to both directions, with one independent [*Script] cursor
// per direction. Sharing one cursor between Read and Write would make
// the interleaving of the two goroutine halves of a connection
// significant, destroying the determinism scripts exist to provide.
//
// Close, address accessors, and deadline setters forward to the
// wrapped connection without consuming scripted ops.
//
// All fields are safe to modify after construction but before first
// use. Fields must not be mutated concurrently with calls to Read or
// Write.
type PartialConn struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConn] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or
	// custom logging).
	//
	// Set by [NewConn] to [DefaultSLogger].
	Logger SLogger

	// TimeNow is the function to get the current time (configurable
	// for testing).
	//
	// Set by [NewConn] to [time.Now].
	TimeNow func() time.Time

	// Waker is notified when a [KindWouldBlock] fault is injected
	// into a Read or Write. See [Waker] for the contract.
	//
	// Set by [NewConn] to [DefaultWaker].
	Waker Waker

	// closeonce ensures we only close the wrapped conn once.
	closeonce sync.Once

	// conn is the wrapped connection.
	conn net.Conn

	// laddr is the local address for logging.
	laddr string

	// protocol is the network for logging.
	protocol string

	// raddr is the remote address for logging.
	raddr string

	// readScript drives Read decisions.
	readScript *Script

	// writeScript drives Write decisions.
	writeScript *Script
}

var _ net.Conn = &PartialConn{}

// NewConn returns a [*PartialConn] wrapping conn, with readScript
// driving the read direction and writeScript the write direction.
//
// The two scripts may be distinct cursors or the same one; in the
// latter case the caller accepts that the consumption order depends
// on the interleaving of reads and writes.
func NewConn(conn net.Conn, readScript, writeScript *Script) *PartialConn {
	return &PartialConn{
		ErrClassifier: DefaultErrClassifier,
		Logger:        DefaultSLogger(),
		TimeNow:       time.Now,
		Waker:         DefaultWaker,
		closeonce:     sync.Once{},
		conn:          conn,
		laddr:         safeconn.LocalAddr(conn),
		protocol:      safeconn.Network(conn),
		raddr:         safeconn.RemoteAddr(conn),
		readScript:    readScript,
		writeScript:   writeScript,
	}
}

// Read implements [net.Conn] using the same decision protocol as
// [PartialReader.Read], driven by the read-direction script.
func (c *PartialConn) Read(buf []byte) (int, error) {
	d := decide(c.readScript, "read", len(buf), c.Waker)

	t0 := c.TimeNow()
	c.Logger.Debug(
		"readStart",
		slog.Int("ioBufferSize", len(buf)),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
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
		count, err = c.conn.Read(buf[:d.limit])
	}

	c.Logger.Debug(
		"readDone",
		slog.Int("ioBytesCount", count),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.String("scriptedOp", d.label),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)

	return count, err
}

// Write implements [net.Conn] using the same decision protocol as
// [PartialWriter.Write], driven by the write-direction script.
func (c *PartialConn) Write(data []byte) (int, error) {
	d := decide(c.writeScript, "write", len(data), c.Waker)

	t0 := c.TimeNow()
	c.Logger.Debug(
		"writeStart",
		slog.Int("ioBufferSize", len(data)),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
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
		count, err = c.conn.Write(data[:d.limit])
	}

	c.Logger.Debug(
		"writeDone",
		slog.Int("ioBytesCount", count),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.String("scriptedOp", d.label),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)

	return count, err
}

// Close implements [net.Conn]. Close never consumes a scripted op:
// finalization is not fault-injectable, tests needing a failing close
// can arrange it at the wrapped-conn level.
//
// Subsequent calls return [net.ErrClosed], consistent with Go's
// standard library behavior for closed connections.
func (c *PartialConn) Close() (err error) {
	err = net.ErrClosed
	c.closeonce.Do(func() {
		t0 := c.TimeNow()
		c.Logger.Debug(
			"closeStart",
			slog.String("localAddr", c.laddr),
			slog.String("protocol", c.protocol),
			slog.String("remoteAddr", c.raddr),
			slog.Time("t", t0),
		)

		err = c.conn.Close()

		c.Logger.Debug(
			"closeDone",
			slog.Any("err", err),
			slog.String("errClass", c.ErrClassifier.Classify(err)),
			slog.String("localAddr", c.laddr),
			slog.String("protocol", c.protocol),
			slog.String("remoteAddr", c.raddr),
			slog.Time("t0", t0),
			slog.Time("t", c.TimeNow()),
		)
	})
	return
}

// LocalAddr implements [net.Conn].
func (c *PartialConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr implements [net.Conn].
func (c *PartialConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// SetDeadline implements [net.Conn]. Deadline changes forward
// directly without consuming scripted ops.
func (c *PartialConn) SetDeadline(t time.Time) error {
	c.Logger.Debug(
		"setDeadline",
		slog.Time("deadline", t),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.Time("t", c.TimeNow()),
	)
	return c.conn.SetDeadline(t)
}

// SetReadDeadline implements [net.Conn].
func (c *PartialConn) SetReadDeadline(t time.Time) error {
	c.Logger.Debug(
		"setReadDeadline",
		slog.Time("deadline", t),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.Time("t", c.TimeNow()),
	)
	return c.conn.SetReadDeadline(t)
}

// SetWriteDeadline implements [net.Conn].
func (c *PartialConn) SetWriteDeadline(t time.Time) error {
	c.Logger.Debug(
		"setWriteDeadline",
		slog.Time("deadline", t),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.Time("t", c.TimeNow()),
	)
	return c.conn.SetWriteDeadline(t)
}

// SetReadScript replaces the read-direction script, discarding any
// unconsumed ops. Effective starting with the next Read.
func (c *PartialConn) SetReadScript(script *Script) {
	c.readScript = script
}

// SetWriteScript replaces the write-direction script, discarding any
// unconsumed ops. Effective starting with the next Write.
func (c *PartialConn) SetWriteScript(script *Script) {
	c.writeScript = script
}

// Inner returns the wrapped connection. The accessor never touches
// the scripts.
func (c *PartialConn) Inner() net.Conn {
	return c.conn
}
