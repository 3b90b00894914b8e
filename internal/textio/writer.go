// Package textio provides writer plumbing for line oriented command output.
package textio

import (
	"bytes"
	"io"
)

// LineBuffer holds output back until Ready says some prefix of it is worth
// writing to To; by default that is every complete line. Callers write into
// it, call MaybeFlush as they go, and Flush once at the end.
type LineBuffer struct {
	bytes.Buffer
	To io.Writer

	// Ready returns how many leading bytes of b should be written now;
	// CompleteLines is used if nil.
	Ready func(b []byte) int
}

// Flush writes all buffered bytes, regardless of Ready.
func (buf *LineBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes however many bytes Ready says to, discarding those written.
func (buf *LineBuffer) MaybeFlush() error {
	ready := buf.Ready
	if ready == nil {
		ready = CompleteLines
	}
	b := buf.Bytes()
	if n := ready(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// CompleteLines returns the length of b through its last newline.
func CompleteLines(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// StickyWriter passes writes through until one fails; from then on every
// write fails with that same error without touching the underlying writer.
type StickyWriter struct {
	w   io.Writer
	err error
}

// NewStickyWriter returns a StickyWriter over w.
func NewStickyWriter(w io.Writer) *StickyWriter { return &StickyWriter{w: w} }

// Err returns the error that stopped writing, if any.
func (sw *StickyWriter) Err() error { return sw.err }

func (sw *StickyWriter) Write(p []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	n, err := sw.w.Write(p)
	sw.err = err
	return n, err
}

func (sw *StickyWriter) WriteString(s string) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	n, err := io.WriteString(sw.w, s)
	sw.err = err
	return n, err
}

// PrefixWriter prepends a prefix to every line written through it.
// The caller SHOULD close it to flush any partial final line.
type PrefixWriter struct {
	buf    LineBuffer
	prefix string
	mid    bool // within a line, already prefixed
}

// NewPrefixWriter returns a PrefixWriter that writes into w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	pw := &PrefixWriter{prefix: prefix}
	pw.buf.To = w
	return pw
}

func (pw *PrefixWriter) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if !pw.mid {
			pw.buf.WriteString(pw.prefix)
			pw.mid = true
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
			pw.mid = false
		}
		b = b[len(line):]
		m, _ := pw.buf.Write(line)
		n += m
	}
	return n, pw.buf.MaybeFlush()
}

// Close flushes any partial final line.
func (pw *PrefixWriter) Close() error { return pw.buf.Flush() }

// WriteLines calls next with a buffered writer until it returns false, passing
// complete lines along to to after every call. Iteration stops early after any
// write error, which is returned.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	sw, _ := to.(*StickyWriter)
	if sw == nil {
		sw = NewStickyWriter(to)
	}
	buf := LineBuffer{To: sw}
	for sw.Err() == nil && next(&buf) {
		_ = buf.MaybeFlush()
	}
	_ = buf.Flush()
	return sw.Err()
}
