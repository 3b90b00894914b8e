package main

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/google/renameio"
)

var (
	errNoInput      = errors.New("no input stream")
	errBufferClosed = errors.New("write to closed buffer")
)

// store is a document that can be read, and replaced in full.
type store interface {
	open() (io.ReadCloser, error)
	update() (cleanupWriteCloser, error)
}

// cleanupWriteCloser commits its content on Close; Cleanup discards it if
// Close was never called, or failed.
type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

func readDocument(st store) (_ string, rerr error) {
	r, err := st.open()
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := r.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	b, err := io.ReadAll(r)
	return string(b), err
}

func writeDocument(st store, content string) error {
	w, err := st.update()
	if err != nil {
		return err
	}
	defer w.Cleanup()
	if _, err := io.WriteString(w, content); err != nil {
		return err
	}
	return w.Close()
}

// streamStore reads from one stream, and writes updates to another.
type streamStore struct {
	r io.Reader
	w io.Writer
}

func (ss *streamStore) open() (io.ReadCloser, error) {
	if ss.r == nil {
		return nil, errNoInput
	}
	return io.NopCloser(ss.r), nil
}

func (ss *streamStore) update() (cleanupWriteCloser, error) {
	return &pendingBuffer{sink: func(content string) error {
		_, err := io.WriteString(ss.w, content)
		return err
	}}, nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.String())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	// discarded if not already closed
	pb.closed = true
	return nil
}

// fsStore is a file, replaced atomically on update.
type fsStore struct {
	filename string
	fileinfo os.FileInfo
}

func (fst *fsStore) open() (io.ReadCloser, error) {
	info, err := os.Stat(fst.filename)
	if err != nil {
		return nil, err
	}
	fst.fileinfo = info
	return os.Open(fst.filename)
}

func (fst *fsStore) update() (cleanupWriteCloser, error) {
	pf, err := renameio.TempFile("", fst.filename)
	if err != nil {
		return nil, err
	}
	if fst.fileinfo != nil {
		if err := pf.Chmod(fst.fileinfo.Mode().Perm()); err != nil {
			pf.Cleanup()
			return nil, err
		}
	}
	return &pendingFile{PendingFile: pf}, nil
}

type pendingFile struct {
	*renameio.PendingFile
	closed bool
}

func (uf *pendingFile) Close() error {
	if uf.closed {
		return nil
	}
	err := uf.CloseAtomicallyReplace()
	uf.closed = err == nil
	return err
}

func (uf *pendingFile) Cleanup() error {
	if uf.closed {
		return nil
	}
	uf.closed = true
	return uf.PendingFile.Cleanup()
}
