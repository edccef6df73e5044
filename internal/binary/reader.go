// Package binary provides bounds-checked binary reading over a byte source.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/mp3detect"
)

// SafeReader wraps a Source with bounds checking and helpful error
// messages. A TotalSize of 0 means the size is unknown; in that case only
// the read results themselves reveal where the source ends.
type SafeReader struct {
	src  mp3detect.Source
	size uint64
}

// NewSafeReader creates a SafeReader over src.
func NewSafeReader(src mp3detect.Source) *SafeReader {
	return &SafeReader{src: src, size: src.TotalSize}
}

// Size returns the declared total size of the source, 0 if unknown.
func (sr *SafeReader) Size() uint64 {
	return sr.size
}

// Source returns the wrapped Source.
func (sr *SafeReader) Source() mp3detect.Source {
	return sr.src
}

// ReadAt fills b from the given offset, with context for error messages.
// A read the source cannot satisfy in full returns io.ErrUnexpectedEOF;
// a failing read callback returns an error wrapping StatusIOError.
func (sr *SafeReader) ReadAt(b []byte, off uint64, what string) error {
	if sr.size > 0 && off+uint64(len(b)) > sr.size {
		return fmt.Errorf("read of %d bytes at offset %d for %s exceeds source size %d: %w",
			len(b), off, what, sr.size, io.ErrUnexpectedEOF)
	}

	n, err := sr.src.ReadRange(sr.src.Context, off, b)
	if err != nil {
		return fmt.Errorf("read %s at offset %d: %v: %w", what, off, err, mp3detect.StatusIOError)
	}
	if n < len(b) {
		return fmt.Errorf("short read for %s at offset %d: got %d of %d bytes: %w",
			what, off, n, len(b), io.ErrUnexpectedEOF)
	}
	return nil
}

// ReadAvailable fills b from the given offset with as many bytes as the
// source can provide. Reads past the end return 0 and no error; only a
// failing read callback is an error, wrapping StatusIOError.
func (sr *SafeReader) ReadAvailable(b []byte, off uint64) (int, error) {
	n, err := sr.src.ReadRange(sr.src.Context, off, b)
	if err != nil {
		return 0, fmt.Errorf("read at offset %d: %v: %w", off, err, mp3detect.StatusIOError)
	}
	return n, nil
}

// Read reads a big-endian value of type T at the given offset.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off uint64, what string) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}
