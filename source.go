package mp3detect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// LogLevel is the severity of a message forwarded through a Source's Log
// hook.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// Slog maps the level to its log/slog equivalent.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ReadRangeFunc reads up to len(dst) bytes starting at offset and reports
// how many were read. It must be safe to call with any offset, including
// past the end of the source: such reads return 0 bytes and a nil error,
// never a failure. It must not assume sequential access.
type ReadRangeFunc func(ctx any, offset uint64, dst []byte) (int, error)

// Source describes how a backend pulls byte ranges from the host.
//
// The host owns Context and the backing resource (file handle, buffer,
// socket) for the full lifetime of every Session built on the Source; the
// boundary never closes or frees either. Only ReadRange is required.
// A Source with a nil ReadRange is rejected by NewSession with
// StatusInvalidArgument.
type Source struct {
	// Context is opaque host state, passed verbatim to every callback.
	Context any

	// TotalSize is the size of the source in bytes, 0 if unknown.
	TotalSize uint64

	// ReadRange is the required random-access read callback.
	ReadRange ReadRangeFunc

	// Alloc, when set, supplies scratch buffers to the backend. When nil
	// the backend allocates on its own.
	Alloc func(ctx any, size int) []byte

	// Free returns a buffer obtained from Alloc. Optional, paired with
	// Alloc.
	Free func(ctx any, buf []byte)

	// Log receives diagnostic messages from the backend. When nil they are
	// discarded.
	Log func(ctx any, level LogLevel, msg string)
}

// Logf formats a message and forwards it to the Log hook. No-op when the
// hook is absent.
func (s Source) Logf(level LogLevel, format string, args ...any) {
	if s.Log == nil {
		return
	}
	s.Log(s.Context, level, fmt.Sprintf(format, args...))
}

// AllocBytes returns a scratch buffer of the given size, using the Alloc
// hook when present.
func (s Source) AllocBytes(size int) []byte {
	if s.Alloc != nil {
		if buf := s.Alloc(s.Context, size); buf != nil {
			return buf
		}
	}
	return make([]byte, size)
}

// FreeBytes returns a buffer obtained from AllocBytes to the Free hook, if
// one is set.
func (s Source) FreeBytes(buf []byte) {
	if s.Free != nil {
		s.Free(s.Context, buf)
	}
}

// ReaderAtSource wraps an io.ReaderAt in a Source. size is the total size
// of the underlying data, 0 if unknown. The caller keeps ownership of r.
func ReaderAtSource(r io.ReaderAt, size uint64) Source {
	return Source{
		Context:   r,
		TotalSize: size,
		ReadRange: func(_ any, offset uint64, dst []byte) (int, error) {
			if len(dst) == 0 {
				return 0, nil
			}
			if offset > math.MaxInt64 {
				return 0, nil
			}
			n, err := r.ReadAt(dst, int64(offset))
			// Reads at or past the end report bytes read, not failure.
			if err == io.EOF {
				err = nil
			}
			return n, err
		},
	}
}

// BytesSource wraps an in-memory buffer in a Source. The caller must keep
// b alive and unchanged for the lifetime of every Session built on it.
func BytesSource(b []byte) Source {
	return Source{
		Context:   b,
		TotalSize: uint64(len(b)),
		ReadRange: func(_ any, offset uint64, dst []byte) (int, error) {
			if offset >= uint64(len(b)) {
				return 0, nil
			}
			return copy(dst, b[offset:]), nil
		},
	}
}

// FileSource wraps an open file in a Source, using Stat for the total
// size. The caller keeps ownership of f and must not close it while a
// Session built on the Source is live.
func FileSource(f *os.File) (Source, error) {
	stat, err := f.Stat()
	if err != nil {
		return Source{}, fmt.Errorf("stat %s: %w", f.Name(), StatusIOError)
	}

	src := ReaderAtSource(f, uint64(stat.Size()))
	src.Context = f
	return src, nil
}

// SlogHook adapts a slog.Logger into a Source Log hook.
//
//	src.Log = mp3detect.SlogHook(slog.Default())
func SlogHook(logger *slog.Logger) func(ctx any, level LogLevel, msg string) {
	return func(_ any, level LogLevel, msg string) {
		logger.Log(context.Background(), level.Slog(), msg)
	}
}
