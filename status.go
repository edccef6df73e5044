package mp3detect

import "errors"

// Status is the closed set of result codes crossing the probing boundary.
//
// Status implements error, so boundary operations return it directly and
// callers can match with errors.Is:
//
//	info, err := mp3detect.Analyze(det, src)
//	if errors.Is(err, mp3detect.StatusNotImplemented) {
//	    // no backend linked into this binary
//	}
//
// The numeric values are stable across versions. They carry no ordering
// semantics; the ordering exists for display purposes only.
type Status uint32

const (
	StatusOK              Status = 0
	StatusInvalidPointer  Status = 1
	StatusInvalidArgument Status = 2
	StatusOutOfMemory     Status = 3
	StatusIOError         Status = 4
	StatusInvalidFormat   Status = 5
	StatusNotImplemented  Status = 6
	StatusInternal        Status = 7

	// StatusUnknown is the catch-all for codes this version does not
	// recognize, e.g. reported by a newer backend.
	StatusUnknown Status = 255
)

// String returns human-readable text for the status. It is total: every
// defined code yields non-empty text, and any other value yields a fixed
// fallback rather than failing.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInvalidPointer:
		return "invalid pointer"
	case StatusInvalidArgument:
		return "invalid argument"
	case StatusOutOfMemory:
		return "out of memory"
	case StatusIOError:
		return "I/O error"
	case StatusInvalidFormat:
		return "invalid container format"
	case StatusNotImplemented:
		return "no parsing backend linked"
	case StatusInternal:
		return "internal error"
	case StatusUnknown:
		return "unknown error"
	default:
		return "unknown error code"
	}
}

// Error implements the error interface. StatusOK is never returned as a
// non-nil error by this package; operations return nil on success.
func (s Status) Error() string {
	return s.String()
}

// AsStatus extracts the boundary status from an error returned by this
// package. A nil error maps to StatusOK; an error that neither is nor wraps
// a Status maps to StatusUnknown.
func AsStatus(err error) Status {
	if err == nil {
		return StatusOK
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusUnknown
}
