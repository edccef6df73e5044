package mp3detect

// Detector is a stateless capability token gating Session creation. It
// holds no per-call state, so any number of live handles may coexist and
// all are interchangeable. Detectors are safe for concurrent use.
type Detector struct {
	// Detectors carry no state; the struct exists only so handles have an
	// identity that nil checks can reject.
	reserved uint8
}

// singleton returned by Instance. Immutable, so no synchronization is
// needed beyond package initialization.
var detectorInstance = &Detector{}

// New returns a fresh Detector handle. It behaves identically to the one
// returned by Instance for all purposes visible to the caller.
func New() *Detector {
	return &Detector{}
}

// Instance returns the process-wide Detector singleton. The same handle is
// returned on every call; no allocation takes place.
func Instance() *Detector {
	return detectorInstance
}

// Close releases the handle. Detectors own nothing, so this is a no-op
// that is safe to call any number of times, on any handle, including the
// singleton. Instance keeps returning a usable handle afterwards. It never
// fails.
func (d *Detector) Close() error {
	return nil
}
