package mp3detect

// Session is one parsing attempt bound to a single Source. It owns the
// backend's opaque state for its lifetime and releases it exactly once,
// at Close.
//
// A Session is used by one logical thread of control at a time; see the
// package documentation for the concurrency contract.
type Session struct {
	src    Source
	state  any
	closed bool
}

// NewSession starts a parsing attempt over src.
//
// detector must be a handle obtained from New or Instance; src must carry
// a ReadRange callback. If the backend fails to initialize, no Session is
// returned and nothing is leaked: the caller only ever sees a fully open
// Session or an error.
func NewSession(detector *Detector, src Source) (*Session, error) {
	if detector == nil {
		return nil, StatusInvalidPointer
	}
	if src.ReadRange == nil {
		return nil, StatusInvalidArgument
	}
	if backend == nil {
		return nil, StatusNotImplemented
	}

	state, err := backend.Init(src)
	if err != nil {
		return nil, err
	}

	return &Session{src: src, state: state}, nil
}

// Run executes the analysis and returns the metadata record.
//
// The record is fully zeroed before the backend is invoked, so any failure
// yields the documented all-zero, Valid=false shape, never partially
// populated fields. Run does not consume the Session; whether repeated
// runs on one Session succeed is a backend property, not a boundary
// guarantee. A failed Run leaves the Session valid for Close.
func (s *Session) Run() (Info, error) {
	var info Info
	if s == nil || s.closed {
		return info, StatusInvalidPointer
	}
	if backend == nil {
		return info, StatusNotImplemented
	}

	if err := backend.Run(s.state, &info); err != nil {
		// Discard anything a failing backend may have written.
		return Info{}, err
	}
	return info, nil
}

// Close ends the Session and releases the backend state. Calling Close on
// a nil Session is a no-op, as is calling it a second time; the backend's
// teardown runs exactly once. Always returns nil.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	if backend != nil {
		backend.Close(s.state)
	}
	s.state = nil
	return nil
}
