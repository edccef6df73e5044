package mp3detect

// Backend is the capability interface a container parsing module
// implements to plug into the boundary.
//
// The state value returned by Init is opaque to the boundary: it is stored
// in the Session, handed back to Run and Close, and never inspected or
// copied. Exactly one Session owns it, and Close is called on it exactly
// once.
type Backend interface {
	// Init starts one parsing attempt over src. The Source is passed
	// through unchanged. On error no state must be retained.
	Init(src Source) (state any, err error)

	// Run performs the analysis and fills out. The boundary zeroes out
	// before every call, so a failing Run may leave it untouched.
	Run(state any, out *Info) error

	// Close releases the backend state. Called exactly once per
	// successful Init, including on paths where Run was never called.
	Close(state any)
}

// backend is the registered parsing module, nil until one links itself in.
// Registration happens from package init functions, before first use, so
// reads need no synchronization.
var backend Backend

// Register installs b as the process-wide parsing backend. It is intended
// to be called once, from the init function of a backend package selected
// by the host's imports:
//
//	import _ "github.com/simonhull/mp3detect/mp3"
//
// Without a registered backend, session creation and analysis report
// StatusNotImplemented without ever touching the Source.
func Register(b Backend) {
	backend = b
}

// Registered reports whether a parsing backend is linked into this binary.
func Registered() bool {
	return backend != nil
}
