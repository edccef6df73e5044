// Package mp3 implements the MPEG Layer III parsing backend for mp3detect.
//
// Importing the package, usually blank, registers the backend with the
// boundary:
//
//	import _ "github.com/simonhull/mp3detect/mp3"
//
// The backend reads frame headers and Xing/Info/VBRI headers only; it
// never decodes audio to PCM.
package mp3

import (
	"github.com/simonhull/mp3detect"
	binutil "github.com/simonhull/mp3detect/internal/binary"
)

// backend implements mp3detect.Backend.
type backend struct{}

// session is the backend-owned state for one parsing attempt.
type session struct {
	src mp3detect.Source
	sr  *binutil.SafeReader
}

func (backend) Init(src mp3detect.Source) (any, error) {
	return &session{
		src: src,
		sr:  binutil.NewSafeReader(src),
	}, nil
}

func (backend) Run(state any, out *mp3detect.Info) error {
	s, ok := state.(*session)
	if !ok || s == nil {
		return mp3detect.StatusInternal
	}
	return s.run(out)
}

func (backend) Close(state any) {
	// A session holds no resources beyond the Source, which the host owns.
}

func init() {
	mp3detect.Register(backend{})
}
