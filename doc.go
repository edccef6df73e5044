// Package mp3detect extracts structural metadata (duration, sample rate,
// channel count, bit depth, bitrate, payload size) from compressed audio
// containers without requiring the host to implement bitstream parsing.
//
// The actual container parsing lives in a pluggable backend. The core package
// defines the boundary only: a randomly-seekable byte-source contract, a
// session lifecycle, and a closed status taxonomy. A backend registers itself
// via a blank import:
//
//	import (
//	    "github.com/simonhull/mp3detect"
//	    _ "github.com/simonhull/mp3detect/mp3" // register the MP3 backend
//	)
//
// Without a registered backend every analysis reports
// [StatusNotImplemented] as an ordinary status rather than crashing. Hosts can ship
// the boundary alone and add parsing later.
//
// # Quick Start
//
//	f, err := os.Open("song.mp3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	src, err := mp3detect.FileSource(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := mp3detect.Analyze(mp3detect.Instance(), src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info) // "44.1kHz 16-bit stereo 128kbps 3m52s"
//
// # Byte sources
//
// A [Source] describes how the backend pulls byte ranges from the host. The
// host keeps ownership of the backing resource (file handle, buffer, network
// stream); the boundary never closes it and never materializes the whole
// object in memory. [FileSource], [BytesSource], and [ReaderAtSource] cover
// the common cases; anything with random access can be wrapped by filling the
// ReadRange callback directly.
//
// # Sessions
//
// A [Session] is one parsing attempt bound to one Source. [NewSession] either
// returns a fully usable session or a status; there is no half-open state.
// Always call Close exactly once per successful NewSession; [Analyze]
// composes init, run, and close for callers that do not need the split.
//
// One Session is used by one logical thread of control at a time. The
// [Detector] handle, being stateless, is safe to share freely.
package mp3detect
