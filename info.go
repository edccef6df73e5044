package mp3detect

import (
	"fmt"
	"time"
)

// Info is the fixed-shape structural description of a parsed audio
// container, produced by a backend and passed through the boundary
// unmodified.
//
// When Valid is false every numeric field is zero; callers must ignore the
// other fields regardless of the status that accompanied the record.
type Info struct {
	// SampleRate in Hz.
	SampleRate uint32

	// Channels (1 = mono, 2 = stereo).
	Channels uint16

	// BitsPerSample of the decoded stream (8, 16, 24, 32).
	BitsPerSample uint16

	// Bitrate in bits per second. For variable-bitrate sources this is the
	// average over the whole stream when the backend can compute it.
	Bitrate uint32

	// DurationMS is the total play time in milliseconds.
	DurationMS uint32

	// DataSize is the size of the audio payload in bytes, excluding
	// container metadata. 0 when the backend could not determine it.
	DataSize uint64

	// Valid reports whether the record carries real data.
	Valid bool
}

// Duration returns the play time as a time.Duration.
func (i Info) Duration() time.Duration {
	return time.Duration(i.DurationMS) * time.Millisecond
}

// String returns a human-readable summary.
// Example output: "44.1kHz 16-bit stereo 128kbps 5s".
func (i Info) String() string {
	if !i.Valid {
		return "invalid"
	}

	s := fmt.Sprintf("%.1fkHz", float64(i.SampleRate)/1000)

	if i.BitsPerSample > 0 {
		s += fmt.Sprintf(" %d-bit", i.BitsPerSample)
	}

	if desc := channelDescription(i.Channels); desc != "" {
		s += " " + desc
	}

	if i.Bitrate > 0 {
		s += fmt.Sprintf(" %dkbps", i.Bitrate/1000)
	}

	if i.DurationMS > 0 {
		s += " " + i.Duration().Round(time.Second).String()
	}

	return s
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels uint16) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
