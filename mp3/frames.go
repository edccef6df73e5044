package mp3

import (
	"encoding/binary"
	"fmt"

	"github.com/simonhull/mp3detect"
	binutil "github.com/simonhull/mp3detect/internal/binary"
)

const (
	// Frame sync must appear within this many bytes of the tag end;
	// scanning further means the source is not MPEG audio.
	maxSyncScan = 512 * 1024

	scanChunk = 4096
)

// Bitrate tables for Layer III, in kbps. Index 0 is "free format", index
// 15 is reserved; both are rejected.
var (
	bitrateV1 = [16]uint32{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateV2 = [16]uint32{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rate tables in Hz. Index 3 is reserved.
var (
	sampleRateV1 = [4]uint32{44100, 48000, 32000, 0}
	sampleRateV2 = [4]uint32{22050, 24000, 16000, 0}
)

// frameHeader is a decoded 4-byte MPEG audio frame header.
type frameHeader struct {
	mpeg1      bool
	bitrate    uint32 // bps
	sampleRate uint32 // Hz
	channels   uint16
	mono       bool
}

// samplesPerFrame returns the PCM samples one frame decodes to.
func (h frameHeader) samplesPerFrame() uint32 {
	if h.mpeg1 {
		return 1152
	}
	return 576 // MPEG2 Layer III
}

// parseFrameHeader decodes a candidate frame header. Only MPEG1/MPEG2
// Layer III with a definite bitrate and sample rate is accepted.
func parseFrameHeader(h uint32) (frameHeader, bool) {
	// Frame sync: 11 set bits.
	if h&0xFFE00000 != 0xFFE00000 {
		return frameHeader{}, false
	}

	version := (h >> 19) & 0x3 // 3 = MPEG1, 2 = MPEG2
	if version != 3 && version != 2 {
		return frameHeader{}, false
	}
	mpeg1 := version == 3

	layer := (h >> 17) & 0x3 // 1 = Layer III
	if layer != 1 {
		return frameHeader{}, false
	}

	bitrateIdx := (h >> 12) & 0xF
	if bitrateIdx == 0 || bitrateIdx == 15 {
		return frameHeader{}, false
	}

	sampleRateIdx := (h >> 10) & 0x3
	if sampleRateIdx == 3 {
		return frameHeader{}, false
	}

	var bitrate, sampleRate uint32
	if mpeg1 {
		bitrate = bitrateV1[bitrateIdx] * 1000
		sampleRate = sampleRateV1[sampleRateIdx]
	} else {
		bitrate = bitrateV2[bitrateIdx] * 1000
		sampleRate = sampleRateV2[sampleRateIdx]
	}

	mode := (h >> 6) & 0x3
	hdr := frameHeader{
		mpeg1:      mpeg1,
		bitrate:    bitrate,
		sampleRate: sampleRate,
		channels:   2,
		mono:       mode == 3,
	}
	if hdr.mono {
		hdr.channels = 1
	}
	return hdr, true
}

// findFirstFrame scans forward from start for a valid frame header and
// returns its offset. The scan buffer comes from the host's Alloc hook
// when one is set.
func (s *session) findFirstFrame(start uint64) (uint64, frameHeader, error) {
	buf := s.src.AllocBytes(scanChunk)
	defer s.src.FreeBytes(buf)

	off := start
	for off < start+maxSyncScan {
		n, err := s.sr.ReadAvailable(buf, off)
		if err != nil {
			return 0, frameHeader{}, err
		}
		if n < 4 {
			break
		}

		for i := 0; i <= n-4; i++ {
			if buf[i] != 0xFF || buf[i+1]&0xE0 != 0xE0 {
				continue
			}
			raw := binary.BigEndian.Uint32(buf[i : i+4])
			if hdr, ok := parseFrameHeader(raw); ok {
				return off + uint64(i), hdr, nil
			}
		}

		// Overlap by 3 bytes so headers straddling chunks are not missed.
		off += uint64(n - 3)
	}

	return 0, frameHeader{}, fmt.Errorf("no MPEG audio frame within %d bytes: %w",
		maxSyncScan, mp3detect.StatusInvalidFormat)
}

// run fills out with the structural description of the source.
func (s *session) run(out *mp3detect.Info) error {
	tagSize, err := s.skipID3v2()
	if err != nil {
		return err
	}

	frameOff, hdr, err := s.findFirstFrame(tagSize)
	if err != nil {
		return err
	}
	s.src.Logf(mp3detect.LogDebug, "first frame at offset %d: %d Hz, %d ch, %d bps",
		frameOff, hdr.sampleRate, hdr.channels, hdr.bitrate)

	var dataSize uint64
	if size := s.sr.Size(); size > tagSize {
		dataSize = size - tagSize
	}

	bitrate := hdr.bitrate
	durationMS, avgBitrate, isVBR := s.parseVBRHeader(frameOff, hdr)
	switch {
	case isVBR:
		if avgBitrate > 0 {
			bitrate = avgBitrate
		}
	case dataSize > 0:
		// CBR estimate: payload bits over nominal bitrate.
		durationMS = uint32(dataSize * 8 * 1000 / uint64(bitrate))
	default:
		s.src.Logf(mp3detect.LogWarn, "source size unknown and no VBR header, duration unavailable")
	}

	out.SampleRate = hdr.sampleRate
	out.Channels = hdr.channels
	out.BitsPerSample = 16 // Layer III decodes to 16-bit PCM
	out.Bitrate = bitrate
	out.DurationMS = durationMS
	out.DataSize = dataSize
	out.Valid = true
	return nil
}

// parseVBRHeader checks the first frame for a Xing/Info or VBRI header
// and derives an exact duration from the frame count when one is present.
// The second return value is the average bitrate, 0 if not computable.
func (s *session) parseVBRHeader(frameOff uint64, hdr frameHeader) (durationMS, avgBitrate uint32, ok bool) {
	// Xing/Info sits after the side information block, whose size depends
	// on MPEG version and channel mode.
	var sideInfo uint64
	switch {
	case hdr.mpeg1 && hdr.mono:
		sideInfo = 17
	case hdr.mpeg1:
		sideInfo = 32
	case hdr.mono:
		sideInfo = 9
	default:
		sideInfo = 17
	}

	buf := make([]byte, 16)
	if err := s.sr.ReadAt(buf, frameOff+4+sideInfo, "Xing header"); err == nil {
		tag := string(buf[0:4])
		if tag == "Xing" || tag == "Info" {
			flags := binary.BigEndian.Uint32(buf[4:8])
			pos := 8
			var frames, bytes uint32
			if flags&0x1 != 0 {
				frames = binary.BigEndian.Uint32(buf[pos : pos+4])
				pos += 4
			}
			if flags&0x2 != 0 {
				bytes = binary.BigEndian.Uint32(buf[pos : pos+4])
			}
			if frames > 0 {
				durationMS = framesToMillis(frames, hdr)
				if bytes > 0 && durationMS > 0 {
					avgBitrate = uint32(uint64(bytes) * 8 * 1000 / uint64(durationMS))
				}
				return durationMS, avgBitrate, true
			}
		}
	}

	// VBRI (Fraunhofer) sits at a fixed 32 bytes past the frame header.
	vbriOff := frameOff + 4 + 32
	tag := make([]byte, 4)
	if err := s.sr.ReadAt(tag, vbriOff, "VBRI header"); err == nil && string(tag) == "VBRI" {
		bytes, berr := binutil.Read[uint32](s.sr, vbriOff+10, "VBRI byte count")
		frames, ferr := binutil.Read[uint32](s.sr, vbriOff+14, "VBRI frame count")
		if berr == nil && ferr == nil && frames > 0 {
			durationMS = framesToMillis(frames, hdr)
			if bytes > 0 && durationMS > 0 {
				avgBitrate = uint32(uint64(bytes) * 8 * 1000 / uint64(durationMS))
			}
			return durationMS, avgBitrate, true
		}
	}

	return 0, 0, false
}

// framesToMillis converts a frame count to milliseconds of audio.
func framesToMillis(frames uint32, hdr frameHeader) uint32 {
	samples := uint64(frames) * uint64(hdr.samplesPerFrame())
	return uint32(samples * 1000 / uint64(hdr.sampleRate))
}
