package mp3

import "github.com/simonhull/mp3detect"

// skipID3v2 returns the number of bytes occupied by a leading ID3v2 tag,
// 0 when the source does not start with one. Only the header is examined;
// frame contents are irrelevant to structural analysis.
func (s *session) skipID3v2() (uint64, error) {
	buf := make([]byte, 10)
	n, err := s.sr.ReadAvailable(buf, 0)
	if err != nil {
		return 0, err
	}
	if n < 10 || string(buf[0:3]) != "ID3" {
		return 0, nil
	}

	size := uint64(decodeSynchsafe(buf[6:10]))
	tagSize := 10 + size

	// ID3v2.4 footer flag adds a 10-byte trailer.
	if buf[5]&0x10 != 0 {
		tagSize += 10
	}

	s.src.Logf(mp3detect.LogDebug, "ID3v2.%d tag, %d bytes", buf[3], tagSize)
	return tagSize, nil
}

// decodeSynchsafe decodes a 4-byte synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
