package mp3

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/simonhull/mp3detect"
)

// frameHeaderBytes builds a 4-byte MPEG frame header.
// version: 3 = MPEG1, 2 = MPEG2. mode: 0 = stereo, 3 = mono.
func frameHeaderBytes(version, bitrateIdx, sampleRateIdx, mode byte) []byte {
	b0 := byte(0xFF)
	b1 := 0xE0 | version<<3 | 1<<1 | 1 // sync + version + Layer III + no CRC
	b2 := bitrateIdx<<4 | sampleRateIdx<<2
	b3 := mode << 6
	return []byte{b0, b1, b2, b3}
}

// cbrFixture returns a CBR stream: one frame header followed by zero
// padding up to totalSize bytes.
func cbrFixture(header []byte, totalSize int) []byte {
	data := make([]byte, totalSize)
	copy(data, header)
	return data
}

func analyze(t *testing.T, data []byte) (mp3detect.Info, error) {
	t.Helper()
	return mp3detect.Analyze(mp3detect.Instance(), mp3detect.BytesSource(data))
}

func TestRun_CBRMono(t *testing.T) {
	// MPEG1, 128 kbps (index 9), 44100 Hz (index 0), mono.
	// 80000 bytes at 128 kbps = exactly 5 seconds.
	data := cbrFixture(frameHeaderBytes(3, 9, 0, 3), 80000)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !info.Valid {
		t.Fatal("record not valid")
	}
	if info.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Channels = %d, want 1", info.Channels)
	}
	if info.BitsPerSample != 16 {
		t.Errorf("BitsPerSample = %d, want 16", info.BitsPerSample)
	}
	if info.Bitrate != 128000 {
		t.Errorf("Bitrate = %d, want 128000", info.Bitrate)
	}
	if info.DurationMS != 5000 {
		t.Errorf("DurationMS = %d, want 5000", info.DurationMS)
	}
	if info.DataSize != 80000 {
		t.Errorf("DataSize = %d, want 80000", info.DataSize)
	}
}

func TestRun_CBRMPEG2(t *testing.T) {
	// MPEG2, 32 kbps (index 4), 22050 Hz (index 0), mono.
	// 8000 bytes at 32 kbps = 2 seconds.
	data := cbrFixture(frameHeaderBytes(2, 4, 0, 3), 8000)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if info.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", info.SampleRate)
	}
	if info.Bitrate != 32000 {
		t.Errorf("Bitrate = %d, want 32000", info.Bitrate)
	}
	if info.DurationMS != 2000 {
		t.Errorf("DurationMS = %d, want 2000", info.DurationMS)
	}
}

func TestRun_SkipsID3v2(t *testing.T) {
	// 10-byte ID3v2.4 header declaring a 100-byte tag body, then the
	// audio stream. Payload size must exclude the tag.
	tag := append([]byte("ID3"), 4, 0, 0, 0, 0, 0, 100)
	data := append(tag, make([]byte, 100)...)
	data = append(data, cbrFixture(frameHeaderBytes(3, 9, 0, 3), 80000)...)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if info.DataSize != 80000 {
		t.Errorf("DataSize = %d, want 80000 (tag not excluded?)", info.DataSize)
	}
	if info.DurationMS != 5000 {
		t.Errorf("DurationMS = %d, want 5000", info.DurationMS)
	}
}

func TestRun_XingVBR(t *testing.T) {
	// MPEG1 stereo: Xing sits 36 bytes past the frame start.
	const frames = 191
	const streamBytes = 80000

	data := make([]byte, 1000)
	copy(data, frameHeaderBytes(3, 9, 0, 0))
	copy(data[36:], "Xing")
	binary.BigEndian.PutUint32(data[40:], 0x3) // frames + bytes present
	binary.BigEndian.PutUint32(data[44:], frames)
	binary.BigEndian.PutUint32(data[48:], streamBytes)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	wantMS := uint32(frames * 1152 * 1000 / 44100)
	if info.DurationMS != wantMS {
		t.Errorf("DurationMS = %d, want %d (from Xing frame count)", info.DurationMS, wantMS)
	}
	wantBitrate := uint32(streamBytes * 8 * 1000 / uint64(wantMS))
	if info.Bitrate != wantBitrate {
		t.Errorf("Bitrate = %d, want %d (VBR average)", info.Bitrate, wantBitrate)
	}
	if info.Channels != 2 {
		t.Errorf("Channels = %d, want 2", info.Channels)
	}
}

func TestRun_XingMonoOffset(t *testing.T) {
	// MPEG1 mono: side info is 17 bytes, so Xing sits at offset 21.
	const frames = 100

	data := make([]byte, 1000)
	copy(data, frameHeaderBytes(3, 9, 0, 3))
	copy(data[21:], "Info")
	binary.BigEndian.PutUint32(data[25:], 0x1) // frames only
	binary.BigEndian.PutUint32(data[29:], frames)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	wantMS := uint32(frames * 1152 * 1000 / 44100)
	if info.DurationMS != wantMS {
		t.Errorf("DurationMS = %d, want %d", info.DurationMS, wantMS)
	}
	// No bytes field: nominal header bitrate is kept.
	if info.Bitrate != 128000 {
		t.Errorf("Bitrate = %d, want 128000", info.Bitrate)
	}
}

func TestRun_VBRI(t *testing.T) {
	const frames = 100
	const streamBytes = 50000

	data := make([]byte, 1000)
	copy(data, frameHeaderBytes(3, 9, 0, 0))
	copy(data[36:], "VBRI")
	binary.BigEndian.PutUint32(data[46:], streamBytes)
	binary.BigEndian.PutUint32(data[50:], frames)

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	wantMS := uint32(frames * 1152 * 1000 / 44100)
	if info.DurationMS != wantMS {
		t.Errorf("DurationMS = %d, want %d (from VBRI frame count)", info.DurationMS, wantMS)
	}
	wantBitrate := uint32(streamBytes * 8 * 1000 / uint64(wantMS))
	if info.Bitrate != wantBitrate {
		t.Errorf("Bitrate = %d, want %d", info.Bitrate, wantBitrate)
	}
}

func TestRun_FrameAfterGarbagePrefix(t *testing.T) {
	data := make([]byte, 81000)
	copy(data[1000:], frameHeaderBytes(3, 9, 0, 3))

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if info.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", info.SampleRate)
	}
}

func TestRun_FrameStraddlingScanChunks(t *testing.T) {
	// Header begins 2 bytes before a chunk boundary, so only the overlap
	// between scan chunks can catch it.
	data := make([]byte, 81000)
	copy(data[scanChunk-2:], frameHeaderBytes(3, 9, 0, 3))

	info, err := analyze(t, data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !info.Valid {
		t.Error("record not valid")
	}
}

func TestRun_EmptySource(t *testing.T) {
	info, err := analyze(t, nil)
	if !errors.Is(err, mp3detect.StatusInvalidFormat) {
		t.Fatalf("expected StatusInvalidFormat, got %v", err)
	}
	if info != (mp3detect.Info{}) {
		t.Errorf("record not zeroed on failure: %+v", info)
	}
}

func TestRun_GarbageSource(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = 0xAA
	}

	_, err := analyze(t, data)
	if !errors.Is(err, mp3detect.StatusInvalidFormat) {
		t.Fatalf("expected StatusInvalidFormat, got %v", err)
	}
}

func TestRun_ReadFailure(t *testing.T) {
	src := mp3detect.Source{
		TotalSize: 1000,
		ReadRange: func(_ any, offset uint64, dst []byte) (int, error) {
			return 0, errors.New("disk unplugged")
		},
	}

	info, err := mp3detect.Analyze(mp3detect.Instance(), src)
	if !errors.Is(err, mp3detect.StatusIOError) {
		t.Fatalf("expected StatusIOError, got %v", err)
	}
	if info != (mp3detect.Info{}) {
		t.Errorf("record not zeroed on failure: %+v", info)
	}
}

func TestRun_UnknownSizeCBR(t *testing.T) {
	data := cbrFixture(frameHeaderBytes(3, 9, 0, 3), 80000)
	src := mp3detect.BytesSource(data)
	src.TotalSize = 0 // declared unknown

	info, err := mp3detect.Analyze(mp3detect.Instance(), src)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Frame header fields survive, but no size means no CBR duration.
	if !info.Valid || info.SampleRate != 44100 {
		t.Errorf("unexpected record: %+v", info)
	}
	if info.DurationMS != 0 || info.DataSize != 0 {
		t.Errorf("duration/size fabricated without a source size: %+v", info)
	}
}

func TestParseFrameHeader_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
	}{
		{"free-format bitrate", frameHeaderBytes(3, 0, 0, 3)},
		{"reserved bitrate", frameHeaderBytes(3, 15, 0, 3)},
		{"reserved sample rate", frameHeaderBytes(3, 9, 3, 3)},
		{"reserved version", frameHeaderBytes(1, 9, 0, 3)},
	}
	for _, tt := range tests {
		raw := binary.BigEndian.Uint32(tt.header)
		if _, ok := parseFrameHeader(raw); ok {
			t.Errorf("%s: header %08x accepted", tt.name, raw)
		}
	}
}
