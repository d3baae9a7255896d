package cdda

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// CD audio constants
const (
	SampleRate    = 44100 // Hz
	Channels      = 2     // Stereo
	BitsPerSample = 16
)

const wavHeaderSize = 44

// ErrWAVFormat is returned for files that are not uncompressed PCM WAV.
var ErrWAVFormat = errors.New("not a PCM WAV file")

// WAVHeader is the format information of a PCM WAV file.
type WAVHeader struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
	DataSize      uint32 // Bytes of sample data
}

// CDDAHeader returns the header for dataSize bytes of CD audio.
func CDDAHeader(dataSize uint32) WAVHeader {
	return WAVHeader{
		Channels:      Channels,
		SampleRate:    SampleRate,
		BitsPerSample: BitsPerSample,
		DataSize:      dataSize,
	}
}

// IsCDDA reports whether the file holds 16-bit stereo audio at 44.1kHz.
func (h WAVHeader) IsCDDA() bool {
	return h.Channels == Channels && h.SampleRate == SampleRate && h.BitsPerSample == BitsPerSample
}

// Samples returns the number of per-channel samples in the data chunk.
func (h WAVHeader) Samples() uint64 {
	blockAlign := uint64(h.Channels) * uint64(h.BitsPerSample/8)
	if blockAlign == 0 {
		return 0
	}
	return uint64(h.DataSize) / blockAlign
}

// Duration returns the length of the audio. CD audio must fill whole
// sectors; other formats are converted, truncating partial sectors.
func (h WAVHeader) Duration() (Duration, error) {
	if h.IsCDDA() {
		return DurationFromCDDASamples(h.Samples())
	}
	return DurationFromSamples(h.SampleRate, h.Samples()), nil
}

// MarshalBinary encodes the canonical 44-byte header.
func (h WAVHeader) MarshalBinary() ([]byte, error) {
	header := make([]byte, wavHeaderSize)

	// RIFF header; the size excludes the first 8 bytes
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+h.DataSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	blockAlign := h.Channels * (h.BitsPerSample / 8)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // Subchunk1Size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], 1)  // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], h.Channels)
	binary.LittleEndian.PutUint32(header[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], h.SampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], h.BitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	return header, nil
}

// WriteWAV creates a WAV file from raw CD audio samples.
//
// Input: raw 16-bit stereo PCM samples at 44.1kHz (CD-DA format)
// Output: complete WAV file including header
func WriteWAV(samples []byte) []byte {
	header, _ := CDDAHeader(uint32(len(samples))).MarshalBinary()
	return append(header, samples...)
}

// ReadWAVHeader reads the format of a PCM WAV stream, walking chunks until
// it reaches the data chunk. Only the header is consumed.
func ReadWAVHeader(r io.Reader) (WAVHeader, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return WAVHeader{}, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return WAVHeader{}, ErrWAVFormat
	}

	var (
		h      WAVHeader
		gotFmt bool
		chunk  [8]byte
	)
	for {
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return WAVHeader{}, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if size < 16 || size > 1<<10 {
				return WAVHeader{}, ErrWAVFormat
			}
			body := make([]byte, size+size%2)
			if _, err := io.ReadFull(r, body); err != nil {
				return WAVHeader{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			if format != 1 && format != 0xFFFE {
				return WAVHeader{}, fmt.Errorf("%w: audio format %d", ErrWAVFormat, format)
			}
			h.Channels = binary.LittleEndian.Uint16(body[2:4])
			h.SampleRate = binary.LittleEndian.Uint32(body[4:8])
			h.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			gotFmt = true

		case "data":
			if !gotFmt {
				return WAVHeader{}, fmt.Errorf("%w: data before fmt", ErrWAVFormat)
			}
			h.DataSize = size
			return h, nil

		default:
			// Chunks are word aligned
			if _, err := io.CopyN(io.Discard, r, int64(size)+int64(size%2)); err != nil {
				return WAVHeader{}, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}
