package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Common errors
var (
	ErrNotWAV       = errors.New("data is not a RIFF/WAVE stream")
	ErrNoDataChunk  = errors.New("wav stream has no data chunk")
	ErrUnsupported  = errors.New("unsupported wav encoding")
	ErrTruncatedWAV = errors.New("wav stream is truncated")
)

// Samples extracts the 16-bit little-endian PCM samples from a WAV byte
// stream. Multi-channel audio is returned interleaved.
func Samples(data []byte) ([]int16, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, ErrNotWAV
	}

	var bitsPerSample uint16 = 16
	offset := 12
	for offset+8 <= len(data) {
		chunkID := data[offset : offset+4]
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch {
		case bytes.Equal(chunkID, []byte("fmt ")):
			if body+16 > len(data) {
				return nil, ErrTruncatedWAV
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != 1 || bitsPerSample != 16 {
				return nil, fmt.Errorf("%w: format=%d bits=%d", ErrUnsupported, format, bitsPerSample)
			}
		case bytes.Equal(chunkID, []byte("data")):
			end := body + chunkSize
			if end > len(data) {
				end = len(data)
			}
			raw := data[body:end]
			samples := make([]int16, len(raw)/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
			}
			return samples, nil
		}

		// Chunks are word-aligned
		if chunkSize%2 == 1 {
			chunkSize++
		}
		offset = body + chunkSize
	}

	return nil, ErrNoDataChunk
}

// RMS computes the root-mean-square amplitude of the samples.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
