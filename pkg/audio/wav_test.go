package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a minimal 16-bit PCM mono WAV stream around the
// given samples.
func buildWAV(t *testing.T, samples []int16) []byte {
	t.Helper()

	var data bytes.Buffer
	for _, s := range samples {
		require.NoError(t, binary.Write(&data, binary.LittleEndian, s))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len())))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(16)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(1)))     // PCM
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(1)))     // mono
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(16000))) // sample rate
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(32000))) // byte rate
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(2)))     // block align
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(16)))    // bits per sample

	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(data.Len())))
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// tone generates a sine wave at the given amplitude.
func tone(n int, amplitude float64) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(amplitude * math.Sin(2*math.Pi*float64(i)/32))
	}
	return samples
}

func TestSamples(t *testing.T) {
	t.Run("round trips pcm samples", func(t *testing.T) {
		want := []int16{0, 100, -100, 32767, -32768}
		got, err := Samples(buildWAV(t, want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("rejects non wav data", func(t *testing.T) {
		_, err := Samples([]byte("definitely not audio"))
		assert.ErrorIs(t, err, ErrNotWAV)
	})

	t.Run("rejects short data", func(t *testing.T) {
		_, err := Samples([]byte("RIFF"))
		assert.ErrorIs(t, err, ErrNotWAV)
	})

	t.Run("rejects missing data chunk", func(t *testing.T) {
		wav := buildWAV(t, []int16{1, 2, 3})
		// Keep the header and fmt chunk only.
		_, err := Samples(wav[:36])
		assert.ErrorIs(t, err, ErrNoDataChunk)
	})

	t.Run("rejects non pcm encoding", func(t *testing.T) {
		wav := buildWAV(t, []int16{1, 2, 3})
		// Patch the audio format field inside the fmt chunk.
		binary.LittleEndian.PutUint16(wav[20:22], 3)
		_, err := Samples(wav)
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestRMS(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, RMS([]int16{0, 0, 0}))
	assert.InDelta(t, 1000.0, RMS([]int16{1000, -1000, 1000, -1000}), 0.001)

	loud := RMS(tone(1600, 8000))
	quiet := RMS(tone(1600, 100))
	assert.Greater(t, loud, quiet)
}
