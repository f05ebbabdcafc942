package transcode_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chordsense/transcode"
)

// writeWAV encodes 16-bit PCM test data to a temp file.
func writeWAV(t *testing.T, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

func TestReadWAVMono(t *testing.T) {
	path := writeWAV(t, 8000, 1, []int{0, 16384, -16384, 32767})

	audio, err := transcode.ReadWAV(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, audio.SampleRate)
	assert.Equal(t, 1, audio.Channels)
	require.Len(t, audio.Samples, 4)

	assert.InDelta(t, 0.0, audio.Samples[0], 1e-4)
	assert.InDelta(t, 0.5, audio.Samples[1], 1e-4)
	assert.InDelta(t, -0.5, audio.Samples[2], 1e-4)
	assert.InDelta(t, 1.0, audio.Samples[3], 1e-3)
}

func TestReadWAVStereoDownmix(t *testing.T) {
	// Interleaved L/R frames; each output sample is the channel average
	path := writeWAV(t, 44100, 2, []int{16384, 0, 0, 16384, -16384, 16384})

	audio, err := transcode.ReadWAV(path)
	require.NoError(t, err)

	assert.Equal(t, 2, audio.Channels)
	require.Len(t, audio.Samples, 3)

	assert.InDelta(t, 0.25, audio.Samples[0], 1e-4)
	assert.InDelta(t, 0.25, audio.Samples[1], 1e-4)
	assert.InDelta(t, 0.0, audio.Samples[2], 1e-4)
}

func TestReadWAVNormalizedRange(t *testing.T) {
	path := writeWAV(t, 8000, 1, []int{32767, -32768, 0})

	audio, err := transcode.ReadWAV(path)
	require.NoError(t, err)

	for _, s := range audio.Samples {
		assert.GreaterOrEqual(t, s, -1.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestReadWAVDuration(t *testing.T) {
	data := make([]int, 8000)
	path := writeWAV(t, 8000, 1, data)

	audio, err := transcode.ReadWAV(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, audio.Duration.Seconds(), 0.01)
}

func TestReadWAVMissingFile(t *testing.T) {
	_, err := transcode.ReadWAV("/nonexistent/path.wav")
	assert.Error(t, err)
}

func TestReadWAVGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := transcode.ReadWAV(path)
	assert.Error(t, err)
}
