// Package transcode decodes audio files into the normalized mono float
// stream the analysis pipeline consumes.
package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// AudioData holds decoded audio, downmixed to mono and normalized to
// [-1.0, 1.0].
type AudioData struct {
	Samples    []float64
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// ReadWAV decodes a PCM WAV file. Multi-channel input is averaged into a
// single mono channel. Supported bit depths are 16, 24 and 32.
func ReadWAV(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening WAV file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	var divisor float64
	switch decoder.BitDepth {
	case 16:
		divisor = 32768.0
	case 24:
		divisor = 8388608.0
	case 32:
		divisor = 2147483648.0
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d", decoder.BitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	channels := int(decoder.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	sampleRate := int(decoder.SampleRate)
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c]) / divisor
		}
		samples[i] = sum / float64(channels)
	}

	duration := time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))

	return &AudioData{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   duration,
	}, nil
}
