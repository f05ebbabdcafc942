package pitch

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/chordsense/algorithms/common"
	"github.com/RyanBlaney/chordsense/algorithms/stats"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
	"github.com/RyanBlaney/chordsense/algorithms/windowing"
)

// Malformed-parameter errors. These indicate programmer errors, not bad
// audio; degraded input surfaces as an empty result instead.
var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidFreqRange  = errors.New("invalid frequency range")
)

// PitchPoint is a single timestamped pitch estimate. Points are produced in
// strictly increasing time order and never mutated after creation.
type PitchPoint struct {
	Time      float64     `json:"time"`      // Window start time in seconds
	Frequency float64     `json:"frequency"` // Detected frequency in Hz
	Note      theory.Note `json:"note"`      // Nearest equal-tempered note
	Cents     int         `json:"cents"`     // Deviation from that note in cents
}

// Params contains parameters for autocorrelation pitch detection
type Params struct {
	SampleRate int `json:"sample_rate"`
	WindowSize int `json:"window_size"` // Samples per analysis window

	// Frequency range constraints
	MinFreq float64 `json:"min_freq"` // Minimum frequency (Hz)
	MaxFreq float64 `json:"max_freq"` // Maximum frequency (Hz)

	// Quality thresholds
	MinVolume     float64 `json:"min_volume"`     // RMS floor below which a window is silent
	MinConfidence float64 `json:"min_confidence"` // Periodicity-strength floor (0-1)

	// Temporal smoothing factor (0-1) applied across consecutive detected
	// frequencies; 0 disables smoothing entirely
	Smoothing float64 `json:"smoothing"`

	WindowFunction string `json:"window_function"` // Window function type
}

// DefaultParams returns detector parameters tuned for short monophonic
// recordings (voice, whistling, single instrument lines).
func DefaultParams(sampleRate int) Params {
	return Params{
		SampleRate:     sampleRate,
		WindowSize:     2048,
		MinFreq:        50.0,
		MaxFreq:        1000.0,
		MinVolume:      0.01,
		MinConfidence:  0.8,
		Smoothing:      0.25,
		WindowFunction: "hamming",
	}
}

// Detector converts a buffer of normalized audio samples into a sequence of
// timestamped pitch estimates using windowed autocorrelation: Hamming
// window, ACF peak picking over the configured frequency range, parabolic
// sub-sample refinement, and exponential smoothing across windows.
type Detector struct {
	params   Params
	window   windowing.Window
	autocorr *stats.AutoCorrelation
	maxLag   int
	minLag   int
}

// NewDetector creates a pitch detector with default parameters
func NewDetector(sampleRate int) (*Detector, error) {
	return NewDetectorWithParams(DefaultParams(sampleRate))
}

// NewDetectorWithParams creates a pitch detector with custom parameters.
// Malformed parameters (non-positive sample rate, bad window size, inverted
// frequency range) fail fast.
func NewDetectorWithParams(params Params) (*Detector, error) {
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSampleRate, params.SampleRate)
	}
	if params.WindowSize == 0 {
		params.WindowSize = 2048
	}
	if params.WindowSize < 2 {
		return nil, fmt.Errorf("window size must be at least 2, got %d", params.WindowSize)
	}
	if params.MinFreq <= 0 || params.MaxFreq <= params.MinFreq {
		return nil, fmt.Errorf("%w [%.1f, %.1f]", ErrInvalidFreqRange, params.MinFreq, params.MaxFreq)
	}
	if params.Smoothing < 0 || params.Smoothing > 1 {
		return nil, fmt.Errorf("smoothing factor must be in [0,1], got %.2f", params.Smoothing)
	}

	minLag := int(float64(params.SampleRate) / params.MaxFreq)
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(float64(params.SampleRate) / params.MinFreq)
	if maxLag > params.WindowSize-1 {
		maxLag = params.WindowSize - 1
	}
	if minLag >= maxLag {
		return nil, fmt.Errorf("window size %d too small for frequency range [%.1f, %.1f] at %d Hz",
			params.WindowSize, params.MinFreq, params.MaxFreq, params.SampleRate)
	}

	return &Detector{
		params:   params,
		window:   windowing.New(params.WindowFunction, params.WindowSize),
		autocorr: stats.NewAutoCorrelation(maxLag),
		minLag:   minLag,
		maxLag:   maxLag,
	}, nil
}

// Params returns the detector parameters
func (d *Detector) Params() Params {
	return d.params
}

// Analyze slides an analysis window across the sample buffer with 50% hop
// and emits one pitch point per voiced window. Silent windows, weakly
// periodic windows, and windows outside the frequency range are skipped
// without error; an empty result is a valid outcome. The input buffer is
// never mutated.
func (d *Detector) Analyze(ctx context.Context, samples []float64) ([]PitchPoint, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	hop := d.params.WindowSize / 2
	points := make([]PitchPoint, 0, len(samples)/hop+1)
	lastFreq := 0.0

	for pos := 0; pos+d.params.WindowSize <= len(samples); pos += hop {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame := samples[pos : pos+d.params.WindowSize]

		if common.RMS(frame) < d.params.MinVolume {
			continue
		}

		windowed := d.window.Apply(frame)

		acf, err := d.autocorr.Compute(windowed)
		if err != nil {
			return nil, fmt.Errorf("autocorrelation failed at sample %d: %w", pos, err)
		}
		if acf[0] <= 0 {
			continue
		}

		peak := d.minLag
		for lag := d.minLag; lag <= d.maxLag; lag++ {
			if acf[lag] > acf[peak] {
				peak = lag
			}
		}

		confidence := acf[peak] / acf[0]
		if confidence < d.params.MinConfidence {
			continue
		}

		period := common.ParabolicPeak(acf, peak)
		if period <= 0 {
			continue
		}
		freq := float64(d.params.SampleRate) / period
		if freq <= 0 {
			continue
		}

		if lastFreq > 0 && d.params.Smoothing > 0 {
			freq = d.params.Smoothing*lastFreq + (1-d.params.Smoothing)*freq
		}
		lastFreq = freq

		note, cents := NoteFromFrequency(freq)
		points = append(points, PitchPoint{
			Time:      float64(pos) / float64(d.params.SampleRate),
			Frequency: freq,
			Note:      note,
			Cents:     cents,
		})
	}

	return points, nil
}

// NoteFromFrequency converts a frequency to the nearest note under 12-tone
// equal temperament referenced to A4 = 440 Hz, along with the cents
// deviation from that note (-50..+50).
func NoteFromFrequency(frequency float64) (theory.Note, int) {
	// Semitone distance from A4
	semitones := 12 * math.Log2(frequency/440.0)
	rounded := math.Round(semitones)

	cents := int(math.Round(100 * (semitones - rounded)))

	// A4 is nine semitones above C4
	fromC4 := rounded + 9
	classIdx := int(math.Mod(fromC4, 12))
	if classIdx < 0 {
		classIdx += 12
	}
	octave := 4 + int(math.Floor(fromC4/12))

	return theory.Note{Class: theory.PitchClass(classIdx), Octave: octave}, cents
}
