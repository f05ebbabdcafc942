package stats

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/chordsense/algorithms/common"
)

// AutoCorrelation computes the autocorrelation function of a signal for lags
// 0..maxLag.
//
// Two computational paths are available:
//   - direct time-domain summation, cheapest for short signals
//   - FFT-based via the Wiener-Khinchin theorem (ACF = IFFT(|FFT(x)|^2)),
//     which wins once the signal grows past a few hundred samples
//
// The path is chosen automatically based on signal length.
type AutoCorrelation struct {
	maxLag       int
	fftThreshold int
}

// NewAutoCorrelation creates an autocorrelation calculator for lags up to maxLag
func NewAutoCorrelation(maxLag int) *AutoCorrelation {
	return &AutoCorrelation{
		maxLag:       maxLag,
		fftThreshold: 512,
	}
}

// MaxLag returns the configured maximum lag
func (ac *AutoCorrelation) MaxLag() int {
	return ac.maxLag
}

// Compute calculates the autocorrelation of signal for lags 0..maxLag.
// The returned slice has maxLag+1 entries; index k holds the correlation at
// lag k.
func (ac *AutoCorrelation) Compute(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal provided")
	}
	if ac.maxLag < 0 || ac.maxLag >= len(signal) {
		return nil, fmt.Errorf("max lag (%d) out of range for signal length %d", ac.maxLag, len(signal))
	}

	if len(signal) >= ac.fftThreshold {
		return ac.computeFFT(signal), nil
	}
	return ac.computeTimeDomain(signal), nil
}

// computeTimeDomain performs direct lag-by-lag summation
func (ac *AutoCorrelation) computeTimeDomain(signal []float64) []float64 {
	n := len(signal)
	result := make([]float64, ac.maxLag+1)

	for lag := 0; lag <= ac.maxLag; lag++ {
		sum := 0.0
		for i := 0; i < n-lag; i++ {
			sum += signal[i] * signal[i+lag]
		}
		result[lag] = sum
	}

	return result
}

// computeFFT computes the autocorrelation through the power spectrum.
// Zero-padding to at least twice the signal length makes the circular
// correlation equal the linear one for all lags of interest.
func (ac *AutoCorrelation) computeFFT(signal []float64) []float64 {
	n := len(signal)
	fftSize := common.NextPowerOfTwo(2 * n)

	padded := make([]float64, fftSize)
	copy(padded, signal)

	spectrum := fft.FFTReal(padded)

	power := make([]complex128, fftSize)
	for i, v := range spectrum {
		re := real(v)
		im := imag(v)
		power[i] = complex(re*re+im*im, 0)
	}

	inverse := fft.IFFT(power)

	result := make([]float64, ac.maxLag+1)
	for lag := 0; lag <= ac.maxLag; lag++ {
		result[lag] = real(inverse[lag])
	}

	return result
}
