package windowing

// Window is the common interface satisfied by all window functions.
type Window interface {
	// Apply applies the window to a signal (creates new array). Returns nil
	// when the signal length does not match the window size.
	Apply(signal []float64) []float64

	// Size returns the window size
	Size() int

	// Type returns the window type name
	Type() string
}

// New creates a window of the named type. Unrecognized names fall back to
// Hamming, the default for autocorrelation pitch analysis.
func New(windowType string, size int) Window {
	switch windowType {
	case "hann":
		return NewHann(size, true)
	case "hamming":
		return NewHamming(size, true)
	default:
		return NewHamming(size, true)
	}
}
