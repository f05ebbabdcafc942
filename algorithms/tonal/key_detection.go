package tonal

import (
	"github.com/RyanBlaney/chordsense/algorithms/common"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// KeyProfile holds a pair of 12-element key-finding profiles, indexed from
// the tonic (index 0) upward in semitones.
type KeyProfile struct {
	Name         string
	MajorProfile [12]float64
	MinorProfile [12]float64
}

// KrumhanslProfile is the Krumhansl-Schmuckler profile pair, empirically
// derived from listener probe-tone ratings.
//
// Reference: Krumhansl, C.L. (1990). "Cognitive Foundations of Musical Pitch"
var KrumhanslProfile = KeyProfile{
	Name:         "Krumhansl-Schmuckler",
	MajorProfile: [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
	MinorProfile: [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
}

// KeyEstimate is the detected tonal center of a melody. Confidence is a
// Pearson correlation coefficient in [-1,1], not a probability; higher is
// better.
type KeyEstimate struct {
	Tonic      theory.PitchClass `json:"tonic"`
	Minor      bool              `json:"minor"`
	Confidence float64           `json:"confidence"`
}

// UnknownKey is returned when the input carries no usable tonal evidence.
// It short-circuits chord suggestion downstream.
func UnknownKey() KeyEstimate {
	return KeyEstimate{Tonic: theory.PitchClassNone, Confidence: 0}
}

// Unknown reports whether the estimate is the no-evidence sentinel.
func (k KeyEstimate) Unknown() bool {
	return !k.Tonic.Valid()
}

// String renders the estimate as "C major", "A minor", or "Unknown".
func (k KeyEstimate) String() string {
	if k.Unknown() {
		return "Unknown"
	}
	if k.Minor {
		return k.Tonic.String() + " minor"
	}
	return k.Tonic.String() + " major"
}

// KeyDetector estimates the musical key of a pitch-class sequence by
// correlating its pitch-class histogram against major and minor key
// profiles.
type KeyDetector struct {
	profile KeyProfile
}

// NewKeyDetector creates a key detector using the Krumhansl-Schmuckler
// profiles
func NewKeyDetector() *KeyDetector {
	return NewKeyDetectorWithProfile(KrumhanslProfile)
}

// NewKeyDetectorWithProfile creates a key detector with a custom profile
// pair
func NewKeyDetectorWithProfile(profile KeyProfile) *KeyDetector {
	return &KeyDetector{profile: profile}
}

// Detect builds a normalized 12-bin pitch-class histogram from the input and
// tests all 24 tonic/mode candidates: for each candidate the histogram is
// rotated so the tonic sits at index 0 and Pearson-correlated with the
// profile for that mode. The best-correlating pair wins; ties break in
// evaluation order (tonics C..B, major before minor). Empty input, or input
// with no valid pitch classes, yields the Unknown sentinel.
func (kd *KeyDetector) Detect(classes []theory.PitchClass) KeyEstimate {
	histogram := [12]float64{}
	counted := 0
	for _, pc := range classes {
		if pc.Valid() {
			histogram[pc]++
			counted++
		}
	}
	if counted == 0 {
		return UnknownKey()
	}

	total := common.Sum(histogram[:])
	for i := range histogram {
		histogram[i] /= total
	}

	best := UnknownKey()
	bestScore := 0.0
	for tonic := 0; tonic < 12; tonic++ {
		rotated := rotateToTonic(histogram, tonic)

		for _, minor := range []bool{false, true} {
			profile := kd.profile.MajorProfile
			if minor {
				profile = kd.profile.MinorProfile
			}

			score := common.Correlation(rotated[:], profile[:])
			if best.Unknown() || score > bestScore {
				best = KeyEstimate{
					Tonic:      theory.PitchClass(tonic),
					Minor:      minor,
					Confidence: score,
				}
				bestScore = score
			}
		}
	}

	return best
}

// rotateToTonic shifts the histogram so the candidate tonic aligns to index
// 0; index i of the result holds the weight of the class i semitones above
// the tonic.
func rotateToTonic(histogram [12]float64, tonic int) [12]float64 {
	rotated := [12]float64{}
	for i := 0; i < 12; i++ {
		rotated[i] = histogram[(i+tonic)%12]
	}
	return rotated
}
