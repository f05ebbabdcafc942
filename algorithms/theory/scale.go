package theory

// ScaleType is an immutable scale shape: a name plus the seven semitone
// offsets of its degrees from the root.
type ScaleType struct {
	Name      string
	Intervals [7]int
}

var (
	// ScaleMajor is the major (Ionian) scale
	ScaleMajor = ScaleType{Name: "major", Intervals: [7]int{0, 2, 4, 5, 7, 9, 11}}

	// ScaleNaturalMinor is the natural minor (Aeolian) scale
	ScaleNaturalMinor = ScaleType{Name: "natural minor", Intervals: [7]int{0, 2, 3, 5, 7, 8, 10}}
)

// Scale is a concrete seven-note scale: a root applied to a scale type.
type Scale struct {
	Root    PitchClass
	Type    ScaleType
	Degrees [7]PitchClass
}

// BuildScale constructs the seven pitch classes of a scale from its root.
func BuildScale(root PitchClass, scaleType ScaleType) Scale {
	s := Scale{Root: root, Type: scaleType}
	for i, offset := range scaleType.Intervals {
		s.Degrees[i] = root.Transpose(offset)
	}
	return s
}

// Contains reports whether the pitch class belongs to the scale.
func (s Scale) Contains(pc PitchClass) bool {
	return s.DegreeOf(pc) != -1
}

// DegreeOf returns the 1-based scale degree of a pitch class, or -1 when the
// class is not in the scale.
func (s Scale) DegreeOf(pc PitchClass) int {
	for i, d := range s.Degrees {
		if d == pc {
			return i + 1
		}
	}
	return -1
}

// ScaleDegree returns the 1-based degree of a note within a scale, or -1 if
// absent.
func ScaleDegree(note PitchClass, scale Scale) int {
	return scale.DegreeOf(note)
}
