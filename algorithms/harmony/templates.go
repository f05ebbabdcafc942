package harmony

import (
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// PatternQuality selects the triad quality for one slot of a progression
// pattern. The zero value defers to the key's diatonic rule table; the
// explicit values override it (e.g. the borrowed major dominant in a minor
// key).
type PatternQuality int

const (
	QualityDiatonic PatternQuality = iota
	QualityForceMajor
	QualityForceMinor
)

// PatternChord is one slot of a progression pattern: a 1-based scale degree
// plus an optional quality override.
type PatternChord struct {
	Degree  int
	Quality PatternQuality
}

// Pattern is a named roman-numeral progression template.
type Pattern struct {
	Name   string
	Chords []PatternChord
}

// Default template sets. Quality comes from the key's diatonic rule table
// unless a slot overrides it.
var (
	majorPatterns = []Pattern{
		{Name: "I-V", Chords: []PatternChord{{Degree: 1}, {Degree: 5}}},
		{Name: "I-IV-V", Chords: []PatternChord{{Degree: 1}, {Degree: 4}, {Degree: 5}}},
		{Name: "I-V-vi-IV", Chords: []PatternChord{{Degree: 1}, {Degree: 5}, {Degree: 6}, {Degree: 4}}},
		{Name: "ii-V-I", Chords: []PatternChord{{Degree: 2}, {Degree: 5}, {Degree: 1}}},
		{Name: "I-vi-IV-V", Chords: []PatternChord{{Degree: 1}, {Degree: 6}, {Degree: 4}, {Degree: 5}}},
	}

	minorPatterns = []Pattern{
		{Name: "i-v", Chords: []PatternChord{{Degree: 1}, {Degree: 5}}},
		{Name: "i-iv-v", Chords: []PatternChord{{Degree: 1}, {Degree: 4}, {Degree: 5}}},
		{Name: "i-iv-V", Chords: []PatternChord{{Degree: 1}, {Degree: 4}, {Degree: 5, Quality: QualityForceMajor}}},
		{Name: "i-VI-III-VII", Chords: []PatternChord{{Degree: 1}, {Degree: 6}, {Degree: 3}, {Degree: 7}}},
	}
)

// DefaultPatterns returns the built-in template set for the given mode.
func DefaultPatterns(minor bool) []Pattern {
	src := majorPatterns
	if minor {
		src = minorPatterns
	}

	out := make([]Pattern, len(src))
	copy(out, src)
	return out
}

// validDegrees reports whether every slot of the pattern names a real scale
// degree. Built-in patterns always pass; caller-supplied ones may not.
func validDegrees(p Pattern) bool {
	for _, slot := range p.Chords {
		if slot.Degree < 1 || slot.Degree > 7 {
			return false
		}
	}
	return true
}

// diatonicQuality is the triad-quality rule table: the chord quality built
// on each 1-based scale degree of the mode.
func diatonicQuality(degree int, minor bool) theory.ChordType {
	if minor {
		switch degree {
		case 1, 4, 5:
			return theory.ChordMinor
		case 2:
			return theory.ChordDiminished
		default: // 3, 6, 7
			return theory.ChordMajor
		}
	}

	switch degree {
	case 1, 4, 5:
		return theory.ChordMajor
	case 7:
		return theory.ChordDiminished
	default: // 2, 3, 6
		return theory.ChordMinor
	}
}

// resolveQuality applies a pattern slot's override on top of the diatonic
// rule table.
func resolveQuality(slot PatternChord, minor bool) theory.ChordType {
	switch slot.Quality {
	case QualityForceMajor:
		return theory.ChordMajor
	case QualityForceMinor:
		return theory.ChordMinor
	default:
		return diatonicQuality(slot.Degree, minor)
	}
}
