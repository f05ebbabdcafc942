package theory

// ChordQuality tags the harmonic quality of a chord shape.
type ChordQuality int

const (
	QualityMajor ChordQuality = iota
	QualityMinor
	QualityDiminished
)

// ChordType is an immutable chord shape: quality, symbol suffix, and the
// semitone offsets of its tones from the root.
type ChordType struct {
	Name      string
	Quality   ChordQuality
	Suffix    string
	Intervals []int
}

var (
	// ChordMajor is a major triad (root, major third, perfect fifth)
	ChordMajor = ChordType{Name: "major", Quality: QualityMajor, Suffix: "", Intervals: []int{0, 4, 7}}

	// ChordMinor is a minor triad (root, minor third, perfect fifth)
	ChordMinor = ChordType{Name: "minor", Quality: QualityMinor, Suffix: "m", Intervals: []int{0, 3, 7}}

	// ChordDiminished is a diminished triad (root, minor third, tritone)
	ChordDiminished = ChordType{Name: "diminished", Quality: QualityDiminished, Suffix: "dim", Intervals: []int{0, 3, 6}}
)

// BuildChord constructs the pitch classes of a chord from its root.
func BuildChord(root PitchClass, chordType ChordType) []PitchClass {
	notes := make([]PitchClass, len(chordType.Intervals))
	for i, offset := range chordType.Intervals {
		notes[i] = root.Transpose(offset)
	}
	return notes
}

// ChordSymbol renders the conventional symbol for a chord ("C", "Am",
// "Bdim").
func ChordSymbol(root PitchClass, chordType ChordType) string {
	return root.String() + chordType.Suffix
}

// ChordVoicing places a chord's tones in ascending order starting at the
// given octave, for handing to a playback collaborator. Tones that would
// fold back below the previous one are bumped up an octave.
func ChordVoicing(root PitchClass, chordType ChordType, octave int) []Note {
	notes := BuildChord(root, chordType)
	voicing := make([]Note, len(notes))

	oct := octave
	prev := -1
	for i, pc := range notes {
		semis := int(pc)
		if semis <= prev {
			oct++
		}
		voicing[i] = Note{Class: pc, Octave: oct}
		prev = semis
	}

	return voicing
}
