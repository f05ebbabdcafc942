package theory

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PitchClass is one of the twelve chromatic pitch classes under equal
// temperament (0=C, 1=C#, ..., 11=B).
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// PitchClassNone is the sentinel for "no pitch class" (e.g. an undetectable
// key tonic).
const PitchClassNone PitchClass = -1

// pitchClassNames uses sharp-preferred spelling, the rendering used at every
// output boundary.
var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// flatEquivalents maps flat spellings to their sharp-preferred pitch class.
var flatEquivalents = map[string]PitchClass{
	"DB": CSharp,
	"EB": DSharp,
	"FB": E,
	"GB": FSharp,
	"AB": GSharp,
	"BB": ASharp,
	"CB": B,
}

// Valid reports whether pc is one of the twelve chromatic classes.
func (pc PitchClass) Valid() bool {
	return pc >= C && pc <= B
}

// String returns the sharp-preferred name of the pitch class (e.g. "C#").
func (pc PitchClass) String() string {
	if !pc.Valid() {
		return "?"
	}
	return pitchClassNames[pc]
}

// MarshalJSON renders the pitch class as its sharp-preferred name so
// consumers see "C#" rather than an index.
func (pc PitchClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(pc.String())
}

// UnmarshalJSON accepts any recognized note spelling; "?" restores the
// invalid sentinel.
func (pc *PitchClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "?" {
		*pc = PitchClassNone
		return nil
	}
	parsed, err := ParsePitchClass(s)
	if err != nil {
		return err
	}
	*pc = parsed
	return nil
}

// Transpose returns the pitch class the given number of semitones away.
// Negative offsets transpose downward.
func (pc PitchClass) Transpose(semitones int) PitchClass {
	if !pc.Valid() {
		return PitchClassNone
	}
	return PitchClass(((int(pc)+semitones)%12 + 12) % 12)
}

// ParsePitchClass parses a note name into a pitch class. Parsing is
// enharmonic-aware: sharps and flats map to the same class ("C#" and "Db"
// both parse to CSharp). Case and surrounding whitespace are ignored, and a
// trailing octave digit is tolerated ("c#4" parses like "C#").
func ParsePitchClass(name string) (PitchClass, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.TrimRight(s, "0123456789")
	if s == "" {
		return PitchClassNone, fmt.Errorf("empty note name")
	}

	if len(s) == 1 {
		switch s {
		case "C":
			return C, nil
		case "D":
			return D, nil
		case "E":
			return E, nil
		case "F":
			return F, nil
		case "G":
			return G, nil
		case "A":
			return A, nil
		case "B":
			return B, nil
		}
		return PitchClassNone, fmt.Errorf("unrecognized note name: %q", name)
	}

	if len(s) == 2 {
		if strings.HasSuffix(s, "#") {
			base, err := ParsePitchClass(s[:1])
			if err != nil {
				return PitchClassNone, fmt.Errorf("unrecognized note name: %q", name)
			}
			return base.Transpose(1), nil
		}
		if pc, ok := flatEquivalents[s]; ok {
			return pc, nil
		}
	}

	return PitchClassNone, fmt.Errorf("unrecognized note name: %q", name)
}

// NormalizeNoteName converts any recognized spelling to the sharp-preferred
// one ("Db" -> "C#"). Unrecognized names are returned unchanged.
func NormalizeNoteName(name string) string {
	pc, err := ParsePitchClass(name)
	if err != nil {
		return name
	}
	return pc.String()
}

// NoteIndex returns the chromatic index 0-11 of a note name, or -1 when the
// name is not recognized. Enharmonic spellings map to the same index.
func NoteIndex(name string) int {
	pc, err := ParsePitchClass(name)
	if err != nil {
		return -1
	}
	return int(pc)
}

// Interval returns the directed semitone distance from a to b, in 0..11.
func Interval(a, b PitchClass) int {
	return ((int(b)-int(a))%12 + 12) % 12
}

// Distance returns the undirected semitone distance between two pitch
// classes, in 0..6.
func Distance(a, b PitchClass) int {
	d := Interval(a, b)
	if d > 6 {
		d = 12 - d
	}
	return d
}

// Note is an octave-qualified pitch, used where collaborators need concrete
// playable pitches (e.g. "C4" for synthesis).
type Note struct {
	Class  PitchClass `json:"class"`
	Octave int        `json:"octave"`
}

// String renders the note in scientific pitch notation, e.g. "C#4".
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}
