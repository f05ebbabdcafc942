package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chordsense/algorithms/melody"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// note builds a melody note with millisecond timing.
func note(class theory.PitchClass, startMs, durationMs int) melody.DiscreteNote {
	return melody.DiscreteNote{Class: class, StartMs: startMs, DurationMs: durationMs}
}

func TestSuggestEmptyMelody(t *testing.T) {
	engine := NewEngine()
	assert.Nil(t, engine.Suggest(nil, theory.C, false))
	assert.Nil(t, engine.Suggest([]melody.DiscreteNote{}, theory.C, false))
}

func TestSuggestUnknownTonic(t *testing.T) {
	engine := NewEngine()
	notes := []melody.DiscreteNote{note(theory.C, 0, 300)}
	assert.Nil(t, engine.Suggest(notes, theory.PitchClassNone, false))
}

func TestSuggestArpeggioStartsOnTonic(t *testing.T) {
	engine := NewEngine()

	// C major triad arpeggio; the best candidate should harmonize the
	// opening with the tonic chord
	notes := []melody.DiscreteNote{
		note(theory.C, 0, 300),
		note(theory.E, 300, 300),
		note(theory.G, 600, 300),
		note(theory.C, 900, 300),
	}

	suggestions := engine.Suggest(notes, theory.C, false)
	require.NotEmpty(t, suggestions)

	best := suggestions[0]
	require.NotEmpty(t, best.Chords)
	assert.Equal(t, "C", best.Chords[0].Symbol)
	assert.Equal(t, theory.C, best.Key)
}

func TestSuggestSortedByScore(t *testing.T) {
	engine := NewEngine()

	notes := []melody.DiscreteNote{
		note(theory.C, 0, 600), note(theory.D, 700, 300), note(theory.E, 1000, 600),
		note(theory.F, 1700, 300), note(theory.G, 2000, 600), note(theory.A, 2700, 300),
		note(theory.G, 3000, 600), note(theory.C, 3700, 400),
	}

	suggestions := engine.Suggest(notes, theory.C, false)
	require.NotEmpty(t, suggestions)

	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	engine := NewEngine()

	notes := []melody.DiscreteNote{
		note(theory.A, 0, 600), note(theory.C, 700, 300),
		note(theory.E, 1000, 600), note(theory.A, 1700, 400),
	}

	first := engine.Suggest(notes, theory.A, true)
	second := engine.Suggest(notes, theory.A, true)
	assert.Equal(t, first, second)
}

func TestSuggestMinorBorrowedDominant(t *testing.T) {
	engine := NewEngine()

	// Enough phrase boundaries for the three-chord minor templates
	notes := []melody.DiscreteNote{
		note(theory.A, 0, 600), note(theory.B, 600, 300),
		note(theory.D, 1000, 600), note(theory.E, 1700, 300),
		note(theory.E, 2100, 600), note(theory.A, 2800, 400),
	}

	suggestions := engine.Suggest(notes, theory.A, true)
	require.NotEmpty(t, suggestions)

	// The i-iv-V template must render the dominant as a major triad
	for _, s := range suggestions {
		if s.Name != "i-iv-V" {
			continue
		}
		for _, c := range s.Chords {
			if c.Root == theory.E {
				assert.Equal(t, "E", c.Symbol)
			}
		}
		return
	}
	t.Fatal("i-iv-V candidate missing")
}

func TestSuggestCustomPattern(t *testing.T) {
	params := DefaultEngineParams()
	params.CustomPatterns = []Pattern{
		{Name: "I-IV", Chords: []PatternChord{{Degree: 1}, {Degree: 4}}},
	}
	engine := NewEngineWithParams(params)

	notes := []melody.DiscreteNote{
		note(theory.C, 0, 600), note(theory.F, 700, 300),
		note(theory.A, 1000, 600), note(theory.C, 1700, 400),
	}

	suggestions := engine.Suggest(notes, theory.C, false)
	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "I-IV")
}

func TestSuggestSkipsCustomPatternWithBadDegree(t *testing.T) {
	params := DefaultEngineParams()
	params.CustomPatterns = []Pattern{
		{Name: "broken", Chords: []PatternChord{{Degree: 0}, {Degree: 8}}},
	}
	engine := NewEngineWithParams(params)

	notes := []melody.DiscreteNote{
		note(theory.C, 0, 300),
		note(theory.E, 300, 300),
		note(theory.G, 600, 300),
		note(theory.C, 900, 300),
	}

	var suggestions []Progression
	require.NotPanics(t, func() {
		suggestions = engine.Suggest(notes, theory.C, false)
	})
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.NotEqual(t, "broken", s.Name)
	}
}

func TestSegmentsPartitionMelody(t *testing.T) {
	notes := []melody.DiscreteNote{
		note(theory.C, 0, 600), note(theory.E, 700, 300), note(theory.G, 1000, 600),
		note(theory.A, 1700, 300), note(theory.F, 2000, 200), note(theory.D, 2300, 600),
		note(theory.C, 3000, 400),
	}

	segments := segmentMelody(notes, DefaultSegmenterParams())
	require.NotEmpty(t, segments)

	var flattened []melody.DiscreteNote
	for _, seg := range segments {
		require.NotEmpty(t, seg.Notes)
		flattened = append(flattened, seg.Notes...)
	}
	assert.Equal(t, notes, flattened, "segments must cover every note in order")
}

func TestSegmentEvenSplitFallback(t *testing.T) {
	// A uniform melody with no natural boundaries is force-split
	var notes []melody.DiscreteNote
	for i := 0; i < 7; i++ {
		notes = append(notes, note(theory.C, i*100, 100))
	}

	segments := segmentMelody(notes, DefaultSegmenterParams())
	require.Len(t, segments, 2)
	assert.Len(t, segments[0].Notes, 4)
	assert.Len(t, segments[1].Notes, 3)
}

func TestSegmentEmptyAndTiny(t *testing.T) {
	assert.Nil(t, segmentMelody(nil, DefaultSegmenterParams()))

	single := []melody.DiscreteNote{note(theory.C, 0, 200)}
	segments := segmentMelody(single, DefaultSegmenterParams())
	require.Len(t, segments, 1)
	assert.Equal(t, single, segments[0].Notes)
}

func TestChordFitnessPrefersChordTones(t *testing.T) {
	scale := theory.BuildScale(theory.C, theory.ScaleMajor)
	segment := Segment{Notes: []melody.DiscreteNote{
		note(theory.C, 0, 300),
		note(theory.E, 300, 300),
		note(theory.G, 600, 300),
	}}

	cMajor := theory.BuildChord(theory.C, theory.ChordMajor)
	dMinor := theory.BuildChord(theory.D, theory.ChordMinor)

	assert.Greater(t,
		chordFitness(segment, cMajor, scale),
		chordFitness(segment, dMinor, scale),
		"a chord containing every melody note must outscore one containing none")
}

func TestChordFitnessChromaticNearZero(t *testing.T) {
	scale := theory.BuildScale(theory.C, theory.ScaleMajor)
	segment := Segment{Notes: []melody.DiscreteNote{
		note(theory.CSharp, 150, 300),
		note(theory.FSharp, 450, 300),
	}}

	cMajor := theory.BuildChord(theory.C, theory.ChordMajor)
	assert.Less(t, chordFitness(segment, cMajor, scale), 0.5)
}

func TestProgressionScoreRewardsCadence(t *testing.T) {
	scale := theory.BuildScale(theory.C, theory.ScaleMajor)

	chord := func(root theory.PitchClass) Chord {
		return Chord{Root: root, Notes: theory.BuildChord(root, theory.ChordMajor)}
	}

	authentic := []Chord{chord(theory.G), chord(theory.C)} // V -> I
	reversed := []Chord{chord(theory.C), chord(theory.G)}  // I -> V

	assert.Greater(t,
		progressionScore(authentic, scale),
		progressionScore(reversed, scale))
}

func TestProgressionScoreEmpty(t *testing.T) {
	scale := theory.BuildScale(theory.C, theory.ScaleMajor)
	assert.Zero(t, progressionScore(nil, scale))
}

func TestDiatonicQualityTables(t *testing.T) {
	assert.Equal(t, theory.ChordMajor, diatonicQuality(1, false))
	assert.Equal(t, theory.ChordMinor, diatonicQuality(2, false))
	assert.Equal(t, theory.ChordMinor, diatonicQuality(6, false))
	assert.Equal(t, theory.ChordDiminished, diatonicQuality(7, false))

	assert.Equal(t, theory.ChordMinor, diatonicQuality(1, true))
	assert.Equal(t, theory.ChordDiminished, diatonicQuality(2, true))
	assert.Equal(t, theory.ChordMajor, diatonicQuality(6, true))
	assert.Equal(t, theory.ChordMajor, diatonicQuality(7, true))
}

func TestTopN(t *testing.T) {
	candidates := []Progression{{Score: 3}, {Score: 2}, {Score: 1}}

	assert.Len(t, TopN(candidates, 2), 2)
	assert.Len(t, TopN(candidates, 10), 3)
	assert.Len(t, TopN(candidates, 0), 3)
}
