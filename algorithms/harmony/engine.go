package harmony

import (
	"sort"

	"github.com/RyanBlaney/chordsense/algorithms/melody"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
	"github.com/RyanBlaney/chordsense/logging"
)

// Chord is one harmonized slot of a progression candidate.
type Chord struct {
	Symbol     string              `json:"symbol"`
	Root       theory.PitchClass   `json:"root"`
	Type       theory.ChordType    `json:"-"`
	Notes      []theory.PitchClass `json:"notes"`
	StartMs    int                 `json:"start_ms"`
	DurationMs int                 `json:"duration_ms"`
	Fitness    float64             `json:"fitness"`
}

// Progression is one scored candidate: a template applied to a segmented
// melody in a concrete key. Candidates are independent values; callers
// typically keep only the best few.
type Progression struct {
	Name   string            `json:"name"`
	Key    theory.PitchClass `json:"key"`
	Scale  theory.ScaleType  `json:"-"`
	Chords []Chord           `json:"chords"`
	Score  float64           `json:"score"`
}

// EngineParams contains parameters for chord suggestion
type EngineParams struct {
	Segmenter SegmenterParams `json:"segmenter"`

	// CustomPatterns are tried in addition to the built-in template set for
	// the active mode
	CustomPatterns []Pattern `json:"-"`
}

// DefaultEngineParams returns the default suggestion parameters.
func DefaultEngineParams() EngineParams {
	return EngineParams{
		Segmenter: DefaultSegmenterParams(),
	}
}

// Engine segments a melody into phrases, expands roman-numeral templates
// into concrete diatonic progressions, scores each against the melody, and
// returns all candidates best-first. The engine holds no per-call state;
// Suggest is deterministic given its inputs.
type Engine struct {
	params EngineParams
	log    logging.Logger
}

// NewEngine creates a suggestion engine with default parameters
func NewEngine() *Engine {
	return NewEngineWithParams(DefaultEngineParams())
}

// NewEngineWithParams creates a suggestion engine with custom parameters
func NewEngineWithParams(params EngineParams) *Engine {
	if params.Segmenter == (SegmenterParams{}) {
		params.Segmenter = DefaultSegmenterParams()
	}
	return &Engine{
		params: params,
		log:    &logging.NoOpLogger{},
	}
}

// SetLogger installs a trace sink. A nil logger restores the no-op default.
func (e *Engine) SetLogger(logger logging.Logger) {
	if logger == nil {
		e.log = &logging.NoOpLogger{}
		return
	}
	e.log = logger
}

// Suggest returns scored progression candidates for a melody in the given
// key, best first. An empty melody or an unknown key yields no candidates.
// Custom patterns naming a scale degree outside 1..7 are skipped with a
// warning rather than applied.
func (e *Engine) Suggest(notes []melody.DiscreteNote, tonic theory.PitchClass, minor bool) []Progression {
	if len(notes) == 0 || !tonic.Valid() {
		return nil
	}

	scaleType := theory.ScaleMajor
	if minor {
		scaleType = theory.ScaleNaturalMinor
	}
	scale := theory.BuildScale(tonic, scaleType)

	segments := segmentMelody(notes, e.params.Segmenter)
	e.log.Debug("melody segmented", logging.Fields{
		"notes":    len(notes),
		"segments": len(segments),
	})

	patterns := DefaultPatterns(minor)
	patterns = append(patterns, e.params.CustomPatterns...)

	candidates := make([]Progression, 0, len(patterns))
	for _, pattern := range patterns {
		if len(pattern.Chords) == 0 || len(pattern.Chords) > len(segments) {
			continue
		}
		if !validDegrees(pattern) {
			e.log.Warn("skipping pattern with out-of-range scale degree", logging.Fields{
				"pattern": pattern.Name,
			})
			continue
		}

		chords := e.applyPattern(pattern, segments, scale, minor)
		candidates = append(candidates, Progression{
			Name:   pattern.Name,
			Key:    tonic,
			Scale:  scaleType,
			Chords: chords,
			Score:  progressionScore(chords, scale),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	e.log.Debug("progressions scored", logging.Fields{
		"key":        tonic.String(),
		"candidates": len(candidates),
	})

	return candidates
}

// applyPattern assigns one chord per segment by cycling through the
// template's slots with modular indexing, then fits each chord against its
// segment.
func (e *Engine) applyPattern(pattern Pattern, segments []Segment, scale theory.Scale, minor bool) []Chord {
	chords := make([]Chord, len(segments))

	for i, segment := range segments {
		slot := pattern.Chords[i%len(pattern.Chords)]
		chordType := resolveQuality(slot, minor)
		root := scale.Degrees[slot.Degree-1]
		chordNotes := theory.BuildChord(root, chordType)

		chords[i] = Chord{
			Symbol:     theory.ChordSymbol(root, chordType),
			Root:       root,
			Type:       chordType,
			Notes:      chordNotes,
			StartMs:    segment.StartMs(),
			DurationMs: segment.DurationMs(),
			Fitness:    chordFitness(segment, chordNotes, scale),
		}
	}

	return chords
}

// TopN returns at most n best candidates from an already sorted suggestion
// list.
func TopN(candidates []Progression, n int) []Progression {
	if n <= 0 || n >= len(candidates) {
		return candidates
	}
	return candidates[:n]
}
