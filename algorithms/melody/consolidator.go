package melody

import (
	"math"

	"github.com/RyanBlaney/chordsense/algorithms/pitch"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// DiscreteNote is a pitch-class-only note event with millisecond timing.
// Sequences of discrete notes are always time-ordered and non-overlapping.
type DiscreteNote struct {
	Class      theory.PitchClass `json:"class"`
	StartMs    int               `json:"start_ms"`
	DurationMs int               `json:"duration_ms"`
}

// EndMs returns the end time of the note in milliseconds.
func (n DiscreteNote) EndMs() int {
	return n.StartMs + n.DurationMs
}

// ConsolidatorParams contains parameters for note consolidation
type ConsolidatorParams struct {
	// GapToleranceMs is the largest silence between consecutive pitch points
	// that still extends the current run
	GapToleranceMs int `json:"gap_tolerance_ms"`

	// MinDurationMs drops runs shorter than this as noise
	MinDurationMs int `json:"min_duration_ms"`
}

// DefaultConsolidatorParams returns consolidation thresholds tuned against
// the pitch detector's default hop (~23 ms at 44.1 kHz / 2048 windows).
func DefaultConsolidatorParams() ConsolidatorParams {
	return ConsolidatorParams{
		GapToleranceMs: 250,
		MinDurationMs:  60,
	}
}

// Consolidator merges consecutive same-pitch-class estimates into discrete
// note events, filtering noise.
type Consolidator struct {
	params ConsolidatorParams
}

// NewConsolidator creates a consolidator with default parameters
func NewConsolidator() *Consolidator {
	return NewConsolidatorWithParams(DefaultConsolidatorParams())
}

// NewConsolidatorWithParams creates a consolidator with custom parameters.
// Zero values fall back to the defaults.
func NewConsolidatorWithParams(params ConsolidatorParams) *Consolidator {
	defaults := DefaultConsolidatorParams()
	if params.GapToleranceMs <= 0 {
		params.GapToleranceMs = defaults.GapToleranceMs
	}
	if params.MinDurationMs <= 0 {
		params.MinDurationMs = defaults.MinDurationMs
	}
	return &Consolidator{params: params}
}

// Consolidate reduces octave-qualified pitch points to pitch-class-only
// discrete notes. Consecutive points sharing a pitch class merge into one
// run as long as the gap from the previous point stays within tolerance; a
// run ends on a class change or an oversized gap. Runs shorter than the
// minimum duration are dropped. Points must arrive in time order; the output
// is time-ordered and non-overlapping. Empty input yields empty output.
func (c *Consolidator) Consolidate(points []pitch.PitchPoint) []DiscreteNote {
	if len(points) == 0 {
		return nil
	}

	notes := make([]DiscreteNote, 0, len(points)/2+1)

	runClass := points[0].Note.Class
	runStart := toMs(points[0].Time)
	runEnd := runStart

	flush := func() {
		duration := runEnd - runStart
		if duration >= c.params.MinDurationMs {
			notes = append(notes, DiscreteNote{
				Class:      runClass,
				StartMs:    runStart,
				DurationMs: duration,
			})
		}
	}

	for _, p := range points[1:] {
		t := toMs(p.Time)
		if p.Note.Class == runClass && t-runEnd <= c.params.GapToleranceMs {
			runEnd = t
			continue
		}

		flush()
		runClass = p.Note.Class
		runStart = t
		runEnd = t
	}
	flush()

	return notes
}

func toMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}
