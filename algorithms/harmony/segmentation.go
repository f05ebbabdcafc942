package harmony

import (
	"math"

	"github.com/RyanBlaney/chordsense/algorithms/common"
	"github.com/RyanBlaney/chordsense/algorithms/melody"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// Segment is a contiguous, non-empty run of melody notes harmonized by a
// single chord. Segments partition the melody with no gaps or overlaps.
type Segment struct {
	Notes []melody.DiscreteNote `json:"notes"`
}

// StartMs returns the segment's start time in milliseconds.
func (s Segment) StartMs() int {
	return s.Notes[0].StartMs
}

// EndMs returns the segment's end time in milliseconds.
func (s Segment) EndMs() int {
	return s.Notes[len(s.Notes)-1].EndMs()
}

// DurationMs returns the time span of the segment in milliseconds.
func (s Segment) DurationMs() int {
	return s.EndMs() - s.StartMs()
}

// SegmenterParams contains the phrase-boundary thresholds
type SegmenterParams struct {
	// MinChordDurationMs is the minimum accumulated span before a boundary
	// may be declared
	MinChordDurationMs int `json:"min_chord_duration_ms"`

	// LongNoteMs marks a previous note long enough to end a phrase
	LongNoteMs int `json:"long_note_ms"`

	// MaxLeapSemitones is the largest melodic step that stays within a
	// phrase
	MaxLeapSemitones int `json:"max_leap_semitones"`

	// SilenceGapMs marks a rest long enough to end a phrase
	SilenceGapMs int `json:"silence_gap_ms"`
}

// DefaultSegmenterParams returns the phrase-boundary thresholds used by the
// suggestion engine.
func DefaultSegmenterParams() SegmenterParams {
	return SegmenterParams{
		MinChordDurationMs: 400,
		LongNoteMs:         500,
		MaxLeapSemitones:   4,
		SilenceGapMs:       300,
	}
}

// segmentMelody splits a melody into phrase segments. A boundary is declared
// before a note once the open segment spans at least MinChordDurationMs and
// any of these holds: the previous note ran longer than LongNoteMs, the step
// to the new note leaps more than MaxLeapSemitones, or a rest longer than
// SilenceGapMs precedes it. The final partial segment is always emitted.
//
// When boundary detection finds fewer than two segments in a melody of more
// than two notes, the melody is force-split into clamp(ceil(n/6), 2, n)
// near-equal segments so the progression still gets multiple harmonic slots.
func segmentMelody(notes []melody.DiscreteNote, params SegmenterParams) []Segment {
	if len(notes) == 0 {
		return nil
	}

	var segments []Segment
	current := []melody.DiscreteNote{notes[0]}
	segStart := notes[0].StartMs

	for _, note := range notes[1:] {
		prev := current[len(current)-1]
		accumulated := prev.EndMs() - segStart

		longPrev := prev.DurationMs > params.LongNoteMs
		bigLeap := theory.Distance(prev.Class, note.Class) > params.MaxLeapSemitones
		longRest := note.StartMs-prev.EndMs() > params.SilenceGapMs

		if accumulated >= params.MinChordDurationMs && (longPrev || bigLeap || longRest) {
			segments = append(segments, Segment{Notes: current})
			current = []melody.DiscreteNote{note}
			segStart = note.StartMs
			continue
		}

		current = append(current, note)
	}
	segments = append(segments, Segment{Notes: current})

	if len(segments) < 2 && len(notes) > 2 {
		return evenSplit(notes)
	}

	return segments
}

// evenSplit partitions the melody into near-equal segments as a fallback for
// very regular melodies that trigger no natural boundaries.
func evenSplit(notes []melody.DiscreteNote) []Segment {
	n := len(notes)
	count := common.ClampInt(int(math.Ceil(float64(n)/6.0)), 2, n)

	segments := make([]Segment, 0, count)
	base := n / count
	extra := n % count

	idx := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		segments = append(segments, Segment{Notes: notes[idx : idx+size]})
		idx += size
	}

	return segments
}
