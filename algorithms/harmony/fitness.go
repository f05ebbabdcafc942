package harmony

import (
	"github.com/RyanBlaney/chordsense/algorithms/common"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
)

// Melody-fit scoring constants. The strong-beat grid is a fixed 500 ms
// approximation with no tempo input; the weights below were tuned against
// that grid, so it stays literal.
const (
	chordToneScore = 2.2
	scaleToneScore = 1.0
	chromaticScore = 0.1

	strongBeatGridMs   = 500
	strongBeatWindowMs = 120
	strongBeatBoost    = 1.4
	strongBeatPenalty  = 0.7

	sustainedNoteMs    = 400
	sustainedBonus     = 0.4
	durationClampMinMs = 1.0
	durationClampMaxMs = 2000.0
)

// chordFitness scores how well a chord harmonizes a segment. Each note
// contributes its clamped duration times a per-note score: chord tones score
// highest, diatonic tones neutral, chromatic tones near zero. Notes landing
// on the strong-beat grid sharpen the score either way, and sustained notes
// get a flat bonus. The total is normalized by segment duration so long and
// short segments compare fairly.
func chordFitness(segment Segment, chordNotes []theory.PitchClass, scale theory.Scale) float64 {
	total := 0.0

	for _, note := range segment.Notes {
		duration := common.Clamp(float64(note.DurationMs), durationClampMinMs, durationClampMaxMs)

		inChord := containsClass(chordNotes, note.Class)

		score := chromaticScore
		if inChord {
			score = chordToneScore
		} else if scale.Contains(note.Class) {
			score = scaleToneScore
		}

		if note.StartMs%strongBeatGridMs < strongBeatWindowMs {
			if inChord {
				score *= strongBeatBoost
			} else {
				score *= strongBeatPenalty
			}
		}

		if note.DurationMs > sustainedNoteMs {
			score += sustainedBonus
		}

		total += duration * score
	}

	span := float64(segment.DurationMs())
	if span < 1 {
		span = 1
	}
	return total / span
}

func containsClass(notes []theory.PitchClass, pc theory.PitchClass) bool {
	for _, n := range notes {
		if n == pc {
			return true
		}
	}
	return false
}

// Root-motion and cadence scoring constants.
const (
	stepMotionBonus    = 0.2
	fifthMotionBonus   = 0.4
	fourthMotionBonus  = 0.3
	tritoneMotionPenal = -0.2

	twoFiveBonus = 0.4
	fiveOneBonus = 0.6

	finalTonicBonus     = 0.6
	deceptiveFinalBonus = 0.3
)

// progressionScore sums chord fitness weights, rewards smooth or functional
// root motion between neighbors, rewards ii->V and V->I cadential moves, and
// scores the final resolution. The accumulated score is divided by the chord
// count to normalize across progressions of different lengths.
func progressionScore(chords []Chord, scale theory.Scale) float64 {
	if len(chords) == 0 {
		return 0
	}

	score := 0.0
	for _, c := range chords {
		score += c.Fitness
	}

	for i := 1; i < len(chords); i++ {
		prev := chords[i-1]
		cur := chords[i]

		switch iv := theory.Interval(prev.Root, cur.Root); {
		case iv >= 1 && iv <= 4:
			score += stepMotionBonus
		case iv == 7:
			score += fifthMotionBonus
		case iv == 5:
			score += fourthMotionBonus
		case iv == 6:
			score += tritoneMotionPenal
		}

		prevDegree := scale.DegreeOf(prev.Root)
		curDegree := scale.DegreeOf(cur.Root)
		if prevDegree == 2 && curDegree == 5 {
			score += twoFiveBonus
		}
		if prevDegree == 5 && curDegree == 1 {
			score += fiveOneBonus
		}
	}

	switch scale.DegreeOf(chords[len(chords)-1].Root) {
	case 1:
		score += finalTonicBonus
	case 6:
		score += deceptiveFinalBonus
	}

	return score / float64(len(chords))
}
