package analyzer

import (
	"context"
	"fmt"

	"github.com/RyanBlaney/chordsense/algorithms/harmony"
	"github.com/RyanBlaney/chordsense/algorithms/melody"
	"github.com/RyanBlaney/chordsense/algorithms/pitch"
	"github.com/RyanBlaney/chordsense/algorithms/theory"
	"github.com/RyanBlaney/chordsense/algorithms/tonal"
	"github.com/RyanBlaney/chordsense/logging"
)

// Config assembles the full pipeline configuration. There is no process-wide
// engine state; every analysis is pure given the config and its inputs.
type Config struct {
	// Pitch holds pitch-detection parameters. SampleRate is taken from the
	// Analyze call, not from here.
	Pitch pitch.Params `json:"pitch"`

	Consolidator melody.ConsolidatorParams `json:"consolidator"`
	Engine       harmony.EngineParams      `json:"engine"`

	// Logger is the optional trace sink. Nil keeps the pipeline silent.
	Logger logging.Logger `json:"-"`
}

// DefaultConfig returns the default pipeline configuration. The sample rate
// placeholder is replaced per call.
func DefaultConfig() Config {
	return Config{
		Pitch:        pitch.DefaultParams(0),
		Consolidator: melody.DefaultConsolidatorParams(),
		Engine:       harmony.DefaultEngineParams(),
	}
}

// AnalysisResult is the externally visible output of one analysis call:
// the detected key rendered for display plus scored progression candidates,
// best first.
type AnalysisResult struct {
	DetectedKey string                `json:"detected_key"`
	Key         tonal.KeyEstimate     `json:"key"`
	Notes       []melody.DiscreteNote `json:"notes"`
	Suggestions []harmony.Progression `json:"suggestions"`
}

// Analyzer runs the full offline pipeline: pitch detection, note
// consolidation, key detection, and chord suggestion. It is a synchronous,
// single-threaded computation with no I/O; callers that must not block
// invoke Analyze from their own worker goroutine.
type Analyzer struct {
	cfg      Config
	detector *tonal.KeyDetector
	engine   *harmony.Engine
	log      logging.Logger
}

// New creates an analyzer from a pipeline configuration
func New(cfg Config) *Analyzer {
	log := cfg.Logger
	if log == nil {
		log = &logging.NoOpLogger{}
	}

	engine := harmony.NewEngineWithParams(cfg.Engine)
	engine.SetLogger(log)

	return &Analyzer{
		cfg:      cfg,
		detector: tonal.NewKeyDetector(),
		engine:   engine,
		log:      log,
	}
}

// Analyze runs the pipeline over one recording. The sample buffer is
// read-only for the duration of the call and is never retained. Empty or
// silent input degrades to an "Unknown" key and no suggestions rather than
// an error; a non-positive sample rate is a programmer error and fails
// fast. Cancellation is cooperative: the context is checked between
// analysis windows and between stages.
func (a *Analyzer) Analyze(ctx context.Context, samples []float64, sampleRate int) (*AnalysisResult, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w, got %d", pitch.ErrInvalidSampleRate, sampleRate)
	}

	params := a.cfg.Pitch
	params.SampleRate = sampleRate
	detector, err := pitch.NewDetectorWithParams(params)
	if err != nil {
		return nil, fmt.Errorf("configuring pitch detector: %w", err)
	}

	points, err := detector.Analyze(ctx, samples)
	if err != nil {
		return nil, err
	}
	a.log.Debug("pitch detection complete", logging.Fields{
		"samples": len(samples),
		"points":  len(points),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := melody.NewConsolidatorWithParams(a.cfg.Consolidator).Consolidate(points)

	classes := make([]theory.PitchClass, len(notes))
	for i, n := range notes {
		classes[i] = n.Class
	}
	key := a.detector.Detect(classes)
	a.log.Debug("key detected", logging.Fields{
		"notes":      len(notes),
		"key":        key.String(),
		"confidence": key.Confidence,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var suggestions []harmony.Progression
	if !key.Unknown() {
		suggestions = a.engine.Suggest(notes, key.Tonic, key.Minor)
	}

	return &AnalysisResult{
		DetectedKey: key.String(),
		Key:         key,
		Notes:       notes,
		Suggestions: suggestions,
	}, nil
}
