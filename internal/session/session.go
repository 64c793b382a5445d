// Package session runs the per-tick pipeline for one recording and owns the
// lifecycle around it.
package session

import (
	"time"

	"github.com/ademuri/speech-profile-tools/internal/features"
	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/report"
	"github.com/ademuri/speech-profile-tools/internal/stats"
)

// Output is what one tick hands to the renderer.
type Output struct {
	// Tick is 1 for the first tick of the session and increases by one.
	Tick     int
	State    motion.State
	Visual   motion.Visual
	Features features.Frame

	// AutoStop is the accumulator's level-triggered finalize predicate. It
	// stays true once set.
	AutoStop bool
}

// Session is the state of a single recording. Nothing is shared between
// sessions; a new one starts from fresh values.
type Session struct {
	source   report.SourceKind
	geometry motion.Geometry

	extractor features.Extractor
	stats     stats.Statistics
	smoother  *motion.Smoother
	recorder  history.Recorder

	state motion.State
	tick  int
}

func New(source report.SourceKind, g motion.Geometry) *Session {
	return &Session{
		source:   source,
		geometry: g,
		smoother: motion.NewSmoother(g),
		state:    motion.Neutral,
	}
}

// Step runs one tick: extraction, accumulation, classification, smoothing
// and recording, in that order, all on the same features.
func (s *Session) Step(raw features.Raw) Output {
	s.tick++

	frame := s.extractor.Extract(raw)
	silent := frame.Silent()
	s.stats.Observe(frame.Features, silent)

	state, target := motion.Classify(frame, s.stats.LocalSpeechRate(), silent, s.geometry)
	visual := s.smoother.Step(target, frame.Volume)
	s.recorder.Observe(visual, state)
	s.state = state

	return Output{
		Tick:     s.tick,
		State:    state,
		Visual:   visual,
		Features: frame,
		AutoStop: s.stats.ShouldFinalize(),
	}
}

// Finalize builds the report. existing is the number of archived reports
// already carrying this session's prefix.
func (s *Session) Finalize(existing int, now time.Time) *report.Report {
	v := s.smoother.Visual()
	return report.Build(report.Input{
		Stats:         s.stats.Clone(),
		History:       s.recorder.Samples(),
		Source:        s.source,
		ExistingCount: existing,
		Timestamp:     now,
		Final: report.VisualParams{
			Mode:    s.state,
			Size:    v.Size,
			Scatter: v.Scatter,
		},
	})
}

func (s *Session) Source() report.SourceKind {
	return s.source
}

func (s *Session) Ticks() int {
	return s.tick
}

// Statistics returns a copy of the accumulator.
func (s *Session) Statistics() stats.Statistics {
	return s.stats.Clone()
}

func (s *Session) State() motion.State {
	return s.state
}
