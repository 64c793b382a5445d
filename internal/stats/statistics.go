// Package stats accumulates the per-session running statistics that the
// report builder consumes.
package stats

import (
	"math"

	"github.com/ademuri/speech-profile-tools/internal/features"
)

const (
	// Nominal tick cadence.
	TicksPerSecond = 60

	// Rising edges across this volume count as syllable onsets.
	OnsetThreshold = 0.15

	// Auto-stop fires once silence exceeds AutoStopSilenceFrames and more than
	// AutoStopMinFrames voiced frames were seen (6s of silence at 60 ticks/s).
	AutoStopSilenceFrames = 6 * TicksPerSecond
	AutoStopMinFrames     = TicksPerSecond

	// Keeps the local speech rate finite before any voiced frame.
	speechRateTimeGuard = 0.1
)

// Statistics is the mutable, session-scoped accumulator. A new session
// starts from a fresh zero value.
type Statistics struct {
	VolSum          float64
	PitchSum        float64
	SpectralTiltSum float64

	VolReadings   []float64
	PitchReadings []float64

	// FrameCount counts voiced ticks only; SilenceFrames counts silent ones.
	FrameCount    int
	SilenceFrames int

	// PauseCount is the number of silent runs started.
	PauseCount int
	InPause    bool

	LocalDevPitch float64
	LocalDevVol   float64

	SyllableCount int
	LastVol       float64
}

// Observe records one tick. Every call increments exactly one of
// FrameCount or SilenceFrames.
func (s *Statistics) Observe(f features.Features, silent bool) {
	if silent {
		s.SilenceFrames++
		if !s.InPause {
			s.PauseCount++
			s.InPause = true
		}
	} else {
		s.InPause = false
		s.VolSum += f.Volume
		s.PitchSum += f.Pitch
		s.SpectralTiltSum += f.Tilt
		s.FrameCount++
		s.VolReadings = append(s.VolReadings, f.Volume)
		s.PitchReadings = append(s.PitchReadings, f.Pitch)

		if n := len(s.VolReadings); n > 1 {
			s.LocalDevPitch += math.Abs(f.Pitch - s.PitchReadings[n-2])
			s.LocalDevVol += math.Abs(f.Volume - s.VolReadings[n-2])
		}

		if f.Volume > OnsetThreshold && s.LastVol <= OnsetThreshold {
			s.SyllableCount++
		}
	}
	s.LastVol = f.Volume
}

// ShouldFinalize is the level-triggered auto-stop predicate. It stays true
// on every tick after it first becomes true; callers act on the first one.
func (s *Statistics) ShouldFinalize() bool {
	return s.SilenceFrames > AutoStopSilenceFrames && s.FrameCount > AutoStopMinFrames
}

// LocalSpeechRate is syllables per elapsed voiced second.
func (s *Statistics) LocalSpeechRate() float64 {
	return float64(s.SyllableCount) / (float64(s.FrameCount)/TicksPerSecond + speechRateTimeGuard)
}

// Ticks is the number of observed ticks.
func (s *Statistics) Ticks() int {
	return s.FrameCount + s.SilenceFrames
}

// Clone returns a deep copy, so a finished report never aliases the
// accumulator's reading slices.
func (s *Statistics) Clone() Statistics {
	c := *s
	c.VolReadings = append([]float64(nil), s.VolReadings...)
	c.PitchReadings = append([]float64(nil), s.PitchReadings...)
	return c
}
