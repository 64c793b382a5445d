// Package features turns the spectral analyzer's raw per-tick scalars into
// bounded engineering units.
package features

import (
	"math"

	"github.com/ademuri/speech-profile-tools/internal/common"
)

const (
	VolumeGain = 35.0
	MaxVolume  = 5.0

	CentroidMinHz = 100.0
	CentroidMaxHz = 4500.0

	// Energy-band levels are reported on a 0-255 scale.
	MaxBandEnergy = 255.0

	VolumeSmoothing = 0.2
	PitchSmoothing  = 0.1

	// Ticks whose instantaneous volume is below this are silent.
	SilenceThreshold = 0.05
)

// Raw holds the scalars the analyzer hands over once per tick.
type Raw struct {
	VolumeLevel float64 // [0,1]
	CentroidHz  float64
	LowEnergy   float64 // ~20-250 Hz
	MidEnergy   float64 // ~100-1000 Hz
	HighEnergy  float64 // ~2500-10000 Hz
}

// Features are the instantaneous per-tick values.
type Features struct {
	Volume        float64 // [0,5]
	Pitch         float64 // [0,1]
	Tilt          float64 // >= 0, unbounded above
	HarmonicRatio float64 // [0,1]
}

// Frame is the per-tick output of the Extractor: the instantaneous features
// plus the smoothed volume and pitch.
type Frame struct {
	Features
	SmoothedVolume float64
	SmoothedPitch  float64
}

// Silent reports whether the tick counts as silence. Silence is judged on
// the instantaneous volume, never the smoothed one.
func (f Features) Silent() bool {
	return f.Volume < SilenceThreshold
}

// Extractor keeps the smoothing state for volume and pitch. The zero value
// is ready to use.
type Extractor struct {
	volume float64
	pitch  float64
}

// Extract computes this tick's Frame and advances the smoothing state.
func (e *Extractor) Extract(raw Raw) Frame {
	f := Compute(raw)
	e.volume = common.Lerp(e.volume, f.Volume, VolumeSmoothing)
	e.pitch = common.Lerp(e.pitch, f.Pitch, PitchSmoothing)
	return Frame{
		Features:       f,
		SmoothedVolume: e.volume,
		SmoothedPitch:  e.pitch,
	}
}

// Compute applies the fixed mappings without touching any smoothing state.
// Non-finite scalars read as 0 and band energies are floored at 0, so every
// output is finite.
func Compute(raw Raw) Features {
	low := energy(raw.LowEnergy)
	high := energy(raw.HighEnergy)
	return Features{
		Volume:        common.Clamp(finite(raw.VolumeLevel)*VolumeGain, 0, MaxVolume),
		Pitch:         common.MapClamped(finite(raw.CentroidHz), CentroidMinHz, CentroidMaxHz, 0, 1),
		Tilt:          high / (low + 1),
		HarmonicRatio: common.MapClamped(energy(raw.MidEnergy), 0, MaxBandEnergy, 0, 1),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func energy(v float64) float64 {
	return math.Max(finite(v), 0)
}
