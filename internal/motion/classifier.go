package motion

import (
	"github.com/ademuri/speech-profile-tools/internal/common"
	"github.com/ademuri/speech-profile-tools/internal/features"
)

// Geometry is the display extent the targets are expressed in.
type Geometry struct {
	Width  float64
	Height float64
}

// DefaultGeometry matches the CLI's default display size.
var DefaultGeometry = Geometry{Width: 1280, Height: 720}

// Target holds the values the visual state is smoothed toward.
type Target struct {
	Y       float64
	Size    float64
	Scatter float64
}

const (
	scatterVolume      = 1.5
	scatterSpeechRate  = 1.5
	scatterHarmonicMax = 0.4

	vibrationSpeechRate  = 1.0
	vibrationHarmonicMax = 0.5
	vibrationScatter     = 5

	flowTiltMax = 0.3

	aggregationPitchMin = 0.6
	aggregationTiltMin  = 0.5

	dripPitchMax = 0.4

	// Fractions of the display height.
	restY   = 0.9
	lowY    = 0.85
	highY   = 0.15
	centerY = 0.5
)

// Classify is the pure decision function run once per tick. The first
// matching branch wins; no previous state is consulted.
func Classify(frame features.Frame, speechRate float64, silent bool, g Geometry) (State, Target) {
	target := Target{
		Y:    common.MapRange(frame.SmoothedPitch, 0, 1, g.Height*lowY, g.Height*highY),
		Size: common.MapRange(frame.Volume, 0, 2, 5, 35),
	}

	hnr := frame.HarmonicRatio
	switch {
	case silent:
		target.Y = g.Height * restY
		return Default, target

	case frame.Volume > scatterVolume || (speechRate > scatterSpeechRate && hnr < scatterHarmonicMax):
		target.Scatter = common.MapRange(frame.Volume, 1.5, features.MaxVolume, 20, 150)
		return Scattering, target

	case speechRate > vibrationSpeechRate && hnr < vibrationHarmonicMax:
		target.Scatter = vibrationScatter
		return Vibration, target

	case frame.Tilt < flowTiltMax:
		return Flow, target

	case frame.Pitch > aggregationPitchMin && frame.Tilt > aggregationTiltMin:
		return Aggregation, target

	case frame.Pitch < dripPitchMax:
		return Drip, target

	default:
		target.Scatter = common.MapRange(frame.Volume, 0, 1.5, 0, 30)
		return Drift, target
	}
}
