package motion

import (
	"github.com/aquilax/go-perlin"

	"github.com/ademuri/speech-profile-tools/internal/common"
	"github.com/ademuri/speech-profile-tools/internal/features"
)

const (
	PositionSmoothing = 0.08
	ShapeSmoothing    = 0.1

	initialSize = 6

	// Horizontal wander stays inside this band of the display width.
	wanderMin  = 0.4
	wanderMax  = 0.6
	wanderStep = 0.02

	// Fixed so that every session wanders along the same path.
	wanderSeed = 77
)

// Visual is the smoothed visual state handed to the renderer each tick.
type Visual struct {
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Size    float64 `json:"size" yaml:"size"`
	Scatter float64 `json:"scatter" yaml:"scatter"`
}

// Smoother owns the visual state and moves it toward each tick's target.
// It is the only stateful part of the motion pipeline.
type Smoother struct {
	geometry Geometry
	visual   Visual
	wander   *Wander
}

func NewSmoother(g Geometry) *Smoother {
	return &Smoother{
		geometry: g,
		visual: Visual{
			X:    g.Width / 2,
			Y:    g.Height * centerY,
			Size: initialSize,
		},
		wander: NewWander(),
	}
}

// Step advances one tick toward target. volume is the instantaneous volume;
// near-silent ticks pull the horizontal target back to center.
func (s *Smoother) Step(target Target, volume float64) Visual {
	g := s.geometry
	x := common.MapRange(s.wander.Next(), 0, 1, g.Width*wanderMin, g.Width*wanderMax)
	if volume < features.SilenceThreshold {
		x = g.Width / 2
	}

	s.visual.X = common.Lerp(s.visual.X, x, PositionSmoothing)
	s.visual.Y = common.Lerp(s.visual.Y, target.Y, PositionSmoothing)
	s.visual.Size = common.Lerp(s.visual.Size, target.Size, ShapeSmoothing)
	s.visual.Scatter = common.Lerp(s.visual.Scatter, target.Scatter, ShapeSmoothing)
	return s.visual
}

// Visual returns the current smoothed state.
func (s *Smoother) Visual() Visual {
	return s.visual
}

// Wander is a deterministic, smooth 1D noise walk in [0,1].
type Wander struct {
	noise  *perlin.Perlin
	offset float64
}

func NewWander() *Wander {
	return &Wander{noise: perlin.NewPerlin(2, 2, 3, wanderSeed)}
}

// Next advances the walk and returns the new value.
func (w *Wander) Next() float64 {
	w.offset += wanderStep
	return common.Clamp01(0.5 + w.noise.Noise1D(w.offset))
}
