package report

import (
	"math"

	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/motion"
)

// ReplayAt returns the sample a renderer shows at playbackTick. Reports
// without history replay their final visual state, vertically centered.
func (r *Report) ReplayAt(playbackTick int, speed float64, g motion.Geometry) history.Sample {
	if s, ok := history.At(r.History, playbackTick, speed); ok {
		return s
	}
	return history.Sample{
		Size:    int(math.Floor(r.VisualParams.Size)),
		Scatter: int(math.Floor(r.VisualParams.Scatter)),
		Mode:    r.VisualParams.Mode,
		Y:       int(math.Floor(g.Height / 2)),
	}
}

// ReplayCycle is the number of playback ticks needed to show every sample
// once at speed. It is 1 for a report without history.
func (r *Report) ReplayCycle(speed float64) int {
	if len(r.History) == 0 || speed <= 0 {
		return 1
	}
	// The epsilon keeps 9/0.3 from rounding up to 31.
	return int(math.Ceil(float64(len(r.History))/speed - 1e-9))
}
