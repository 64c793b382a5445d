// Package history samples the smoothed visual state into the replay log that
// travels with a finished report.
package history

import (
	"math"

	"github.com/ademuri/speech-profile-tools/internal/motion"
)

const (
	// SampleEvery is the recording cadence in ticks.
	SampleEvery = 3

	// DefaultReplaySpeed is the playback rate used by the renderer.
	DefaultReplaySpeed = 0.3
)

// Sample is one entry of the replay log.
type Sample struct {
	Size    int          `json:"size" yaml:"size"`
	Scatter int          `json:"scatter" yaml:"scatter"`
	Mode    motion.State `json:"mode" yaml:"mode"`
	Y       int          `json:"y" yaml:"y"`
}

// Recorder appends a Sample every SampleEvery ticks. The log is bounded only
// by the session length.
type Recorder struct {
	ticks   int
	samples []Sample
}

// Observe is called once per tick with the post-smoothing visual state.
func (r *Recorder) Observe(v motion.Visual, mode motion.State) {
	r.ticks++
	if r.ticks%SampleEvery != 0 {
		return
	}
	r.samples = append(r.samples, Sample{
		Size:    floor(v.Size),
		Scatter: floor(v.Scatter),
		Mode:    mode,
		Y:       floor(v.Y),
	})
}

// Samples returns a copy of the log.
func (r *Recorder) Samples() []Sample {
	return append([]Sample(nil), r.samples...)
}

// Len is the number of recorded samples.
func (r *Recorder) Len() int {
	return len(r.samples)
}

// At returns the sample shown at playbackTick when the log is replayed as a
// circular buffer at the given speed. It reports false for an empty log.
func At(samples []Sample, playbackTick int, speed float64) (Sample, bool) {
	if len(samples) == 0 {
		return Sample{}, false
	}
	idx := int(math.Floor(float64(playbackTick)*speed)) % len(samples)
	if idx < 0 {
		idx += len(samples)
	}
	return samples[idx], true
}

func floor(v float64) int {
	return int(math.Floor(v))
}
