// Package report turns a finished session's statistics into a SessionReport:
// normalized parameters, temporal trend, weighted dimensions and the ranked
// primary pattern.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ademuri/speech-profile-tools/internal/common"
	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/stats"
)

// Primary pattern labels, in ranking insertion order.
const (
	PatternExpressive = "Emotionally Activated / Expressive"
	PatternDominant   = "Dominant / Assertive"
	PatternStable     = "Stable / Calm"
	PatternSoft       = "Soft / Intimate"
	PatternTense      = "Tense / Strained"
)

// Input is everything Build needs. Nothing else is read, so equal inputs
// give equal reports.
type Input struct {
	Stats   stats.Statistics
	History []history.Sample
	Source  SourceKind

	// ExistingCount is the number of archived reports already carrying
	// Source's prefix.
	ExistingCount int
	Timestamp     time.Time

	// Final is the visual state at finalization.
	Final VisualParams
}

// Build assembles the report. It has no error paths: every division is
// guarded and every composite is clamped where it is assigned.
func Build(in Input) *Report {
	s := &in.Stats
	count := float64(max(s.FrameCount, 1))
	totalTimeSec := count / stats.TicksPerSecond

	raw := normalize(s, count, totalTimeSec)
	temporal := trend(s.VolReadings, raw)
	core := coreDimensions(raw)

	hesitation := common.Clamp01((1.5*raw.PauseDur + 1.2*raw.PauseFreq + (1 - core.Fluency)) / 3)
	presence := common.Clamp01(.4*raw.Loudness + .4*raw.HNR + .2*core.Coherence)
	effort := common.Clamp01(.4*raw.Tilt + .3*raw.Shimmer + .3*raw.Jitter)

	affective := Affective{
		Arousal:         common.Clamp01(.30*raw.Loudness + .25*raw.Pitch + .20*raw.SpeechRate + .15*raw.PitchRange + .10*raw.LoudnessVar),
		Aggression:      common.Clamp01(.30*raw.Loudness + .25*raw.Tilt + .20*raw.SpeechRate + .15*(1-raw.PauseFreq) + .10*raw.Shimmer),
		MasculineCoding: common.MapClamped(raw.Pitch, 0.5, 0.1, 0, 1),
		FeminineCoding:  common.MapClamped(raw.Pitch, 0.5, 0.9, 0, 1),
	}

	ranking := rank([]Dimension{
		{Name: PatternExpressive, Score: affective.Arousal},
		{Name: PatternDominant, Score: core.Dominance},
		{Name: PatternStable, Score: core.Stability},
		{Name: PatternSoft, Score: softnessRanking(raw)},
		{Name: PatternTense, Score: tensionRanking(raw)},
	})
	primary := ranking[0].Name

	hist := append([]history.Sample{}, in.History...)

	return &Report{
		ID:             NewID(in.Source, in.ExistingCount),
		Source:         in.Source,
		Type:           in.Source.Label(),
		Timestamp:      in.Timestamp,
		Duration:       int(math.Floor(totalTimeSec)),
		PrimaryPattern: primary,
		Summary:        fmt.Sprintf("The interaction presents a %s profile.", strings.ToLower(primary)),
		Raw:            raw,
		Temporal:       temporal,
		Core:           core,
		VoiceCharacter: VoiceCharacter{
			Softness:       common.Clamp01(1 - raw.Loudness),
			Tension:        effort,
			Hesitation:     hesitation,
			Expressiveness: raw.LoudnessVar,
			Presence:       presence,
			Effort:         effort,
		},
		Affective:    affective,
		NonSpeech:    common.Clamp01(raw.Shimmer * 0.3),
		Ranking:      ranking,
		VisualParams: in.Final,
		History:      hist,
	}
}

func normalize(s *stats.Statistics, count, totalTimeSec float64) RawParameters {
	var speechRate, pauseFreq, pauseDur float64
	if totalTimeSec > 0 {
		speechRate = float64(s.SyllableCount) / totalTimeSec / 4
		pauseFreq = float64(s.PauseCount) / totalTimeSec / 1.5
	}
	if s.PauseCount > 0 {
		pauseDur = float64(s.SilenceFrames) / float64(s.PauseCount) / 45
	}
	meanTilt := s.SpectralTiltSum / count

	return RawParameters{
		Loudness:    common.Clamp01(s.VolSum / count),
		LoudnessVar: common.Clamp01(common.PopStdDev(s.VolReadings) * 5),
		Pitch:       common.Clamp01(s.PitchSum / count),
		PitchRange:  common.Clamp01(common.PopStdDev(s.PitchReadings) * 6),
		SpeechRate:  common.Clamp01(speechRate),
		PauseFreq:   common.Clamp01(pauseFreq),
		PauseDur:    common.Clamp01(pauseDur),
		HNR:         common.Clamp01(1 - meanTilt),
		Tilt:        common.Clamp01(meanTilt),
		Jitter:      common.Clamp01(s.LocalDevPitch / count * 8),
		Shimmer:     common.Clamp01(s.LocalDevVol / count * 8),
	}
}

// trend splits the volume readings at their midpoint and compares the mean
// of each half. An empty half has mean 0.
func trend(volReadings []float64, raw RawParameters) Temporal {
	split := len(volReadings) / 2
	loudnessTrend := common.Mean(volReadings[split:]) - common.Mean(volReadings[:split])
	return Temporal{
		Change:        (raw.LoudnessVar + raw.PitchRange) / 2,
		LoudnessTrend: loudnessTrend,
		Escalation:    loudnessTrend * 2,
	}
}

func coreDimensions(r RawParameters) Core {
	return Core{
		Dominance: common.Clamp01(.35*r.Loudness + .25*(1-r.PauseFreq) + .15*(1-r.PauseDur) + .15*(1-r.Pitch) + .10*r.HNR),
		Coherence: common.Clamp01(.35*r.HNR + .20*(1-r.Jitter) + .20*(1-r.Shimmer) + .15*(1-r.PauseDur) + .10*(1-r.LoudnessVar)),
		Stability: common.Clamp01(.30*(1-r.PitchRange) + .25*(1-r.LoudnessVar) + .15*(1-r.Jitter) + .15*(1-r.Shimmer) + .15*(1-r.PauseFreq)),
		Fluency:   common.Clamp01(.40*(1-r.PauseFreq) + .30*(1-r.PauseDur) + .30*r.SpeechRate),
	}
}

// softnessRanking and tensionRanking are only used to pick the primary
// pattern. The reported VoiceCharacter values are computed differently.
func softnessRanking(r RawParameters) float64 {
	return common.Clamp01(.30*(1-r.Loudness) + .30*(1-r.Tilt) + .15*(1-r.Pitch) + .15*r.HNR + .10*(1-r.Jitter))
}

func tensionRanking(r RawParameters) float64 {
	return common.Clamp01(.30*r.Tilt + .25*r.Jitter + .25*r.Shimmer + .20*r.SpeechRate)
}

// rank sorts descending by score. Ties keep insertion order.
func rank(dims []Dimension) []Dimension {
	sort.SliceStable(dims, func(i, j int) bool {
		return dims[i].Score > dims[j].Score
	})
	return dims
}
