package report

import (
	"time"

	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/motion"
)

// SourceKind says where a session's ticks came from.
type SourceKind string

const (
	Live SourceKind = "live"
	File SourceKind = "file"
)

// Label is the human-facing name of the source.
func (s SourceKind) Label() string {
	if s == File {
		return "VOICE RECORD"
	}
	return "LIVE INTERSECTION"
}

// Prefix is the identifier prefix for reports from this source.
func (s SourceKind) Prefix() string {
	if s == File {
		return "vr_"
	}
	return "lvi_"
}

// ParseSourceKind accepts "live" or "file".
func ParseSourceKind(s string) (SourceKind, bool) {
	switch SourceKind(s) {
	case Live, File:
		return SourceKind(s), true
	}
	return "", false
}

// Report is the finished, immutable session report.
type Report struct {
	ID             string           `json:"id" yaml:"id"`
	Source         SourceKind       `json:"source" yaml:"source"`
	Type           string           `json:"type" yaml:"type"`
	Timestamp      time.Time        `json:"timestamp" yaml:"timestamp"`
	Duration       int              `json:"duration" yaml:"duration"`
	PrimaryPattern string           `json:"primary_pattern" yaml:"primary_pattern"`
	Summary        string           `json:"summary" yaml:"summary"`
	Raw            RawParameters    `json:"raw" yaml:"raw"`
	Temporal       Temporal         `json:"temporal" yaml:"temporal"`
	Core           Core             `json:"core" yaml:"core"`
	VoiceCharacter VoiceCharacter   `json:"voice_character" yaml:"voice_character"`
	Affective      Affective        `json:"affective" yaml:"affective"`
	NonSpeech      float64          `json:"non_speech" yaml:"non_speech"`
	Ranking        []Dimension      `json:"ranking" yaml:"ranking"`
	VisualParams   VisualParams     `json:"visual_params" yaml:"visual_params"`
	History        []history.Sample `json:"history" yaml:"history,flow"`
}

// RawParameters are the eleven normalized per-session parameters.
type RawParameters struct {
	Loudness    float64 `json:"loudness" yaml:"loudness"`
	LoudnessVar float64 `json:"loudness_var" yaml:"loudness_var"`
	Pitch       float64 `json:"pitch" yaml:"pitch"`
	PitchRange  float64 `json:"pitch_range" yaml:"pitch_range"`
	SpeechRate  float64 `json:"speech_rate" yaml:"speech_rate"`
	PauseFreq   float64 `json:"pause_freq" yaml:"pause_freq"`
	PauseDur    float64 `json:"pause_dur" yaml:"pause_dur"`
	HNR         float64 `json:"hnr" yaml:"hnr"`
	Tilt        float64 `json:"tilt" yaml:"tilt"`
	Jitter      float64 `json:"jitter" yaml:"jitter"`
	Shimmer     float64 `json:"shimmer" yaml:"shimmer"`
}

type Temporal struct {
	Change        float64 `json:"change" yaml:"change"`
	LoudnessTrend float64 `json:"loudness_trend" yaml:"loudness_trend"`
	Escalation    float64 `json:"escalation" yaml:"escalation"`
}

type Core struct {
	Dominance float64 `json:"dominance" yaml:"dominance"`
	Coherence float64 `json:"coherence" yaml:"coherence"`
	Stability float64 `json:"stability" yaml:"stability"`
	Fluency   float64 `json:"fluency" yaml:"fluency"`
}

// VoiceCharacter holds the reported character values. Softness and Tension
// here are not the values used for ranking; see Ranking.
type VoiceCharacter struct {
	Softness       float64 `json:"softness" yaml:"softness"`
	Tension        float64 `json:"tension" yaml:"tension"`
	Hesitation     float64 `json:"hesitation" yaml:"hesitation"`
	Expressiveness float64 `json:"expressiveness" yaml:"expressiveness"`
	Presence       float64 `json:"presence" yaml:"presence"`
	Effort         float64 `json:"effort" yaml:"effort"`
}

type Affective struct {
	Arousal         float64 `json:"arousal" yaml:"arousal"`
	Aggression      float64 `json:"aggression" yaml:"aggression"`
	MasculineCoding float64 `json:"masculine_coding" yaml:"masculine_coding"`
	FeminineCoding  float64 `json:"feminine_coding" yaml:"feminine_coding"`
}

// Dimension is one ranked candidate for the primary pattern.
type Dimension struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// VisualParams is the visual state at finalization, used for replay when
// the history is empty.
type VisualParams struct {
	Mode    motion.State `json:"mode" yaml:"mode"`
	Size    float64      `json:"size" yaml:"size"`
	Scatter float64      `json:"scatter" yaml:"scatter"`
}
