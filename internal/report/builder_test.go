package report

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/stats"
)

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildTenSecondFixture(t *testing.T) {
	s := stats.Statistics{
		FrameCount:    600,
		VolSum:        300,
		SyllableCount: 20,
	}
	r := Build(Input{Stats: s, Source: Live, Timestamp: testTime})

	if !approx(r.Raw.Loudness, 0.5) {
		t.Errorf("loudness = %v, want 0.5", r.Raw.Loudness)
	}
	if r.Raw.PauseFreq != 0 || r.Raw.PauseDur != 0 {
		t.Errorf("pauseFreq/pauseDur = %v/%v, want 0/0", r.Raw.PauseFreq, r.Raw.PauseDur)
	}
	if !approx(r.Raw.SpeechRate, 0.5) {
		t.Errorf("speechRate = %v, want 0.5", r.Raw.SpeechRate)
	}
	if r.Raw.HNR != 1 {
		t.Errorf("hnr = %v, want 1", r.Raw.HNR)
	}
	if !approx(r.Core.Dominance, 0.825) {
		t.Errorf("dominance = %v, want 0.825", r.Core.Dominance)
	}
	if !approx(r.Core.Fluency, 0.85) {
		t.Errorf("fluency = %v, want 0.85", r.Core.Fluency)
	}
	if r.Duration != 10 {
		t.Errorf("duration = %d, want 10", r.Duration)
	}
	if r.Type != "LIVE INTERSECTION" {
		t.Errorf("type = %q", r.Type)
	}
	if !r.Timestamp.Equal(testTime) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, testTime)
	}
}

func TestBuildIdentifiers(t *testing.T) {
	ids := []string{"lvi_00", "lvi_01"}

	live := Build(Input{Source: Live, ExistingCount: CountPrefix(ids, Live)})
	if live.ID != "lvi_02" {
		t.Errorf("live id = %q, want lvi_02", live.ID)
	}
	file := Build(Input{Source: File, ExistingCount: CountPrefix(ids, File)})
	if file.ID != "vr_00" {
		t.Errorf("file id = %q, want vr_00", file.ID)
	}
	if file.Type != "VOICE RECORD" {
		t.Errorf("file type = %q", file.Type)
	}
}

func TestNewIDPadding(t *testing.T) {
	tests := []struct {
		source SourceKind
		count  int
		want   string
	}{
		{Live, 0, "lvi_00"},
		{Live, 9, "lvi_09"},
		{File, 42, "vr_42"},
		{File, 123, "vr_123"},
	}
	for _, tt := range tests {
		if got := NewID(tt.source, tt.count); got != tt.want {
			t.Errorf("NewID(%v, %d) = %q, want %q", tt.source, tt.count, got, tt.want)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	in := Input{
		Stats:         randomStats(rand.New(rand.NewSource(7))),
		History:       []history.Sample{{Size: 8, Scatter: 1, Mode: motion.Drift, Y: 400}},
		Source:        File,
		ExistingCount: 3,
		Timestamp:     testTime,
		Final:         VisualParams{Mode: motion.Flow, Size: 9.5, Scatter: 0.2},
	}
	first, err := json.Marshal(Build(in))
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	second, err := json.Marshal(Build(in))
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("reports differ:\n%s\n%s", first, second)
	}
}

func TestBuildDoesNotAliasHistory(t *testing.T) {
	h := []history.Sample{{Size: 1}}
	r := Build(Input{History: h})
	h[0].Size = 99
	if r.History[0].Size != 1 {
		t.Error("report history aliases the caller's slice")
	}
}

func TestBuildDegenerateSession(t *testing.T) {
	r := Build(Input{Source: Live, Stats: stats.Statistics{SilenceFrames: 400, PauseCount: 1}})
	for name, v := range boundedValues(r) {
		if math.IsNaN(v) {
			t.Errorf("%s is NaN", name)
		}
	}
	if math.IsNaN(r.Temporal.LoudnessTrend) || r.Temporal.LoudnessTrend != 0 {
		t.Errorf("loudnessTrend = %v, want 0", r.Temporal.LoudnessTrend)
	}
	if r.PrimaryPattern == "" {
		t.Error("degenerate session has no primary pattern")
	}
	if r.Duration != 0 {
		t.Errorf("duration = %d, want 0", r.Duration)
	}
}

func TestBuildTrendUsesHalfMeans(t *testing.T) {
	s := stats.Statistics{
		FrameCount:  5,
		VolReadings: []float64{1, 1, 2, 2, 2},
	}
	r := Build(Input{Stats: s})
	if !approx(r.Temporal.LoudnessTrend, 1) {
		t.Errorf("loudnessTrend = %v, want 1", r.Temporal.LoudnessTrend)
	}
	if !approx(r.Temporal.Escalation, 2) {
		t.Errorf("escalation = %v, want 2", r.Temporal.Escalation)
	}
}

func TestBuildCharacterAndRankingAreDistinct(t *testing.T) {
	s := stats.Statistics{
		FrameCount:      60,
		VolSum:          12,
		PitchSum:        30,
		SpectralTiltSum: 24,
		LocalDevPitch:   3,
		LocalDevVol:     2,
	}
	r := Build(Input{Stats: s})

	if !approx(r.VoiceCharacter.Softness, 1-r.Raw.Loudness) {
		t.Errorf("softness = %v, want 1 - loudness", r.VoiceCharacter.Softness)
	}
	if r.VoiceCharacter.Tension != r.VoiceCharacter.Effort {
		t.Errorf("tension = %v, want effort %v", r.VoiceCharacter.Tension, r.VoiceCharacter.Effort)
	}
	var soft float64
	for _, d := range r.Ranking {
		if d.Name == PatternSoft {
			soft = d.Score
		}
	}
	if approx(soft, r.VoiceCharacter.Softness) {
		t.Errorf("ranking softness %v should differ from reported softness", soft)
	}
	if len(r.Ranking) != 5 {
		t.Fatalf("len(Ranking) = %d, want 5", len(r.Ranking))
	}
	if r.PrimaryPattern != r.Ranking[0].Name {
		t.Errorf("primary pattern %q is not the top ranking %q", r.PrimaryPattern, r.Ranking[0].Name)
	}
}

func TestBuildSummaryAndNonSpeech(t *testing.T) {
	r := Build(Input{Stats: stats.Statistics{FrameCount: 600, VolSum: 300, SyllableCount: 20}})
	if r.PrimaryPattern != PatternStable {
		t.Fatalf("primary pattern = %q, want %q", r.PrimaryPattern, PatternStable)
	}
	if want := "The interaction presents a stable / calm profile."; r.Summary != want {
		t.Errorf("summary = %q, want %q", r.Summary, want)
	}
	if r.NonSpeech != 0 {
		t.Errorf("nonSpeech = %v, want 0", r.NonSpeech)
	}
}

func TestRankTieKeepsInsertionOrder(t *testing.T) {
	got := rank([]Dimension{
		{Name: PatternExpressive, Score: 0.5},
		{Name: PatternDominant, Score: 0.7},
		{Name: PatternStable, Score: 0.7},
		{Name: PatternSoft, Score: 0.1},
		{Name: PatternTense, Score: 0.7},
	})
	want := []string{PatternDominant, PatternStable, PatternTense, PatternExpressive, PatternSoft}
	for i, d := range got {
		if d.Name != want[i] {
			t.Errorf("rank()[%d] = %q, want %q", i, d.Name, want[i])
		}
	}
}

func TestRankIsScaleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	names := []string{PatternExpressive, PatternDominant, PatternStable, PatternSoft, PatternTense}
	for i := 0; i < 500; i++ {
		dims := make([]Dimension, len(names))
		scaled := make([]Dimension, len(names))
		k := 0.01 + rng.Float64()*100
		for j, n := range names {
			// Quantized scores exercise ties.
			score := float64(rng.Intn(5)) / 4
			dims[j] = Dimension{Name: n, Score: score}
			scaled[j] = Dimension{Name: n, Score: score * k}
		}
		if a, b := rank(dims)[0].Name, rank(scaled)[0].Name; a != b {
			t.Fatalf("scale %v changed the primary pattern: %q vs %q", k, a, b)
		}
	}
}

func TestBuildBoundsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		r := Build(Input{Stats: randomStats(rng)})
		checkBounds(t, r)
	}
}

func FuzzBuildBounds(f *testing.F) {
	f.Add(300.0, 0.0, 0.0, 0.0, 0.0, 600, 0, 0, 20, 0.5, 0.5)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0, 0, 400, 1, 0, 0.0, 0.0)
	f.Add(1e9, 1e9, 1e9, 1e9, 1e9, 1, 1, 1, 1000, 5.0, 1.0)
	f.Fuzz(func(t *testing.T, volSum, pitchSum, tiltSum, devPitch, devVol float64,
		frames, silence, pauses, syllables int, vol, pitch float64) {
		for _, v := range []float64{volSum, pitchSum, tiltSum, devPitch, devVol, vol, pitch} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Skip()
			}
		}
		if frames < 0 || silence < 0 || pauses < 0 || syllables < 0 || frames > 1<<20 {
			t.Skip()
		}
		s := stats.Statistics{
			VolSum:          volSum,
			PitchSum:        pitchSum,
			SpectralTiltSum: tiltSum,
			LocalDevPitch:   devPitch,
			LocalDevVol:     devVol,
			FrameCount:      frames,
			SilenceFrames:   silence,
			PauseCount:      pauses,
			SyllableCount:   syllables,
		}
		for i := 0; i < frames%64; i++ {
			s.VolReadings = append(s.VolReadings, vol*float64(i%3))
			s.PitchReadings = append(s.PitchReadings, pitch*float64(i%2))
		}
		checkBounds(t, Build(Input{Stats: s}))
	})
}

func randomStats(rng *rand.Rand) stats.Statistics {
	frames := rng.Intn(2000)
	s := stats.Statistics{
		FrameCount:      frames,
		SilenceFrames:   rng.Intn(2000),
		PauseCount:      rng.Intn(50),
		SyllableCount:   rng.Intn(400),
		VolSum:          rng.Float64() * 5 * float64(frames+1),
		PitchSum:        rng.Float64() * float64(frames+1),
		SpectralTiltSum: rng.Float64() * 3 * float64(frames+1),
		LocalDevPitch:   rng.Float64() * float64(frames+1),
		LocalDevVol:     rng.Float64() * 5 * float64(frames+1),
	}
	for i := 0; i < frames; i++ {
		s.VolReadings = append(s.VolReadings, rng.Float64()*5)
		s.PitchReadings = append(s.PitchReadings, rng.Float64())
	}
	return s
}

func boundedValues(r *Report) map[string]float64 {
	m := map[string]float64{
		"raw.loudness":              r.Raw.Loudness,
		"raw.loudnessVar":           r.Raw.LoudnessVar,
		"raw.pitch":                 r.Raw.Pitch,
		"raw.pitchRange":            r.Raw.PitchRange,
		"raw.speechRate":            r.Raw.SpeechRate,
		"raw.pauseFreq":             r.Raw.PauseFreq,
		"raw.pauseDur":              r.Raw.PauseDur,
		"raw.hnr":                   r.Raw.HNR,
		"raw.tilt":                  r.Raw.Tilt,
		"raw.jitter":                r.Raw.Jitter,
		"raw.shimmer":               r.Raw.Shimmer,
		"core.dominance":            r.Core.Dominance,
		"core.coherence":            r.Core.Coherence,
		"core.stability":            r.Core.Stability,
		"core.fluency":              r.Core.Fluency,
		"affective.arousal":         r.Affective.Arousal,
		"affective.aggression":      r.Affective.Aggression,
		"affective.masculineCoding": r.Affective.MasculineCoding,
		"affective.feminineCoding":  r.Affective.FeminineCoding,
		"voice.softness":            r.VoiceCharacter.Softness,
		"voice.tension":             r.VoiceCharacter.Tension,
		"voice.hesitation":          r.VoiceCharacter.Hesitation,
		"voice.expressiveness":      r.VoiceCharacter.Expressiveness,
		"voice.presence":            r.VoiceCharacter.Presence,
		"voice.effort":              r.VoiceCharacter.Effort,
		"nonSpeech":                 r.NonSpeech,
	}
	for _, d := range r.Ranking {
		m["ranking."+d.Name] = d.Score
	}
	return m
}

func checkBounds(t *testing.T, r *Report) {
	t.Helper()
	for name, v := range boundedValues(r) {
		if math.IsNaN(v) || v < 0 || v > 1 {
			t.Fatalf("%s = %v, outside [0,1]", name, v)
		}
	}
}
