/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/speech-profile-tools/internal/report"
	"github.com/ademuri/speech-profile-tools/internal/store"
)

const (
	formatYAML  = "yaml"
	formatTable = "table"
)

// Table is a rendered section of output. The first row of results is the
// header.
type Table struct {
	results [][]string
	summary string
}

func (t Table) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(t.results[0])
	for _, row := range t.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if t.summary != "" {
		fmt.Fprintf(out, "%s\n", t.summary)
	}
	return out.String()
}

func archiveTable(entries []store.Entry) Table {
	results := [][]string{{"Index", "ID", "Type", "Timestamp", "Duration", "Primary Pattern"}}
	for _, e := range entries {
		results = append(results, []string{
			strconv.Itoa(e.Index),
			e.ID,
			e.Type(),
			e.Created.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%ds", e.Duration),
			e.PrimaryPattern,
		})
	}
	return Table{
		results: results,
		summary: fmt.Sprintf("%d archived report(s)", len(entries)),
	}
}

func param(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(v*100)))
}

func reportTables(r *report.Report) []Table {
	overview := Table{
		results: [][]string{
			{"Field", "Value"},
			{"ID", r.ID},
			{"Type", r.Type},
			{"Timestamp", r.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Duration", fmt.Sprintf("%ds", r.Duration)},
			{"Primary Pattern", r.PrimaryPattern},
		},
		summary: r.Summary,
	}

	raw := Table{results: [][]string{
		{"Parameter", "Value"},
		{"Loudness", param(r.Raw.Loudness)},
		{"Loudness Variability", param(r.Raw.LoudnessVar)},
		{"Pitch", param(r.Raw.Pitch)},
		{"Pitch Range", param(r.Raw.PitchRange)},
		{"Speech Rate", param(r.Raw.SpeechRate)},
		{"Pause Frequency", param(r.Raw.PauseFreq)},
		{"Pause Duration", param(r.Raw.PauseDur)},
		{"HNR", param(r.Raw.HNR)},
		{"Spectral Tilt", param(r.Raw.Tilt)},
		{"Jitter", param(r.Raw.Jitter)},
		{"Shimmer", param(r.Raw.Shimmer)},
	}}

	temporal := Table{results: [][]string{
		{"Temporal", "Value"},
		{"Change", param(r.Temporal.Change)},
		{"Loudness Trend", signed(r.Temporal.LoudnessTrend)},
		{"Escalation", signed(r.Temporal.Escalation)},
	}}

	core := Table{results: [][]string{
		{"Dimension", "Score"},
		{"Dominance", pct(r.Core.Dominance)},
		{"Coherence", pct(r.Core.Coherence)},
		{"Stability", pct(r.Core.Stability)},
		{"Fluency", pct(r.Core.Fluency)},
	}}

	voice := Table{results: [][]string{
		{"Voice Character", "Score"},
		{"Softness", pct(r.VoiceCharacter.Softness)},
		{"Tension", pct(r.VoiceCharacter.Tension)},
		{"Hesitation", pct(r.VoiceCharacter.Hesitation)},
		{"Expressiveness", pct(r.VoiceCharacter.Expressiveness)},
		{"Presence", pct(r.VoiceCharacter.Presence)},
		{"Effort", pct(r.VoiceCharacter.Effort)},
	}}

	affective := Table{
		results: [][]string{
			{"Affective", "Score"},
			{"Arousal", pct(r.Affective.Arousal)},
			{"Aggression", pct(r.Affective.Aggression)},
			{"Female-Coded", pct(r.Affective.FeminineCoding)},
			{"Male-Coded", pct(r.Affective.MasculineCoding)},
		},
		summary: fmt.Sprintf("Non-speech: %s", param(r.NonSpeech)),
	}

	ranking := Table{results: [][]string{{"Rank", "Pattern", "Score"}}}
	for i, d := range r.Ranking {
		ranking.results = append(ranking.results, []string{strconv.Itoa(i + 1), d.Name, param(d.Score)})
	}
	ranking.summary = fmt.Sprintf("%d history samples; final state %s", len(r.History), r.VisualParams.Mode)

	return []Table{overview, raw, temporal, core, voice, affective, ranking}
}

// writeReport renders r as YAML or as tables.
func writeReport(w io.Writer, r *report.Report, format string) error {
	switch format {
	case formatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return encoder.Close()
	case formatTable:
		for _, t := range reportTables(r) {
			if _, err := fmt.Fprintln(w, t.String()); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q: must be %q or %q", format, formatYAML, formatTable)
}
