package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ademuri/speech-profile-tools/internal/analyzer"
	"github.com/ademuri/speech-profile-tools/internal/features"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/report"
)

var (
	voicedTick = features.Raw{VolumeLevel: 0.03, CentroidHz: 1500, LowEnergy: 150, MidEnergy: 180, HighEnergy: 40}
	quietTick  = features.Raw{VolumeLevel: 0.001, CentroidHz: 300, LowEnergy: 5, MidEnergy: 3, HighEnergy: 1}
)

func getTestDbPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "archive.db")
}

// ticks builds a CSV tick stream from runs of (tick, count).
func ticks(t *testing.T, runs ...interface{}) *bytes.Buffer {
	t.Helper()
	var all []features.Raw
	for i := 0; i < len(runs); i += 2 {
		raw := runs[i].(features.Raw)
		for n := 0; n < runs[i+1].(int); n++ {
			all = append(all, raw)
		}
	}
	var buf bytes.Buffer
	if err := analyzer.Write(&buf, all); err != nil {
		t.Fatalf("analyzer.Write() error: %v", err)
	}
	return &buf
}

func testAnalyzeConfig(dbPath string, source report.SourceKind) AnalyzeConfig {
	return AnalyzeConfig{
		DbPath:   dbPath,
		Source:   source,
		Format:   formatYAML,
		Geometry: motion.DefaultGeometry,
		Logger:   zerolog.Nop(),
	}
}

// archiveReports saves n file-session reports to dbPath.
func archiveReports(t *testing.T, dbPath string, n int) {
	t.Helper()
	config := testAnalyzeConfig(dbPath, report.File)
	config.Save = true
	for i := 0; i < n; i++ {
		var out bytes.Buffer
		if _, err := analyze(context.Background(), config, ticks(t, voicedTick, 90, quietTick, 30), &out); err != nil {
			t.Fatalf("analyze() error: %v", err)
		}
	}
}
