package cmd

import (
	"testing"

	"github.com/spf13/viper"
)

func TestEmailRequiresFrom(t *testing.T) {
	// Reset viper
	viper.Reset()

	// Ensure from is empty
	viper.Set("from", "")

	err := emailCmd.PreRunE(emailCmd, []string{"0", "someone@example.com"})
	if err == nil {
		t.Error("Expected error when from is missing, got nil")
	} else if err.Error() != "required flag(s) \"from\" not set" {
		t.Errorf("Expected 'required flag(s) \"from\" not set', got %v", err)
	}

	viper.Set("from", "profiles@example.com")
	err = emailCmd.PreRunE(emailCmd, []string{"0", "someone@example.com"})
	if err != nil {
		t.Errorf("Expected nil when from is set, got %v", err)
	}
}

func TestAnalyzeValidatesSourceAndFormat(t *testing.T) {
	viper.Reset()

	tests := []struct {
		source  string
		format  string
		wantErr bool
	}{
		{"live", "yaml", false},
		{"file", "table", false},
		{"mic", "yaml", true},
		{"file", "json", true},
	}
	for _, tt := range tests {
		viper.Set("source", tt.source)
		viper.Set("format", tt.format)
		err := analyzeCmd.PreRunE(analyzeCmd, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("source %q format %q: PreRunE() error = %v, wantErr %v", tt.source, tt.format, err, tt.wantErr)
		}
	}
}

func TestReplayValidatesSpeed(t *testing.T) {
	defer replayCmd.Flags().Set("speed", "0.3")

	replayCmd.Flags().Set("speed", "0")
	if err := replayCmd.PreRunE(replayCmd, []string{"0"}); err == nil {
		t.Error("Expected error for zero speed, got nil")
	}

	replayCmd.Flags().Set("speed", "1.5")
	if err := replayCmd.PreRunE(replayCmd, []string{"0"}); err != nil {
		t.Errorf("Expected nil for speed 1.5, got %v", err)
	}
}

func TestParseIndex(t *testing.T) {
	if i, err := parseIndex("3"); err != nil || i != 3 {
		t.Errorf("parseIndex(3) = %d, %v", i, err)
	}
	for _, arg := range []string{"-1", "x", ""} {
		if _, err := parseIndex(arg); err == nil {
			t.Errorf("parseIndex(%q) succeeded", arg)
		}
	}
}
