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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/ademuri/speech-profile-tools/internal/analyzer"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/report"
	"github.com/ademuri/speech-profile-tools/internal/session"
	"github.com/ademuri/speech-profile-tools/internal/stats"
)

type AnalyzeConfig struct {
	DbPath   string
	Source   report.SourceKind
	Save     bool
	Realtime bool
	Format   string
	Geometry motion.Geometry
	Logger   zerolog.Logger
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Runs a session over analyzer ticks and prints its report",
	Long: `Reads analyzer ticks as CSV (volume_level,centroid_hz,low_energy,mid_energy,high_energy)
and runs them through the pipeline.

  --source live waits for a tick louder than the idle trigger before starting, and
  stops on its own after six seconds of silence.
  --source file starts on the first tick and stops at the end of the input.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := report.ParseSourceKind(viper.GetString("source")); !ok {
			return fmt.Errorf("invalid --source %q: must be \"live\" or \"file\"", viper.GetString("source"))
		}
		switch viper.GetString("format") {
		case formatYAML, formatTable:
		default:
			return fmt.Errorf("invalid --format %q: must be %q or %q", viper.GetString("format"), formatYAML, formatTable)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		source, _ := report.ParseSourceKind(viper.GetString("source"))
		config := AnalyzeConfig{
			DbPath:   viper.GetString("database"),
			Source:   source,
			Save:     viper.GetBool("save"),
			Realtime: viper.GetBool("realtime"),
			Format:   viper.GetString("format"),
			Geometry: geometry(),
			Logger:   newLogger(),
		}

		input := viper.GetString("input")
		var in io.Reader = os.Stdin
		if input != "" && input != "-" {
			f, err := os.Open(input)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			defer f.Close()
			in = f
		}

		if _, err := analyze(cmd.Context(), config, in, os.Stdout); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	var input string
	analyzeCmd.Flags().StringVarP(&input, "input", "i", "-", "CSV file of analyzer ticks, or - for stdin")
	viper.BindPFlag("input", analyzeCmd.Flags().Lookup("input"))

	var source string
	analyzeCmd.Flags().StringVar(&source, "source", string(report.File), "Session source: live or file")
	viper.BindPFlag("source", analyzeCmd.Flags().Lookup("source"))

	var save bool
	analyzeCmd.Flags().BoolVar(&save, "save", false, "Save the report to the archive")
	viper.BindPFlag("save", analyzeCmd.Flags().Lookup("save"))

	var realtime bool
	analyzeCmd.Flags().BoolVar(&realtime, "realtime", false, "Pace ticks at 60 per second")
	viper.BindPFlag("realtime", analyzeCmd.Flags().Lookup("realtime"))

	var format string
	analyzeCmd.Flags().StringVar(&format, "format", formatYAML, "Output format: yaml or table")
	viper.BindPFlag("format", analyzeCmd.Flags().Lookup("format"))
}

// analyze runs one session over in and writes the report to out.
func analyze(ctx context.Context, config AnalyzeConfig, in io.Reader, out io.Writer) (*report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openStore(config.DbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	controller := session.NewController(config.Geometry, db, config.Logger)
	if config.Source == report.File {
		controller.Start(report.File)
	}

	var limiter *rate.Limiter
	if config.Realtime {
		limiter = rate.NewLimiter(rate.Every(time.Second/stats.TicksPerSecond), 1)
	}

	reader := analyzer.NewReader(in)
	for !controller.FinalizeRequested() {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			controller.Cancel()
			return nil, fmt.Errorf("reading ticks: %w", err)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				controller.Cancel()
				return nil, fmt.Errorf("pacing ticks: %w", err)
			}
		}
		controller.Tick(raw)
	}

	if controller.Phase() != session.Recording {
		return nil, errors.New("no session started: no tick exceeded the idle trigger level")
	}

	r, err := controller.Stop()
	if err != nil {
		return nil, err
	}

	if config.Save {
		id, err := db.Save(r)
		if err != nil {
			return nil, fmt.Errorf("saving report: %w", err)
		}
		config.Logger.Info().Str("id", id).Msg("report saved")
	}

	if err := writeReport(out, r, config.Format); err != nil {
		return nil, err
	}
	return r, nil
}
