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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/ademuri/speech-profile-tools/internal/history"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/stats"
)

type ReplayConfig struct {
	DbPath   string
	Index    int
	Frames   int
	Speed    float64
	Fast     bool
	Geometry motion.Geometry
}

var replayCmd = &cobra.Command{
	Use:   "replay <index>",
	Short: "Replays the recorded visual history of an archived report",
	Long: `Prints one line per playback tick (tick, mode, size, scatter, y), cycling through
the report's history. By default one full cycle is printed at 60 ticks per second.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if speed, _ := cmd.Flags().GetFloat64("speed"); speed <= 0 {
			return fmt.Errorf("--speed must be positive, got %v", speed)
		}
		if frames, _ := cmd.Flags().GetInt("frames"); frames < 0 {
			return fmt.Errorf("--frames must not be negative, got %d", frames)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		frames, _ := cmd.Flags().GetInt("frames")
		speed, _ := cmd.Flags().GetFloat64("speed")
		fast, _ := cmd.Flags().GetBool("fast")

		config := ReplayConfig{
			DbPath:   viper.GetString("database"),
			Index:    index,
			Frames:   frames,
			Speed:    speed,
			Fast:     fast,
			Geometry: geometry(),
		}
		if err := replay(cmd.Context(), config, os.Stdout); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Int("frames", 0, "Number of playback ticks to print (default one full cycle)")
	replayCmd.Flags().Float64("speed", history.DefaultReplaySpeed, "History samples advanced per playback tick")
	replayCmd.Flags().Bool("fast", false, "Print without pacing")
}

func replay(ctx context.Context, config ReplayConfig, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r, err := getArchived(config.DbPath, config.Index)
	if err != nil {
		return err
	}

	frames := config.Frames
	if frames == 0 {
		frames = r.ReplayCycle(config.Speed)
	}

	var limiter *rate.Limiter
	if !config.Fast {
		limiter = rate.NewLimiter(rate.Every(time.Second/stats.TicksPerSecond), 1)
	}

	fmt.Fprintf(out, "Replaying %s (%s), %d samples\n", r.ID, r.PrimaryPattern, len(r.History))
	for tick := 0; tick < frames; tick++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("pacing replay: %w", err)
			}
		}
		s := r.ReplayAt(tick, config.Speed, config.Geometry)
		fmt.Fprintf(out, "%d\t%s\t%d\t%d\t%d\n", tick, s.Mode, s.Size, s.Scatter, s.Y)
	}
	return nil
}
