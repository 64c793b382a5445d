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
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/speech-profile-tools/internal/log"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/store"
)

var cfgFile string
var databasePath string
var logLevel string
var displayWidth float64
var displayHeight float64
var sendgridApiKey string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "speech-profile-tools",
	Short: "Profiles speech from per-tick spectral analyzer data",
	Long: `Turns a stream of analyzer ticks (loudness, spectral centroid, band energies)
into motion states for a visualizer and an end-of-session profile report,
and keeps an archive of saved reports.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.speech-profile-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./speech-profile.db", "Path to the SQLite archive")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log_level", "info", "Log level (debug, info, warn, error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.PersistentFlags().Float64Var(
		&displayWidth, "display_width", motion.DefaultGeometry.Width, "Width of the visualizer display")
	viper.BindPFlag("display_width", rootCmd.PersistentFlags().Lookup("display_width"))

	rootCmd.PersistentFlags().Float64Var(
		&displayHeight, "display_height", motion.DefaultGeometry.Height, "Height of the visualizer display")
	viper.BindPFlag("display_height", rootCmd.PersistentFlags().Lookup("display_height"))

	rootCmd.PersistentFlags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	var from string
	rootCmd.PersistentFlags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".speech-profile-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".speech-profile-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func openStore(dbPath string) (*store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("openStore: %w", err)
	}
	return s, nil
}

// geometry is the configured display size, falling back to the default for
// unset or non-positive values.
func geometry() motion.Geometry {
	g := motion.Geometry{
		Width:  viper.GetFloat64("display_width"),
		Height: viper.GetFloat64("display_height"),
	}
	if g.Width <= 0 {
		g.Width = motion.DefaultGeometry.Width
	}
	if g.Height <= 0 {
		g.Height = motion.DefaultGeometry.Height
	}
	return g
}

func newLogger() zerolog.Logger {
	return log.Stderr(viper.GetString("log_level"))
}

// parseIndex parses a 0-based archive index argument.
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid archive index %q: must be a non-negative integer", arg)
	}
	return index, nil
}
