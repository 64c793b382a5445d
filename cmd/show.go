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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/speech-profile-tools/internal/report"
	"github.com/ademuri/speech-profile-tools/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Prints an archived report",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != formatYAML && format != formatTable {
			return fmt.Errorf("invalid --format %q: must be %q or %q", format, formatYAML, formatTable)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		index, err := parseIndex(args[0])
		if err == nil {
			err = show(viper.GetString("database"), index, format, os.Stdout)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().String("format", formatTable, "Output format: yaml or table")
}

func show(dbPath string, index int, format string, out io.Writer) error {
	r, err := getArchived(dbPath, index)
	if err != nil {
		return err
	}
	return writeReport(out, r, format)
}

// getArchived loads one report from the archive at dbPath.
func getArchived(dbPath string, index int) (*report.Report, error) {
	db, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	r, err := db.Get(index)
	if errors.Is(err, store.ErrNoEntry) {
		return nil, fmt.Errorf("no archived report at index %d", index)
	}
	if err != nil {
		return nil, fmt.Errorf("get archive entry: %w", err)
	}
	return r, nil
}
