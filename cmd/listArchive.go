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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listArchiveCmd represents the listArchive command
var listArchiveCmd = &cobra.Command{
	Use:   "list-archive",
	Short: "Lists archived reports in the order they were saved",
	Long:  ``,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := listArchive(viper.GetString("database"), os.Stdout)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listArchiveCmd)
}

func listArchive(dbPath string, out io.Writer) error {
	db, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.List()
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Archive is empty.")
		return nil
	}

	fmt.Fprint(out, archiveTable(entries).String())
	return nil
}
