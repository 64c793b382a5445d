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

	"github.com/ademuri/speech-profile-tools/internal/store"
)

// deleteArchiveCmd represents the deleteArchive command
var deleteArchiveCmd = &cobra.Command{
	Use:   "delete-archive <index>",
	Short: "Deletes an archived report by its index",
	Long:  `Deletes the report at <index> as shown by list-archive. Later reports move up by one.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err == nil {
			err = deleteArchive(viper.GetString("database"), index, os.Stdout)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteArchiveCmd)
}

func deleteArchive(dbPath string, index int, out io.Writer) error {
	db, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.Delete(index)
	if errors.Is(err, store.ErrNoEntry) {
		return fmt.Errorf("no archived report at index %d", index)
	}
	if err != nil {
		return fmt.Errorf("delete archive entry: %w", err)
	}

	fmt.Fprintf(out, "Deleted report %s (index %d)\n", id, index)
	return nil
}
