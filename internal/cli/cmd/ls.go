package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipcatch/internal/model"
	"clipcatch/internal/util/format"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "List downloaded and trimmed files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := buildEnv(false, false, nil)
			if err != nil {
				return err
			}

			downloads, err := e.lib.Downloads()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			trimmed, err := e.lib.Trimmed()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}

			printEntries(cmd, "Downloads", e.settings.DownloadsDir, downloads)
			printEntries(cmd, "Trimmed", e.settings.TrimmedDir, trimmed)
			return nil
		},
	}
}

func printEntries(cmd *cobra.Command, label, dir string, entries []model.LibraryEntry) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s):\n", label, dir)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "  (empty)")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-60s %s\n", e.Name, format.HumanizeBytes(e.Bytes))
	}
}
