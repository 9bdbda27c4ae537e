package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipcatch/internal/progress"
	"clipcatch/internal/ui"
	"clipcatch/internal/util/format"
)

func newTrimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "trim <file> <start-sec> <end-sec>",
		Short:         "Cut a time range out of a downloaded file",
		Long:          "Cut [start, end) seconds out of a file in the downloads directory, writing trimmed_<file> into the trimmed directory. The range must satisfy 0 <= start < end <= duration.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			start, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid start %q: %w", args[1], err)}
			}
			end, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid end %q: %w", args[2], err)}
			}
			noUI, _ := cmd.Flags().GetBool("no-ui")

			if noUI || !isTerminal() {
				e, err := buildEnv(false, true, newPlainReporter())
				if err != nil {
					return err
				}
				tf, _, terr := e.service.Trim(cmd.Context(), name, start, end, "")
				if terr != nil {
					return &ExitError{Code: ExitTrimError, Err: terr}
				}
				fmt.Printf("Saved: %s (%s)\n", tf.Path, format.HumanizeBytes(tf.Bytes))
				return nil
			}

			err = ui.Run(cmd.Context(), name, func(ctx context.Context, rp progress.Reporter) error {
				e, err := buildEnv(false, true, rp)
				if err != nil {
					return err
				}
				_, _, terr := e.service.Trim(ctx, name, start, end, "")
				return terr
			})
			if err != nil {
				var ee *ExitError
				if errors.As(err, &ee) {
					return ee
				}
				return &ExitError{Code: ExitTrimError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().Bool("no-ui", false, "Disable the progress view; use plain textual output")
	return cmd
}
