package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/ui"
	"clipcatch/internal/util/format"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fetch <url>",
		Short:         "Download one video into the downloads directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qualityStr, _ := cmd.Flags().GetString("quality")
			quality, err := model.ParseQuality(qualityStr)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			noUI, _ := cmd.Flags().GetBool("no-ui")

			req := model.DownloadRequest{URL: args[0], Quality: quality}

			if noUI || !isTerminal() {
				e, err := buildEnv(true, false, newPlainReporter())
				if err != nil {
					return err
				}
				df, _, derr := e.service.Download(cmd.Context(), req, "")
				if derr != nil {
					return &ExitError{Code: ExitDownloadError, Err: derr}
				}
				fmt.Printf("Saved: %s (%s)\n", df.Path, format.HumanizeBytes(df.Bytes))
				return nil
			}

			err = ui.Run(cmd.Context(), args[0], func(ctx context.Context, rp progress.Reporter) error {
				e, err := buildEnv(true, false, rp)
				if err != nil {
					return err
				}
				_, _, derr := e.service.Download(ctx, req, "")
				return derr
			})
			if err != nil {
				var ee *ExitError
				if errors.As(err, &ee) {
					return ee
				}
				return &ExitError{Code: ExitDownloadError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().String("quality", string(model.QualityBest), "Quality preference: best, highest, lowest")
	cmd.Flags().Bool("no-ui", false, "Disable the progress view; use plain textual output")
	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// plainReporter prints progress lines without any terminal control, for
// non-TTY output and --no-ui.
type plainReporter struct {
	lastPercent float64
}

func newPlainReporter() *plainReporter {
	return &plainReporter{lastPercent: -1}
}

func (r *plainReporter) Update(u progress.Update) {
	if u.Percent < 0 || u.Percent < r.lastPercent+5 {
		return
	}
	r.lastPercent = u.Percent
	fmt.Fprintf(os.Stderr, "%s %.0f%%\n", u.Stage, u.Percent)
}

func (r *plainReporter) Log(progress.Log) {}

func (r *plainReporter) Result(res progress.Result) {
	if res.Err != nil {
		return // the command prints the error through its exit path
	}
}
