package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipcatch/internal/config"
	"clipcatch/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp/youtube-dl, ffmpeg, ffprobe)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Resolve()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}

			dl, derr := deps.FindDownloader(settings.DLBinary)
			if derr != nil {
				return &ExitError{Code: ExitMissingDep, Err: derr}
			}
			ff, ferr := deps.FindFFmpeg(settings.FFmpegPath)
			if ferr != nil {
				return &ExitError{Code: ExitMissingDep, Err: ferr}
			}
			fp, perr := deps.FindFFprobe(settings.FFprobePath)
			if perr != nil {
				return &ExitError{Code: ExitMissingDep, Err: perr}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloader: %s\n", dl)
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg:     %s\n", ff)
			fmt.Fprintf(cmd.OutOrStdout(), "FFprobe:    %s\n", fp)
			fmt.Fprintf(cmd.OutOrStdout(), "Data dir:   %s\n", settings.DataDir)
			if settings.CookieFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cookies:    %s\n", settings.CookieFile)
			}
			return nil
		},
	}
}
