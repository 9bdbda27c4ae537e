package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"clipcatch/internal/config"
	"clipcatch/internal/downloader"
	"clipcatch/internal/library"
	"clipcatch/internal/pipeline"
	"clipcatch/internal/progress"
	"clipcatch/internal/trimmer"
	"clipcatch/internal/util/deps"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitTrimError     = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clipcatch",
		Short:         "Download videos and trim them to shareable clips",
		Long:          "ClipCatch downloads a video from a pasted URL via yt-dlp and can cut a time range out of it with ffmpeg. The usual surface is the web page served by 'clipcatch serve'; fetch/trim subcommands cover one-shot terminal use.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("data-dir", "", "Base directory for downloads/ and trimmed/ (default: XDG data dir)")
	root.PersistentFlags().String("addr", "localhost:8080", "Web UI listen address")
	root.PersistentFlags().String("cookies", "", "Cookie file handed to the extraction tool for restricted content")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("ffmpeg", "", "Path to ffmpeg")
	root.PersistentFlags().String("ffprobe", "", "Path to ffprobe")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")

	_ = config.Init(root)

	root.AddCommand(newServeCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newTrimCmd())
	root.AddCommand(newLsCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// env bundles everything a command needs to run operations.
type env struct {
	settings config.Settings
	lib      *library.Library
	service  *pipeline.Service
	tracker  *progress.Tracker
	logger   *slog.Logger
}

// buildEnv resolves configuration, locates the external tools, and wires the
// pipeline with the given reporter.
func buildEnv(needDownloader, needFFmpeg bool, reporter progress.Reporter) (*env, error) {
	settings, err := config.Resolve()
	if err != nil {
		return nil, &ExitError{Code: ExitCLIError, Err: err}
	}

	lib, err := library.New(settings.DownloadsDir, settings.TrimmedDir)
	if err != nil {
		return nil, &ExitError{Code: ExitCLIError, Err: err}
	}

	var dlPath, ffmpegPath, ffprobePath string
	if needDownloader {
		dlPath, err = deps.FindDownloader(settings.DLBinary)
		if err != nil {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
	}
	if needFFmpeg {
		ffmpegPath, err = deps.FindFFmpeg(settings.FFmpegPath)
		if err != nil {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
		ffprobePath, err = deps.FindFFprobe(settings.FFprobePath)
		if err != nil {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
	}

	if reporter == nil {
		reporter = progress.Discard
	}

	fetcher := downloader.New(dlPath, settings.DownloadsDir,
		downloader.WithCookieFile(settings.CookieFile),
		downloader.WithVerbose(settings.Verbose),
		downloader.WithReporter(reporter),
	)
	trim := trimmer.New(ffmpegPath, ffprobePath, settings.TrimmedDir,
		trimmer.WithVerbose(settings.Verbose),
		trimmer.WithReporter(reporter),
	)
	svc := pipeline.New(
		pipeline.WithFetcher(fetcher),
		pipeline.WithTrimmer(trim),
		pipeline.WithLibrary(lib),
		pipeline.WithReporter(reporter),
	)

	return &env{
		settings: settings,
		lib:      lib,
		service:  svc,
		logger:   newLogger(settings.LogJSON),
	}, nil
}

func newLogger(jsonOut bool) *slog.Logger {
	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
