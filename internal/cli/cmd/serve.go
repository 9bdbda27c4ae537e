package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"clipcatch/internal/progress"
	"clipcatch/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "serve",
		Short:         "Serve the ClipCatch web page",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker := progress.NewTracker()
			e, err := buildEnv(true, true, tracker)
			if err != nil {
				return err
			}
			e.tracker = tracker

			server := web.NewServer(e.logger, e.service, e.lib, e.tracker,
				web.WithAddr(e.settings.Addr),
			)

			e.logger.Info("serving ClipCatch",
				"addr", e.settings.Addr,
				"downloads", e.settings.DownloadsDir,
				"trimmed", e.settings.TrimmedDir,
			)

			errCh := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
					return
				}
				errCh <- nil
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return &ExitError{Code: ExitCLIError, Err: err}
				}
				return nil
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			e.logger.Info("server shutdown complete")
			return nil
		},
	}
}
