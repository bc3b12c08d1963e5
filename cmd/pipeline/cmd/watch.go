package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/deck-scribe/internal/watcher"
)

// newWatchCmd runs a batch and then keeps processing new presentations
func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process the input directory, then watch it for new presentations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			// Watch before the first batch so decks added while it runs are
			// queued instead of missed
			w, err := watcher.New(a.cfg.Paths.Input, a.processor.ProcessFile, a.logger, a.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			if _, err := a.processor.Run(ctx); err != nil {
				a.logger.Error(ctx, "Batch could not start: %v", err)
				return err
			}

			a.logger.Info(ctx, "Watching %s for new presentations. Press Ctrl+C to stop", a.cfg.Paths.Input)
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			a.logger.Info(ctx, "Pipeline stopped")
			return nil
		},
	}
}
