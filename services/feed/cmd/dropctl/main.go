package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scroll-feed/pkg/config"
	app "scroll-feed/services/feed/internal/app"

	"github.com/spf13/cobra"
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dropctl",
	Short: "Publish scheduled drops outside the feed read path",
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Promote every scheduled post that is due and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			_, drops := a.NewFeedUseCase()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			n, err := drops.PublishOverdue(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d drop(s)\n", n)
			return nil
		})
	},
}

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Promote due scheduled posts on an interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchInterval <= 0 {
			return fmt.Errorf("interval must be positive, got %s", watchInterval)
		}

		return withApp(func(a *app.App) error {
			_, drops := a.NewFeedUseCase()
			log := a.Logger()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(watchInterval)
			defer ticker.Stop()

			log.Info("Watching for due drops every %s", watchInterval)
			for {
				if _, err := drops.PublishOverdue(ctx, time.Now()); err != nil && ctx.Err() == nil {
					log.Error("Drop publish failed: %v", err)
				}

				select {
				case <-ctx.Done():
					log.Info("Drop watcher stopped")
					return nil
				case <-ticker.C:
				}
			}
		})
	},
}

func withApp(fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	return fn(a)
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Second, "how often to look for due drops")
	rootCmd.AddCommand(publishCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
