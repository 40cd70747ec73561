package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/scheduler"
)

var watchRefresh time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch reminders and notify when they fire",
	Long: `Watch polls the server's reminder list and fires a desktop
notification (plus a terminal line) whenever an enabled reminder's
clock time comes around. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", 5*time.Minute, "how often to re-fetch reminders")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := api.Health(ctx); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	notifier := scheduler.NewDesktopNotifier(os.Stdout, logger)
	sched := scheduler.New(api, notifier, logger, scheduler.Options{
		RefreshInterval: watchRefresh,
	})

	sched.Start(ctx)
	fmt.Println(dimStyle.Render("Watching reminders, Ctrl-C to stop..."))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	fmt.Println("\nStopped.")
	return nil
}
