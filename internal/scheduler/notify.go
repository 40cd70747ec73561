package scheduler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/raphaelgruber/wellkeep/internal/models"
)

// DesktopNotifier shows a desktop notification for each fired reminder and
// always prints to the terminal as well. Desktop delivery is best-effort:
// on platforms without a notification daemon only the terminal line appears.
type DesktopNotifier struct {
	out    io.Writer
	logger *slog.Logger
}

// NewDesktopNotifier creates a notifier writing its terminal output to out.
func NewDesktopNotifier(out io.Writer, logger *slog.Logger) *DesktopNotifier {
	return &DesktopNotifier{out: out, logger: logger}
}

func (n *DesktopNotifier) Notify(reminder models.ReminderView) {
	title := "Reminder"
	if reminder.Type == models.ReminderTypeMedicine {
		title = "Medicine reminder"
	}

	if err := beeep.Notify(title, reminder.Title, ""); err != nil {
		n.logger.Debug("desktop notification failed", "error", err)
	}

	fmt.Fprintf(n.out, "🔔 %s  %s (%s)\n", reminder.Time, reminder.Title, reminder.Type)
}
