package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/models"
)

var (
	reminderTime string
	reminderType string
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage daily reminders",
}

var reminderAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a daily reminder",
	Long: `Add a reminder that fires every day at a clock time.

Examples:
  wellkeep reminder add "Vitamin D" --time 08:00
  wellkeep reminder add "Iron" --time 21:30 --type medicine`,
	Args: cobra.ExactArgs(1),
	RunE: runReminderAdd,
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reminders",
	RunE:  runReminderList,
}

var reminderEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setReminderEnabled(args[0], true)
	},
}

var reminderDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a reminder without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setReminderEnabled(args[0], false)
	},
}

var reminderRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runReminderRm,
}

func init() {
	reminderAddCmd.Flags().StringVarP(&reminderTime, "time", "t", "", "clock time in HH:MM (required)")
	reminderAddCmd.Flags().StringVar(&reminderType, "type", "", "reminder type: medicine or task")
	_ = reminderAddCmd.MarkFlagRequired("time")

	reminderCmd.AddCommand(reminderAddCmd)
	reminderCmd.AddCommand(reminderListCmd)
	reminderCmd.AddCommand(reminderEnableCmd)
	reminderCmd.AddCommand(reminderDisableCmd)
	reminderCmd.AddCommand(reminderRmCmd)
}

func runReminderAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	key, err := api.CreateReminder(ctx, models.ReminderInput{
		Title: args[0],
		Time:  reminderTime,
		Type:  reminderType,
	})
	if err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}

	fmt.Println(okStyle.Render("Added ") + key)
	return nil
}

func runReminderList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	reminders, err := api.ListReminders(ctx)
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders yet.")
		return nil
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Reminders (%d):", len(reminders))))
	for _, reminder := range reminders {
		state := okStyle.Render("on ")
		if !reminder.Enabled {
			state = dimStyle.Render("off")
		}
		fmt.Printf("%s  %s  %-30s %s  %s\n",
			state, reminder.Time, reminder.Title, dimStyle.Render(reminder.Type), dimStyle.Render(reminder.ID))
	}
	return nil
}

func setReminderEnabled(id string, enabled bool) error {
	ctx := context.Background()

	if err := api.UpdateReminder(ctx, id, map[string]any{"enabled": enabled}); err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	if enabled {
		fmt.Println(okStyle.Render("Enabled ") + id)
	} else {
		fmt.Println(dimStyle.Render("Disabled ") + id)
	}
	return nil
}

func runReminderRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := api.DeleteReminder(ctx, args[0]); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	fmt.Println("Deleted " + args[0])
	return nil
}
