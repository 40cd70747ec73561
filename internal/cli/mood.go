package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/models"
)

var moodNote string

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Log and review moods",
}

var moodLogCmd = &cobra.Command{
	Use:   "log <emoji>",
	Short: "Log the current mood",
	Long: `Log a mood entry with the current timestamp.

Examples:
  wellkeep mood log 🙂
  wellkeep mood log 😢 --note "rough day"`,
	Args: cobra.ExactArgs(1),
	RunE: runMoodLog,
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all mood entries",
	RunE:  runMoodList,
}

func init() {
	moodLogCmd.Flags().StringVarP(&moodNote, "note", "n", "", "optional note")

	moodCmd.AddCommand(moodLogCmd)
	moodCmd.AddCommand(moodListCmd)
}

func runMoodLog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	key, err := api.CreateMood(ctx, models.Mood{
		Emoji:     args[0],
		Note:      moodNote,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("log mood: %w", err)
	}

	fmt.Println(okStyle.Render("Logged ") + key)
	return nil
}

func runMoodList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	moods, err := api.ListMoods(ctx)
	if err != nil {
		return fmt.Errorf("list moods: %w", err)
	}

	if len(moods) == 0 {
		fmt.Println("No moods logged yet.")
		return nil
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Moods (%d):", len(moods))))
	for _, mood := range moods {
		when := time.UnixMilli(mood.Timestamp).Format("2006-01-02 15:04")
		line := fmt.Sprintf("%s  %s", dimStyle.Render(when), mood.Emoji)
		if mood.Note != "" {
			line += "  " + mood.Note
		}
		fmt.Println(line)
	}
	return nil
}
