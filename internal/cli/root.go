// Package cli provides the command-line interface for wellkeep.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/client"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	serverURL string
	authToken string

	// Global API client
	api *client.Client
)

// Styles shared across commands.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wellkeep",
	Short: "Personal wellness journal",
	Long: `Wellkeep tracks your moods, daily reminders and photo memories
against a wellkeep server.

The server URL and auth token come from --server/--token or the
WELLKEEP_SERVER_URL and WELLKEEP_AUTH_TOKEN env vars.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api = client.New(serverURL, authToken)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token")

	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(reminderCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)

	rootCmd.SetErrPrefix(alertStyle.Render("Error:"))
}
