package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/cmd/webui-analyzer/commands"
	"github.com/terry-li-hm/open-webui-db-analyzer/logger"
)

var rootCmd = &cobra.Command{
	Use:   "webui-analyzer",
	Short: "Analyze Open WebUI SQLite databases",
	Long: `webui-analyzer — Offline analysis of Open WebUI SQLite databases.

Reads a webui.db file (always read-only) and reports on chat volume, user
activity, model usage, feedback satisfaction and data consistency.

Available commands:
  summary  - Database inventory plus chat volume (the default)
  chats    - Chat volume, per-user counts, message statistics
  users    - User totals, roles, last-active listing
  timeline - Monthly, hourly and recent daily activity
  models   - Chat counts per model
  feedback - Satisfaction rates and chat feedback coverage
  verify   - Consistency checks and data quality diagnostics
  export   - Export chats to JSON
  compare  - Cross-validate feedback against an exported JSON file
  all      - Every report in sequence
  config   - Manage analyzer configuration

Examples:
  webui-analyzer --db webui.db             # Summary + chat volume
  webui-analyzer --db webui.db feedback    # Satisfaction analysis
  webui-analyzer --db webui.db verify -v   # Checks with info logging
  webui-analyzer --db webui.db export --output chats.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	// Bare invocation matches the historical default: summary then chats.
	RunE:         commands.RunDefault,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the Open WebUI SQLite database (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit reports as JSON instead of terminal output")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.SummaryCmd)
	rootCmd.AddCommand(commands.ChatsCmd)
	rootCmd.AddCommand(commands.UsersCmd)
	rootCmd.AddCommand(commands.TimelineCmd)
	rootCmd.AddCommand(commands.ModelsCmd)
	rootCmd.AddCommand(commands.FeedbackCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.CompareCmd)
	rootCmd.AddCommand(commands.AllCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Cleanup()
		os.Exit(1)
	}
}
