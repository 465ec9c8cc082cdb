package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/terry-li-hm/open-webui-db-analyzer/config"
	"github.com/terry-li-hm/open-webui-db-analyzer/report"
)

// ConfigCmd manages the analyzer configuration file.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage analyzer configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ~/.webui-analyzer/config.toml",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return report.OutputJSON(cfg)
}
