package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "webui.db")

	// Report defaults (match the historical report shape)
	v.SetDefault("report.top_users", 20)     // chats-per-user rows
	v.SetDefault("report.active_users", 15)  // last-active rows
	v.SetDefault("report.recent_days", 14)   // daily activity tail
	v.SetDefault("report.bar_width", 50)     // histogram bar width
	v.SetDefault("report.recent_changes", 10)

	// Export defaults
	v.SetDefault("export.path", "chats_export.json")
}

// BindEnvVars explicitly binds configuration to environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "WEBUI_ANALYZER_DATABASE_PATH")
	v.BindEnv("export.path", "WEBUI_ANALYZER_EXPORT_PATH")
}
