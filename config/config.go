// Package config loads analyzer configuration from TOML files and the
// environment via Viper.
//
// Precedence (lowest to highest): defaults < ~/.webui-analyzer/config.toml
// < ./config.toml < WEBUI_ANALYZER_* environment variables < flags.
package config

// Config represents the analyzer configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Report   ReportConfig   `mapstructure:"report" toml:"report"`
	Export   ExportConfig   `mapstructure:"export" toml:"export"`
}

// DatabaseConfig configures the source SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// ReportConfig configures report rendering limits
type ReportConfig struct {
	TopUsers      int `mapstructure:"top_users" toml:"top_users"`      // rows in the chats-per-user table
	ActiveUsers   int `mapstructure:"active_users" toml:"active_users"`   // rows in the last-active table
	RecentDays    int `mapstructure:"recent_days" toml:"recent_days"`    // length of the daily activity tail
	BarWidth      int `mapstructure:"bar_width" toml:"bar_width"`      // max width of histogram bars
	RecentChanges int `mapstructure:"recent_changes" toml:"recent_changes"` // rows per table in the recent-changes report
}

// ExportConfig configures the chat JSON export
type ExportConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "webui.db" // Fallback default
	}
	return c.Database.Path
}
