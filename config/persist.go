package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/terry-li-hm/open-webui-db-analyzer/errors"
)

// WriteDefault writes the default configuration as TOML to path, creating
// parent directories as needed. Fails if the file already exists, so a
// hand-edited config is never clobbered.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	defaults := Config{
		Database: DatabaseConfig{Path: "webui.db"},
		Report: ReportConfig{
			TopUsers:      20,
			ActiveUsers:   15,
			RecentDays:    14,
			BarWidth:      50,
			RecentChanges: 10,
		},
		Export: ExportConfig{Path: "chats_export.json"},
	}

	data, err := toml.Marshal(defaults)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}
