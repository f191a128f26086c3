package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hailam/hiveplay/internal/storage"
)

// FileName is the config file looked up in the config directory.
const FileName = "hiveplay.cfg.json"

// StorageSettings selects and locates the game archive.
type StorageSettings struct {
	Type       string `json:"type" mapstructure:"type"`
	Dir        string `json:"dir" mapstructure:"dir"`
	SQLitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string          `json:"logFormat" mapstructure:"logFormat"`
	Storage   StorageSettings `json:"storage" mapstructure:"storage"`
}

// Load sets default values, then reads the JSON config file from configDir
// if there is one. Environment variables prefixed HIVEPLAY_ override both,
// with dots in keys written as underscores (HIVEPLAY_STORAGE_TYPE).
func Load(configDir string) error {
	dbDir, err := storage.GetDatabaseDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	sqlitePath, err := storage.GetSQLitePath()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")

	viper.SetDefault("storage.type", storage.KindBadger)
	viper.SetDefault("storage.dir", dbDir)
	viper.SetDefault("storage.sqlitePath", sqlitePath)

	viper.SetEnvPrefix("HIVEPLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err = viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Get returns the current settings.
func Get() Settings {
	return Settings{
		LogLevel:  viper.GetString("logLevel"),
		LogFormat: viper.GetString("logFormat"),
		Storage: StorageSettings{
			Type:       viper.GetString("storage.type"),
			Dir:        viper.GetString("storage.dir"),
			SQLitePath: viper.GetString("storage.sqlitePath"),
		},
	}
}
