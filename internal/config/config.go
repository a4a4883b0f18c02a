package config

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// GroupDatabase is the sqlite database holding groups defined outside
	// configuration files. Empty disables the group catalog.
	GroupDatabase string `json:"group_database" mapstructure:"group_database"`
	GroupQuery    string `json:"group_query" mapstructure:"group_query"`
	// RefreshSeconds is the interval of periodic catalog reloads.
	RefreshSeconds int  `json:"refresh_seconds" mapstructure:"refresh_seconds"`
	WatchDatabase  bool `json:"watch_database" mapstructure:"watch_database"`

	GraphAddress     string `json:"graph_address" mapstructure:"graph_address"`
	DiagnosticSource string `json:"diagnostic_source" mapstructure:"diagnostic_source"`
}

var defaultConfig = Config{
	GroupDatabase:    "",
	GroupQuery:       "SELECT name FROM groups ORDER BY name",
	RefreshSeconds:   300,
	WatchDatabase:    true,
	GraphAddress:     "127.0.0.1:7879",
	DiagnosticSource: "dae",
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// RefreshInterval is RefreshSeconds as a duration. Non-positive values
// disable periodic refreshes.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Load overlays v, typically the initializationOptions of an editor, on the
// defaults. Only fields present in v are overwritten.
func Load(v any) (Config, error) {
	return defaultConfig.Overlay(v)
}

// Overlay returns c with the fields present in v overwritten.
func (c Config) Overlay(v any) (Config, error) {
	if v == nil {
		return c, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal source: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}
	return c, nil
}

// LoadFromJSON reads JSON from r into a Config.
func LoadFromJSON(r io.Reader) (Config, error) {
	cfg := defaultConfig

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a JSON, YAML or TOML file and DAE_LSP_* environment
// variables on top of the defaults. An empty path reads only the
// environment.
func LoadFile(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("group_database", defaultConfig.GroupDatabase)
	v.SetDefault("group_query", defaultConfig.GroupQuery)
	v.SetDefault("refresh_seconds", defaultConfig.RefreshSeconds)
	v.SetDefault("watch_database", defaultConfig.WatchDatabase)
	v.SetDefault("graph_address", defaultConfig.GraphAddress)
	v.SetDefault("diagnostic_source", defaultConfig.DiagnosticSource)

	v.SetEnvPrefix("DAE_LSP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
