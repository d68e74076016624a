package config

import (
	_ "embed"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"jobtrack-engine/internal/domain"
)

//go:embed default.yml
var DefaultYAML []byte

const FileName = "config.yml"

type Config struct {
	App struct {
		Port         int  `yaml:"port" json:"port"`
		RequireToken bool `yaml:"require_token" json:"require_token"`
		// AllowedOrigins are extra browser origins trusted beyond loopback
		// pages and extensions.
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	Log struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`

	Fetch struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		MaxBodyBytes      int64   `yaml:"max_body_bytes" json:"max_body_bytes"`
	} `yaml:"fetch" json:"fetch"`

	Board struct {
		Columns        []string          `yaml:"columns" json:"columns"`
		Colors         map[string]string `yaml:"colors" json:"colors"`
		DefaultWidth   int               `yaml:"default_width" json:"default_width"`
		MinWidth       int               `yaml:"min_width" json:"min_width"`
		MaxWidth       int               `yaml:"max_width" json:"max_width"`
		NewColumnColor string            `yaml:"new_column_color" json:"new_column_color"`
	} `yaml:"board" json:"board"`

	Backup struct {
		Enabled      bool `yaml:"enabled" json:"enabled"`
		EveryMinutes int  `yaml:"every_minutes" json:"every_minutes"`
	} `yaml:"backup" json:"backup"`
}

// Default parses the embedded default config.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML, &cfg); err != nil {
		panic("config: embedded default is invalid: " + err.Error())
	}
	return cfg
}

// Load reads path over the defaults, so missing keys keep default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c Config) BackupInterval() time.Duration {
	return time.Duration(c.Backup.EveryMinutes) * time.Minute
}

// BoardDefaults converts the board section for the store.
func (c Config) BoardDefaults() domain.BoardDefaults {
	colors := make(map[string]string, len(c.Board.Colors))
	for k, v := range c.Board.Colors {
		colors[k] = v
	}
	return domain.BoardDefaults{
		Columns:        append([]string(nil), c.Board.Columns...),
		Colors:         colors,
		DefaultWidth:   c.Board.DefaultWidth,
		MinWidth:       c.Board.MinWidth,
		MaxWidth:       c.Board.MaxWidth,
		NewColumnColor: c.Board.NewColumnColor,
	}
}
