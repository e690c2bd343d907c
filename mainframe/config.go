package mainframe

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig holds the values used for keys missing from config.toml.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			PoolSize: 3,
		},
		Web: WebConfig{Host: "0.0.0.0", Port: 8080},
		Progression: ProgressionConfig{
			StandardMultiplier: 1.0,
			PremiumMultiplier:  1.15,
			GlobalMultiplier:   1.0,
		},
		Catalog: CatalogConfig{Source: "embedded"},
	}
}

type Config struct {
	Log         LogConfig         `toml:"log"`
	DB          DBConfig          `toml:"db"`
	Web         WebConfig         `toml:"web"`
	Progression ProgressionConfig `toml:"progression"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Spaces      SpacesConfig      `toml:"spaces"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type WebConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type ProgressionConfig struct {
	StandardMultiplier float64 `toml:"standard_multiplier"`
	PremiumMultiplier  float64 `toml:"premium_multiplier"`
	GlobalMultiplier   float64 `toml:"global_multiplier"`
}

// CatalogConfig selects where the level table, achievement catalog and card
// catalog are read from: "embedded", "dir" or "spaces".
type CatalogConfig struct {
	Source string `toml:"source"`
	Dir    string `toml:"dir"`
}

type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}
