package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mvellek/eventdash/internal/xtime"
	"github.com/mvellek/eventdash/server/database"
	"github.com/mvellek/eventdash/server/stats"
)

func LoadConfig(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := defaultConfig()
	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:              ":8090",
			RequestsPerSecond: 50,
			RequestBurst:      100,
			CacheMaxAge:       xtime.Duration(time.Minute),
		},
		Database: database.Config{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "password",
			Database: "eventdash",
			SSLMode:  "disable",
		},
		Stats: stats.Config{
			DefaultCapacity:          100,
			LowRegistrationThreshold: 10,
			MaxLimit:                 100,
			CacheSize:                128,
			CacheTTL:                 xtime.Duration(30 * time.Second),
		},
	}
}

type Config struct {
	Log      LogConfig       `toml:"log"`
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Stats    stats.Config    `toml:"stats"`
}

func (c Config) String() string {
	return fmt.Sprintf("Log: %s\nServer: %s\nDatabase: %s\nStats: %s",
		c.Log,
		c.Server,
		c.Database,
		c.Stats,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

type ServerConfig struct {
	Addr              string         `toml:"addr"`
	RequestsPerSecond float64        `toml:"requests_per_second"`
	RequestBurst      int            `toml:"request_burst"`
	CacheMaxAge       xtime.Duration `toml:"cache_max_age"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n RequestsPerSecond: %g\n RequestBurst: %d\n CacheMaxAge: %s",
		c.Addr,
		c.RequestsPerSecond,
		c.RequestBurst,
		c.CacheMaxAge,
	)
}
