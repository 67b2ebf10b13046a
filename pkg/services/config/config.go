package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/generator"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "CSAT"

type Config struct {
	Target      float64         `mapstructure:"target"`
	CatalogPath string          `mapstructure:"catalog_path"`
	Log         LogConfig       `mapstructure:"log"`
	Server      ServerConfig    `mapstructure:"server"`
	Store       StoreConfig     `mapstructure:"store"`
	Generator   GeneratorConfig `mapstructure:"generator"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// MaxUploadMB bounds multipart upload bodies.
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

type StoreConfig struct {
	Path    string `mapstructure:"path"`
	Threads int    `mapstructure:"threads"`
}

type GeneratorConfig struct {
	Start        string  `mapstructure:"start"`
	End          string  `mapstructure:"end"`
	Seed         int64   `mapstructure:"seed"`
	Mean         float64 `mapstructure:"mean"`
	StdDev       float64 `mapstructure:"std_dev"`
	WeekendDelta float64 `mapstructure:"weekend_delta"`
}

func setDefaults(v *viper.Viper) {
	d := generator.DefaultSettings()

	v.SetDefault("target", 9.0)
	v.SetDefault("catalog_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("store.path", ":memory:")
	v.SetDefault("store.threads", 4)
	v.SetDefault("generator.start", d.Start.Format(time.DateOnly))
	v.SetDefault("generator.end", d.End.Format(time.DateOnly))
	v.SetDefault("generator.seed", d.Seed)
	v.SetDefault("generator.mean", d.Mean)
	v.SetDefault("generator.std_dev", d.StdDev)
	v.SetDefault("generator.weekend_delta", d.WeekendDelta)
}

// Load reads the YAML file at path, when given, over the built-in defaults.
// CSAT_ environment variables override both, e.g. CSAT_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Target <= 0 || c.Target > 10 {
		return &domain.ConfigError{Field: "target", Reason: fmt.Sprintf("%v is outside (0, 10]", c.Target)}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &domain.ConfigError{Field: "log.level", Reason: err.Error()}
	}
	if c.Server.MaxUploadMB <= 0 {
		return &domain.ConfigError{Field: "server.max_upload_mb", Reason: "must be positive"}
	}
	_, err := c.GeneratorSettings()
	return err
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// GeneratorSettings converts the generator section. Adjustment windows are
// not configurable and always use the defaults.
func (c *Config) GeneratorSettings() (generator.Settings, error) {
	start, err := time.Parse(time.DateOnly, c.Generator.Start)
	if err != nil {
		return generator.Settings{}, &domain.ConfigError{Field: "generator.start", Reason: err.Error()}
	}
	end, err := time.Parse(time.DateOnly, c.Generator.End)
	if err != nil {
		return generator.Settings{}, &domain.ConfigError{Field: "generator.end", Reason: err.Error()}
	}

	s := generator.Settings{
		Start:        start,
		End:          end,
		Seed:         c.Generator.Seed,
		Mean:         c.Generator.Mean,
		StdDev:       c.Generator.StdDev,
		WeekendDelta: c.Generator.WeekendDelta,
		Windows:      generator.DefaultWindows(),
	}
	if err := s.Validate(); err != nil {
		return generator.Settings{}, err
	}
	return s, nil
}
