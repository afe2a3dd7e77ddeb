package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/wheelibin/lumen/internal/constants"
)

type EventStream struct {
	Enabled  bool          `mapstructure:"enabled"`
	Path     string        `mapstructure:"path"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Listen            string        `mapstructure:"listen"`
	Database          string        `mapstructure:"database"`
	Server            string        `mapstructure:"server"`
	RequestTimeout    time.Duration `mapstructure:"requestTimeout"`
	AckTimeout        time.Duration `mapstructure:"ackTimeout"`
	MaxAttempts       int           `mapstructure:"maxAttempts"`
	ColorRefreshDelay time.Duration `mapstructure:"colorRefreshDelay"`
	LabelLength       int           `mapstructure:"labelLength"`
	EventStream       EventStream   `mapstructure:"eventStream"`
	Log               Log           `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("database", "lumen.db")
	v.SetDefault("server", constants.DefaultServer)
	v.SetDefault("requestTimeout", constants.DefaultRequestTimeout)
	v.SetDefault("ackTimeout", constants.DefaultAckTimeout)
	v.SetDefault("maxAttempts", constants.MaxDeliveryAttempts)
	v.SetDefault("colorRefreshDelay", constants.ColorRefreshDelay)
	v.SetDefault("labelLength", constants.MaxLabelLength)
	v.SetDefault("eventStream.enabled", false)
	v.SetDefault("eventStream.path", "/events")
	v.SetDefault("eventStream.debounce", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/lumen.log")
}

// ReadConfig loads lumen.{json,yaml,toml} from the standard locations, a
// missing file leaves every key at its default. Environment variables
// prefixed LUMEN_ override the file (LUMEN_EVENTSTREAM_ENABLED=true).
func ReadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("lumen")
	if len(paths) == 0 {
		paths = []string{"/etc/lumen/", "$HOME/.config/lumen/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("LUMEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// LogLevel maps the configured level name, unknown names mean info
func (c *Config) LogLevel() log.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
