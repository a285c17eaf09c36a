// Ininicializing common application configuration
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Font   FontConfig   `mapstructure:"font"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

type ServerConfig struct {
	AppVersion     string        `mapstructure:"app_version"`
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Idle_timeout   time.Duration `mapstructure:"idle_timeout"`
	Env            string        `mapstructure:"environment"`
	Mode           string        `mapstructure:"mode"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	MaxImagePixels int64         `mapstructure:"max_image_pixels"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type FontConfig struct {
	Download        bool          `mapstructure:"download"`
	URL             string        `mapstructure:"url"`
	Path            string        `mapstructure:"path"`
	FallbackPath    string        `mapstructure:"fallback_path"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// CacheConfig configures the optional Redis cache of rendered images.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

const (
	DefaultFontURL      = "https://github.com/google/fonts/raw/main/ofl/montserrat/Montserrat-Bold.ttf"
	DefaultFontPath     = "/tmp/Montserrat-Bold.ttf"
	DefaultFallbackFont = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

// LoadConfig reads ./config/config.yaml when present. A missing file is not an
// error: every key has a default and can be overridden from the environment
// (server.port -> SERVER_PORT).
func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_body_bytes", int64(32<<20))
	v.SetDefault("server.max_image_pixels", int64(2*89478485))

	v.SetDefault("log.level", "info")

	// Font defaults
	v.SetDefault("font.download", true)
	v.SetDefault("font.url", DefaultFontURL)
	v.SetDefault("font.path", DefaultFontPath)
	v.SetDefault("font.fallback_path", DefaultFallbackFont)
	v.SetDefault("font.download_timeout", 15*time.Second)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 10*time.Minute)
}
