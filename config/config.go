package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/somnia-network/govauth/core"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Sweep  SweepConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	MessageTemplate string        `mapstructure:"message_template"`
	ChallengeTTL    time.Duration `mapstructure:"challenge_ttl"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

type SweepConfig struct {
	Interval time.Duration
}

type RedisConfig struct {
	// URL enables the redis stream event publisher when set.
	URL string
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from an optional config.yaml in the working
// directory or at path, with GOVAUTH_-prefixed environment variables taking
// precedence over both file values and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("auth.message_template", core.DefaultMessageTemplate)
	v.SetDefault("auth.challenge_ttl", 300*time.Second)
	v.SetDefault("auth.session_ttl", 24*time.Hour)
	v.SetDefault("sweep.interval", 5*time.Minute)
	v.SetDefault("redis.url", "")
	v.SetDefault("logger.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("GOVAUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
