// Package config loads server settings from PROGRESSION_* environment variables
package config

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/progression-api/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "PROGRESSION_"

// Config holds server settings. Command-line flags override these values.
type Config struct {
	GRPCPort        int           `env:"GRPC_PORT" envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisTLS      bool   `env:"REDIS_TLS" envDefault:"false"`
	// RedisClusterAddrs switches to cluster mode; RedisAddr is then ignored
	RedisClusterAddrs []string `env:"REDIS_CLUSTER_ADDRS" envSeparator:","`

	BaseXP       int64   `env:"BASE_XP" envDefault:"1000"`
	XPMultiplier float64 `env:"XP_MULTIPLIER" envDefault:"1.5"`
	MaxLevel     int32   `env:"MAX_LEVEL" envDefault:"100"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom parses an explicit environment map instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges the engine and listener would otherwise reject later
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPCPort", int64(c.GRPCPort), 1, 65535, vb)
	if len(c.RedisClusterAddrs) == 0 {
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	} else {
		for _, addr := range c.RedisClusterAddrs {
			if strings.TrimSpace(addr) == "" {
				vb.Field("RedisClusterAddrs", "cannot contain empty addresses")
				break
			}
		}
		if c.RedisDB != 0 {
			vb.Field("RedisDB", "must be 0 in cluster mode")
		}
	}
	if c.BaseXP <= 0 {
		vb.Field("BaseXP", "must be positive")
	}
	switch {
	case math.IsNaN(c.XPMultiplier) || math.IsInf(c.XPMultiplier, 0):
		vb.Field("XPMultiplier", "must be a finite number")
	case c.XPMultiplier < 1:
		vb.Field("XPMultiplier", "must be at least 1")
	}
	if c.MaxLevel < 1 {
		vb.Field("MaxLevel", "must be at least 1")
	}
	if c.ShutdownTimeout <= 0 {
		vb.Field("ShutdownTimeout", "must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		vb.Field("LogLevel", err.Error())
	}

	return vb.Build()
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(c.LogLevel)))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}
