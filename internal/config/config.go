package config

import (
	"fmt"
	"strings"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/validator"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "TTT"

type Config struct {
	Games        int            `mapstructure:"games" validate:"min=1"`
	Workers      int            `mapstructure:"workers" validate:"min=0"`
	PlayerOne    bot.Difficulty `mapstructure:"player-one" validate:"omitempty,difficulty"`
	PlayerTwo    bot.Difficulty `mapstructure:"player-two" validate:"omitempty,difficulty"`
	Show         bool           `mapstructure:"show"`
	LogLevel     string         `mapstructure:"log-level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	OtelEndpoint string         `mapstructure:"otel-endpoint"`
	TraceStdout  bool           `mapstructure:"trace-stdout"`
	Opening      []int          `mapstructure:"opening" validate:"max=9,dive,min=0,max=8"`
}

// Custom reports whether the players were chosen explicitly. Without them the
// default pair of batches is played.
func (c *Config) Custom() bool {
	return c.PlayerOne != "" || c.PlayerTwo != ""
}

// NewFlagSet declares every command line flag with its default.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Int("games", 1000, "games per batch")
	fs.Int("workers", 0, "parallel games, 0 means one per CPU")
	fs.String("player-one", "", "X strategy: easy, medium, hard or hard-plain")
	fs.String("player-two", "", "O strategy: easy, medium, hard or hard-plain")
	fs.Bool("show", false, "play a single perfect-play game and print every board")
	fs.String("log-level", "warn", "debug, info, warn or error")
	fs.String("otel-endpoint", "", "OTLP gRPC collector address, e.g. otel-collector:4317")
	fs.Bool("trace-stdout", false, "pretty-print spans to stderr")
	fs.IntSlice("opening", nil, "cells played before the strategies take over, e.g. 0,4")
	fs.String("config", "", "optional config file (yaml, json or toml)")
	return fs
}

// Load resolves the configuration from, in increasing priority, flag
// defaults, the config file, TTT_* environment variables and flags set on
// the command line.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
