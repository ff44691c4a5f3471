// Package config reads the server settings from flags, falling back to CHESS_* environment
// variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr                string
	AllowOrigins        string
	TimeControl         time.Duration
	MatchmakingInterval time.Duration
	LogLevel            log.Level
}

// Origins splits AllowOrigins the way the websocket origin check wants it.
func (c *Config) Origins() []string {
	origins := []string{}
	for _, origin := range strings.Split(c.AllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func Load(args []string) (*Config, error) {
	timeControl, err := getenvDuration("CHESS_CLOCK", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	interval, err := getenvDuration("CHESS_MATCHMAKING_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	var level string
	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS and websocket origins")
	fs.DurationVar(&cfg.TimeControl, "clock", timeControl, "starting time on each player's clock")
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", interval, "how often queued players are paired")
	fs.StringVar(&level, "log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.TimeControl <= 0 {
		return nil, fmt.Errorf("%w: clock must be positive, got %s", ErrInvalidConfig, cfg.TimeControl)
	}
	if cfg.MatchmakingInterval <= 0 {
		return nil, fmt.Errorf("%w: matchmaking interval must be positive, got %s", ErrInvalidConfig, cfg.MatchmakingInterval)
	}
	if len(cfg.Origins()) == 0 {
		return nil, fmt.Errorf("%w: at least one allowed origin is needed", ErrInvalidConfig)
	}
	if cfg.LogLevel, err = parseLevel(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func parseLevel(s string) (log.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
	}
	return level, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return d, nil
}
