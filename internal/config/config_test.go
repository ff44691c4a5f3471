package config

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := &Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		TimeControl:         10 * time.Minute,
		MatchmakingInterval: time.Second,
		LogLevel:            log.LevelInfo,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHESS_CLOCK", "3m")
	t.Setenv("CHESS_MATCHMAKING_INTERVAL", "250ms")
	t.Setenv("CHESS_LOG_LEVEL", "DEBUG")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := &Config{
		Addr:                ":8080",
		AllowOrigins:        "https://a.example, https://b.example",
		TimeControl:         3 * time.Minute,
		MatchmakingInterval: 250 * time.Millisecond,
		LogLevel:            log.LevelDebug,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Origins()); diff != "" {
		t.Errorf("Origins() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":8080")
	t.Setenv("CHESS_CLOCK", "3m")

	cfg, err := Load([]string{"-addr", ":9090", "-clock", "90s", "-log-level", "warn"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.TimeControl != 90*time.Second || cfg.LogLevel != log.LevelWarn {
		t.Errorf("Load = %+v, want the flag values", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad env duration", env: map[string]string{"CHESS_CLOCK": "forever"}},
		{name: "zero clock", args: []string{"-clock", "0s"}},
		{name: "negative interval", args: []string{"-matchmaking-interval", "-1s"}},
		{name: "no origins", args: []string{"-allow-origins", " , "}},
		{name: "unknown level", args: []string{"-log-level", "loud"}},
		{name: "unknown flag", args: []string{"-port", "80"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load(%v) error = %v, want %v", tt.args, err, ErrInvalidConfig)
			}
		})
	}
}
