// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mousehunt/internal/game"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the variable as an integer. Unset returns fallback.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetEnvFloat parses the variable as a float. Unset returns fallback.
func GetEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// GetEnvDuration parses the variable with time.ParseDuration ("50ms", "1s").
// Unset returns fallback.
func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// GameParams builds game tuning from MOUSEHUNT_* variables on top of
// game.DefaultParams, then validates the result.
func GameParams() (game.Params, error) {
	p := game.DefaultParams()

	var err error
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"MOUSEHUNT_MOTION_TICK", &p.MotionTick},
		{"MOUSEHUNT_COLLISION_INTERVAL", &p.CollisionInterval},
		{"MOUSEHUNT_MARKER_LIFETIME", &p.MarkerLifetime},
	}
	for _, d := range durations {
		if *d.dst, err = GetEnvDuration(d.key, *d.dst); err != nil {
			return p, err
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MOUSEHUNT_CATCH_RADIUS", &p.CatchRadius},
		{"MOUSEHUNT_CAT_OFFSET_X", &p.CatOffsetX},
		{"MOUSEHUNT_CAT_OFFSET_Y", &p.CatOffsetY},
		{"MOUSEHUNT_SPEED_PER_LEVEL", &p.SpeedPerLevel},
		{"MOUSEHUNT_MOUSE_SIZE", &p.MouseSize},
		{"MOUSEHUNT_ARENA_WIDTH", &p.DefaultWidth},
		{"MOUSEHUNT_ARENA_HEIGHT", &p.DefaultHeight},
	}
	for _, f := range floats {
		if *f.dst, err = GetEnvFloat(f.key, *f.dst); err != nil {
			return p, err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MOUSEHUNT_INITIAL_BATCH", &p.InitialBatch},
		{"MOUSEHUNT_BATCH_BASE", &p.BatchBase},
		{"MOUSEHUNT_BATCH_LEVEL_DIVISOR", &p.BatchLevelDivisor},
		{"MOUSEHUNT_BATCH_MAX", &p.BatchMax},
		{"MOUSEHUNT_CATCHES_PER_PROGRESS", &p.CatchesPerProgress},
	}
	for _, i := range ints {
		if *i.dst, err = GetEnvInt(i.key, *i.dst); err != nil {
			return p, err
		}
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// NewLogger creates the process logger writing to stderr at the level named
// by LOG_LEVEL (debug, info, warn, error). Unknown levels fall back to info.
func NewLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
