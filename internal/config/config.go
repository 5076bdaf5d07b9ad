// Package config provides YAML-based configuration loading for the
// solver, the player and the SSH server.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-bloxorz/internal/solver"
)

// Config is the complete application configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Play    PlayConfig    `yaml:"play"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// SolverConfig defines search defaults.
type SolverConfig struct {
	Method    string `yaml:"method"`     // dfs, bfs, dfs-path, bfs-path
	MaxStates int    `yaml:"max_states"` // 0 = unlimited
}

// PlayConfig defines interactive player parameters.
type PlayConfig struct {
	TickRate         int         `yaml:"tick_rate"`          // animation frames per second
	ReplayIntervalMS int         `yaml:"replay_interval_ms"` // delay between replayed moves
	Theme            ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds lipgloss colors (ANSI numbers or hex) per tile kind.
type ThemeConfig struct {
	Hard       string `yaml:"hard"`
	Soft       string `yaml:"soft"`
	Goal       string `yaml:"goal"`
	Bridge     string `yaml:"bridge"`
	Switch     string `yaml:"switch"`
	Teleporter string `yaml:"teleporter"`
	Block      string `yaml:"block"`
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig defines SSH server parameters.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LevelsConfig points at an optional directory of custom levels.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Field, e.Message)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := solver.ParseMethod(c.Solver.Method); err != nil {
		return ValidationError{Field: "solver.method", Message: err.Error()}
	}
	if c.Solver.MaxStates < 0 {
		return ValidationError{Field: "solver.max_states", Message: "must not be negative"}
	}
	if c.Play.TickRate <= 0 {
		return ValidationError{Field: "play.tick_rate", Message: "must be positive"}
	}
	if c.Play.ReplayIntervalMS <= 0 {
		return ValidationError{Field: "play.replay_interval_ms", Message: "must be positive"}
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return ValidationError{Field: "server.idle_timeout_minutes", Message: "must not be negative"}
	}
	return nil
}
