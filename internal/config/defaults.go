package config

import (
	_ "embed"
)

//go:embed defaults/bloxorz.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration.
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Method:    "bfs-path",
			MaxStates: 2_000_000,
		},
		Play: PlayConfig{
			TickRate:         30,
			ReplayIntervalMS: 250,
			Theme: ThemeConfig{
				Hard:       "245",
				Soft:       "214",
				Goal:       "46",
				Bridge:     "33",
				Switch:     "201",
				Teleporter: "51",
				Block:      "196",
			},
		},
		Storage: StorageConfig{
			DBPath: "~/.bloxorz/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKey:            ".ssh/bloxorz_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
