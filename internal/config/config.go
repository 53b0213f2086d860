package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration loaded from the environment.
type Config struct {
	// Host is the interface the server binds. The presenter is meant to
	// be reachable from the local machine only.
	Host string `env:"SLIDEPRESENTER_HOST" envDefault:"127.0.0.1"`

	// PortRangeStart is the first port the allocator probes.
	PortRangeStart int `env:"SLIDEPRESENTER_PORT_START" envDefault:"3080"`

	// PortRangeSize is how many sequential ports the allocator tries
	// before giving up.
	PortRangeSize int `env:"SLIDEPRESENTER_PORT_RANGE" envDefault:"100"`

	// RootDir is the workspace root containing output/ deck folders.
	RootDir string `env:"SLIDEPRESENTER_ROOT" envDefault:"."`

	// HistoryDBPath is the sqlite file recording presented decks.
	HistoryDBPath string `env:"SLIDEPRESENTER_DB" envDefault:"./data/presenter.db"`
}

// LoadConfig parses configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PortRangeSize <= 0 {
		return nil, fmt.Errorf("port range size must be positive, got %d", cfg.PortRangeSize)
	}
	return cfg, nil
}
