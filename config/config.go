// Package config loads the YAML configuration shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"hexzero/experiments/metrics"
	"hexzero/game"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	OracleUniform = "uniform"
	OracleRollout = "rollout"
)

type Config struct {
	BoardSize int            `yaml:"board_size"`
	Search    SearchConfig   `yaml:"search"`
	SelfPlay  SelfPlayConfig `yaml:"self_play"`
	Arena     ArenaConfig    `yaml:"arena"`
	Server    ServerConfig   `yaml:"server"`
	Store     StoreConfig    `yaml:"store"`
	Log       LogConfig      `yaml:"log"`
}

type SearchConfig struct {
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	CPuct      float64       `yaml:"c_puct"`
	Oracle     string        `yaml:"oracle"`
	Rollouts   int           `yaml:"rollouts"`
	Cache      bool          `yaml:"cache"`
	Seed       uint64        `yaml:"seed"`
}

type SelfPlayConfig struct {
	Games int `yaml:"games"`
	// Moves sampled at temperature 1 before switching to the most visited move
	TemperatureMoves int `yaml:"temperature_moves"`
}

type ArenaConfig struct {
	Games  int                   `yaml:"games"` // Per match up
	Output string                `yaml:"output"`
	Agents []metrics.AgentConfig `yaml:"agents"`
}

type ServerConfig struct {
	Addr    string        `yaml:"addr"`
	Timeout time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	Path       string `yaml:"path"`
	SyncWrites bool   `yaml:"sync_writes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

func Default() Config {
	return Config{
		BoardSize: 7,
		Search: SearchConfig{
			Goroutines: 4,
			Episodes:   400,
			CPuct:      1.0,
			Oracle:     OracleRollout,
			Rollouts:   4,
			Cache:      true,
			Seed:       1,
		},
		SelfPlay: SelfPlayConfig{
			Games:            10,
			TemperatureMoves: 8,
		},
		Arena: ArenaConfig{
			Games:  10,
			Output: "experiments",
			Agents: []metrics.AgentConfig{
				{ID: 0, Kind: metrics.KindRandom},
				{ID: 1, Kind: metrics.KindMCTS, Goroutines: 4, Episodes: 200, Oracle: OracleRollout, Rollouts: 4},
			},
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Path: "data/examples",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load starts from Default, overlays the YAML file at path (if any) and the
// HEXZERO_* environment variables, then validates the result.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	loadFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("HEXZERO_BOARD_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.BoardSize = i
		}
	}
	if v := os.Getenv("HEXZERO_EPISODES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Search.Episodes = i
		}
	}
	if v := os.Getenv("HEXZERO_GOROUTINES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Search.Goroutines = i
		}
	}
	if v := os.Getenv("HEXZERO_STORE_PATH"); v != "" {
		config.Store.Path = v
	}
	if v := os.Getenv("HEXZERO_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}

func (c Config) Validate() error {
	if c.BoardSize < game.MinSize || c.BoardSize > game.MaxSize {
		return fmt.Errorf("%w: board_size %d", game.ErrInvalidSize, c.BoardSize)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if c.SelfPlay.Games < 0 || c.SelfPlay.TemperatureMoves < 0 {
		return errors.New("self_play: games and temperature_moves must be >= 0")
	}
	if c.Arena.Games < 1 {
		return errors.New("arena: games must be >= 1")
	}
	ids := make(map[int]bool, len(c.Arena.Agents))
	for _, agent := range c.Arena.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("arena: duplicate agent id %d", agent.ID)
		}
		ids[agent.ID] = true
		if err := validateAgent(agent); err != nil {
			return fmt.Errorf("arena: agent %d: %w", agent.ID, err)
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

func (c SearchConfig) Validate() error {
	if c.Goroutines < 1 {
		return errors.New("goroutines must be >= 1")
	}
	if c.Episodes <= 0 && c.Duration <= 0 {
		return errors.New("must specify episodes or duration")
	}
	if c.CPuct <= 0 {
		return errors.New("c_puct must be > 0")
	}
	return validateOracle(c.Oracle, c.Rollouts)
}

func validateAgent(agent metrics.AgentConfig) error {
	switch agent.Kind {
	case metrics.KindRandom:
		return nil
	case metrics.KindMCTS:
		if agent.Goroutines < 1 {
			return errors.New("goroutines must be >= 1")
		}
		if agent.Episodes <= 0 && agent.Duration <= 0 {
			return errors.New("must specify episodes or duration")
		}
		return validateOracle(agent.Oracle, agent.Rollouts)
	}
	return fmt.Errorf("unknown kind %q", agent.Kind)
}

func validateOracle(oracle string, rollouts int) error {
	switch oracle {
	case OracleUniform:
		return nil
	case OracleRollout:
		if rollouts < 1 {
			return errors.New("rollouts must be >= 1")
		}
		return nil
	}
	return fmt.Errorf("unknown oracle %q", oracle)
}
