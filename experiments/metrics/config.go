package metrics

import "time"

const (
	KindMCTS   = "mcts"
	KindRandom = "random"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID         int           `yaml:"id"`
	Kind       string        `yaml:"kind"`
	Goroutines int           `yaml:"goroutines,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`
	Episodes   int           `yaml:"episodes,omitempty"`
	Oracle     string        `yaml:"oracle,omitempty"`
	Rollouts   int           `yaml:"rollouts,omitempty"`
}
