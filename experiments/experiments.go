package experiments

import (
	"context"
	"fmt"

	"hexzero/engine"
	"hexzero/experiments/metrics"
	"hexzero/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Score tallies the results of one agent over an experiment.
type Score struct {
	ID     int
	Games  int
	Wins   int
	Losses int
}

// Result is everything an experiment produced.
type Result struct {
	Dir         string // Where the CSV files were written, empty when not stored
	Scores      map[int]*Score
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// RunRoundRobin plays every pair of agents against each other, games times
// per pair, alternating colors, and stores the records under output.
func RunRoundRobin(ctx context.Context, h *game.Hex, configs []metrics.AgentConfig, games int, output string) (*Result, error) {
	matchUps := [][]metrics.AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, []metrics.AgentConfig{configs[i], configs[j]})
		}
	}
	return runExperiment(ctx, h, "round_robin", configs, matchUps, games, output)
}

func runExperiment(ctx context.Context, h *game.Hex, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int, output string) (*Result, error) {
	result := &Result{Scores: make(map[int]*Score, len(configs))}
	for _, config := range configs {
		result.Scores[config.ID] = &Score{ID: config.ID}
	}

	log.Info().Msgf("starting %s experiment...", name)

	seed := uint64(0)
	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate colors so neither agent keeps the first-move advantage
			white, black := matchup[0], matchup[1]
			if i%2 == 1 {
				white, black = black, white
			}
			seed++

			outcome, gameMetric, moveMetrics, err := runGame(ctx, h, white, black, seed)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			id := uuid.New()
			result.GameRecords = append(result.GameRecords, metrics.GameRecord{
				ID:         id,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}
			result.tally(white.ID, black.ID, outcome)

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(matchUps), i+1, games, outcome)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if output == "" {
		return result, nil
	}
	dir, err := writeResults(output, name, configs, result)
	if err != nil {
		return nil, err
	}
	result.Dir = dir
	return result, nil
}

func (r *Result) tally(white, black int, outcome game.Outcome) {
	if white == black {
		r.Scores[white].Games++
		return
	}
	winner, loser := white, black
	if outcome == game.BlackWin {
		winner, loser = black, white
	}
	r.Scores[white].Games++
	r.Scores[black].Games++
	r.Scores[winner].Wins++
	r.Scores[loser].Losses++
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, h *game.Hex, white, black metrics.AgentConfig, seed uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	whiteAgent, err := createAgent(h, white, seed)
	if err != nil {
		return game.NoWinner, metrics.GameMetric{}, nil, err
	}
	blackAgent, err := createAgent(h, black, seed+1<<32)
	if err != nil {
		return game.NoWinner, metrics.GameMetric{}, nil, err
	}
	e := engine.NewLocalEngine(h, whiteAgent, blackAgent)

	return e.Run(ctx)
}

// writeResults writes the experiment metadata and results as CSV files.
func writeResults(output, name string, configs []metrics.AgentConfig, result *Result) (string, error) {
	writer, err := metrics.NewWriter(output, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.GameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
