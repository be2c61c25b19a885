package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hexzero/config"
	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"
	"hexzero/store"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, n int) *game.Hex {
	t.Helper()
	h, err := game.NewHex(n)
	require.NoError(t, err)
	return h
}

func TestRunRoundRobin(t *testing.T) {
	h := mustHex(t, 4)
	configs := []metrics.AgentConfig{
		{ID: 0, Kind: metrics.KindRandom},
		{ID: 1, Kind: metrics.KindRandom},
		{ID: 2, Kind: metrics.KindMCTS, Goroutines: 2, Episodes: 20, Oracle: config.OracleUniform},
	}

	t.Run("playing every pair with alternating colors", func(t *testing.T) {
		output := t.TempDir()

		result, err := RunRoundRobin(context.Background(), h, configs, 2, output)

		require.NoError(t, err)
		require.Len(t, result.GameRecords, 6, "3 pairs with 2 games each")
		require.Equal(t, 0, result.GameRecords[0].White)
		require.Equal(t, 1, result.GameRecords[1].White, "Colors should alternate")
		for _, score := range result.Scores {
			require.Equal(t, 4, score.Games)
			require.Equal(t, score.Games, score.Wins+score.Losses)
		}

		moves := 0
		for _, record := range result.GameRecords {
			require.NotEqual(t, "none", record.Winner)
			moves += record.TotalMoves
		}
		require.Len(t, result.MoveRecords, moves)

		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			_, err := os.Stat(filepath.Join(result.Dir, file))
			require.NoError(t, err)
		}
	})

	t.Run("skipping storage without an output directory", func(t *testing.T) {
		result, err := RunRoundRobin(context.Background(), h, configs[:2], 1, "")

		require.NoError(t, err)
		require.Empty(t, result.Dir)
	})

	t.Run("rejecting an unknown agent", func(t *testing.T) {
		_, err := RunRoundRobin(context.Background(), h, []metrics.AgentConfig{
			{ID: 0, Kind: metrics.KindRandom},
			{ID: 1, Kind: "oracle"},
		}, 1, "")

		require.Error(t, err)
	})
}

func TestRunThroughputExperiment(t *testing.T) {
	h := mustHex(t, 3)
	base := metrics.AgentConfig{Episodes: 10, Oracle: config.OracleUniform}

	result, err := RunThroughputExperiment(context.Background(), h, base, []int{1, 2}, 1, "")

	require.NoError(t, err)
	require.Len(t, result.GameRecords, 2)
	for _, record := range result.MoveRecords {
		require.Equal(t, 10, record.Episodes)
	}
	require.Equal(t, 1, result.Scores[1].Games)
	require.Equal(t, 1, result.Scores[2].Games)
}

func TestNewOracle(t *testing.T) {
	h := mustHex(t, 3)

	t.Run("wrapping in a cache", func(t *testing.T) {
		oracle, err := NewOracle(h, config.OracleRollout, 2, 1, true)

		require.NoError(t, err)
		require.IsType(t, &searcher.CachedOracle{}, oracle)
	})

	t.Run("unknown oracle", func(t *testing.T) {
		_, err := NewOracle(h, "network", 1, 1, false)

		require.Error(t, err)
	})
}

func TestSelfPlay(t *testing.T) {
	h := mustHex(t, 3)
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	defer st.Close()
	mcts, err := NewSearch(h, config.SearchConfig{Goroutines: 2, Episodes: 30, CPuct: 1, Oracle: config.OracleUniform})
	require.NoError(t, err)
	selfPlay := NewSelfPlay(h, mcts, st, 2, 5)
	ctx := context.Background()

	id, outcome, count, err := selfPlay.PlayGame(ctx)

	require.NoError(t, err)
	require.NotEqual(t, game.NoWinner, outcome)
	examples, err := st.Game(ctx, id)
	require.NoError(t, err)
	require.Len(t, examples, count)
	require.Zero(t, count%2, "Every position should be stored with its 180 degree rotation")

	winner, _ := outcome.Player()
	for _, e := range examples {
		mover := game.White
		if e.Step%2 == 1 {
			mover = game.Black
		}
		if mover == winner {
			require.Equal(t, 1.0, e.Value)
		} else {
			require.Equal(t, -1.0, e.Value)
		}
		require.InDelta(t, 1.0, sum(e.Policy), 1e-9)

		board, err := e.Position()
		require.NoError(t, err)
		for action, p := range e.Policy {
			if p > 0 {
				require.True(t, h.ValidMoves(board).Legal(action), "Policy mass only on empty cells")
			}
		}
	}

	total, err := selfPlay.Run(ctx, 2)
	require.NoError(t, err)
	stored, err := st.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, count+total, stored)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
