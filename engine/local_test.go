package engine

import (
	"context"
	"testing"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"
	"hexzero/searcher/agent"

	"github.com/stretchr/testify/require"
)

/*
LocalEngine:
- random agents always finish with a winner (no draws)
- a searching agent beats a random one from a won position
- illegal moves end the game with an error
- cancellation stops the loop
*/

// scripted plays the given actions in order.
type scripted struct {
	actions []int
}

func (s *scripted) FindMove(_ context.Context, _ *game.Board, _ game.Player) (int, metrics.SearchMetric, error) {
	action := s.actions[0]
	s.actions = s.actions[1:]
	return action, metrics.SearchMetric{}, nil
}

func mustHex(t *testing.T, n int) *game.Hex {
	t.Helper()
	h, err := game.NewHex(n)
	require.NoError(t, err)
	return h
}

func TestLocalEngineRandomMatch(t *testing.T) {
	for _, n := range []int{2, 5, 11} {
		h := mustHex(t, n)

		for seed := uint64(0); seed < 5; seed++ {
			var observed int
			e := NewLocalEngine(h, agent.NewRandomAgent(seed), agent.NewRandomAgent(seed+100),
				WithObserver(func(Update, *game.Board) { observed++ }))

			outcome, gameMetric, moveMetrics, err := e.Run(context.Background())

			require.NoError(t, err)
			require.NotEqual(t, game.NoWinner, outcome)
			require.Equal(t, outcome.String(), gameMetric.Winner)
			require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
			require.Equal(t, len(moveMetrics), observed)
			require.Len(t, e.History(), len(moveMetrics))
			require.Equal(t, outcome, e.Board().Winner())
		}
	}
}

func TestLocalEngineRun(t *testing.T) {
	h := mustHex(t, 3)

	t.Run("alternating from the starting player", func(t *testing.T) {
		white := &scripted{actions: []int{0, 1, 2}}
		black := &scripted{actions: []int{3, 4, 8}}
		e := NewLocalEngine(h, white, black, WithStartingPlayer(game.Black))

		outcome, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.WhiteWin, outcome)
		require.Equal(t, int(game.Black), gameMetric.StartingPlayer)
		require.Len(t, moveMetrics, 6)
		moves := make([]string, len(moveMetrics))
		for i, mm := range moveMetrics {
			moves[i] = mm.Action
		}
		require.Equal(t, []string{"A2", "A1", "B2", "B1", "C3", "C1"}, moves)
		require.Equal(t, int(game.Black), moveMetrics[0].Player)
	})

	t.Run("searching agent converts a won position", func(t *testing.T) {
		board := h.InitBoard()
		require.NoError(t, board.Place(game.Position{Row: 0, Col: 0}, game.White))
		require.NoError(t, board.Place(game.Position{Row: 0, Col: 1}, game.White))
		mcts := searcher.NewMCTS(h, searcher.UniformOracle{Game: h}, 1, searcher.WithEpisodes(300))
		e := NewLocalEngine(h, agent.NewEvaluationAgent(mcts), agent.NewRandomAgent(1), WithBoard(board))

		outcome, _, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.WhiteWin, outcome)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "C1", moveMetrics[0].Action)
	})

	t.Run("rejecting an occupied cell", func(t *testing.T) {
		e := NewLocalEngine(h, &scripted{actions: []int{4}}, &scripted{actions: []int{4}})

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrCellOccupied)
	})

	t.Run("rejecting an action off the board", func(t *testing.T) {
		e := NewLocalEngine(h, &scripted{actions: []int{9}}, &scripted{})

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrOutOfRange)
	})

	t.Run("stopping on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocalEngine(h, agent.NewRandomAgent(1), agent.NewRandomAgent(2))

		_, _, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocalEngine(h, nil, agent.NewRandomAgent(1))
		})
	})
}
