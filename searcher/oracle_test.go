package searcher

import (
	"reflect"
	"testing"

	"hexzero/game"

	"github.com/stretchr/testify/require"
)

func TestUniformOracle(t *testing.T) {
	h := mustHex(t, 2)
	board := h.InitBoard()
	place(t, board, game.White, game.Position{Row: 1, Col: 1})

	policy, value, err := UniformOracle{Game: h}.Evaluate(board)

	require.NoError(t, err)
	require.Zero(t, value)
	require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3, 0}, policy, 1e-9)
}

func TestRolloutOracle(t *testing.T) {
	h := mustHex(t, 3)

	t.Run("white about to win values positively", func(t *testing.T) {
		board := h.InitBoard()
		place(t, board, game.White, game.Position{Row: 0, Col: 0}, game.Position{Row: 0, Col: 1})
		oracle := NewRolloutOracle(h, 200, 1)

		policy, value, err := oracle.Evaluate(board)

		require.NoError(t, err)
		require.Len(t, policy, h.ActionSize())
		require.Greater(t, value, 0.0)
		require.LessOrEqual(t, value, 1.0)
	})

	t.Run("value stays in range", func(t *testing.T) {
		oracle := NewRolloutOracle(h, 0, 7)

		_, value, err := oracle.Evaluate(h.InitBoard())

		require.NoError(t, err)
		require.Contains(t, []float64{-1, 1}, value, "A single rollout is either a win or a loss")
	})
}

func TestCachedOracle(t *testing.T) {
	h := mustHex(t, 2)

	t.Run("hitting the cache on the same grid", func(t *testing.T) {
		calls := 0
		inner := OracleFunc(func(b *game.Board) ([]float64, float64, error) {
			calls++
			return []float64{0.1, 0.2, 0.3, 0.4}, 0.5, nil
		})
		oracle := NewCachedOracle(h, inner)
		board := h.InitBoard()

		first, v1, err := oracle.Evaluate(board)
		require.NoError(t, err)
		second, v2, err := oracle.Evaluate(board.Clone())
		require.NoError(t, err)

		require.Equal(t, 1, calls)
		require.Equal(t, first, second)
		require.Equal(t, v1, v2)
		hits, misses := oracle.Stats()
		require.Equal(t, int64(1), hits)
		require.Equal(t, int64(1), misses)
		require.Equal(t, 1, oracle.Len())
	})

	t.Run("cached policy is not aliased", func(t *testing.T) {
		inner := OracleFunc(func(b *game.Board) ([]float64, float64, error) {
			return []float64{0.25, 0.25, 0.25, 0.25}, 0, nil
		})
		oracle := NewCachedOracle(h, inner)
		board := h.InitBoard()

		policy, _, err := oracle.Evaluate(board)
		require.NoError(t, err)
		policy[0] = 99

		again, _, err := oracle.Evaluate(board)
		require.NoError(t, err)
		require.Equal(t, 0.25, again[0])
	})

	t.Run("not caching contract violations", func(t *testing.T) {
		inner := OracleFunc(func(b *game.Board) ([]float64, float64, error) {
			return []float64{1}, 0, nil
		})
		oracle := NewCachedOracle(h, inner)

		_, _, err := oracle.Evaluate(h.InitBoard())

		require.ErrorIs(t, err, game.ErrContractViolation)
		require.Zero(t, oracle.Len())
	})
}

func TestLocksStayInternal(t *testing.T) {
	for _, typ := range []reflect.Type{reflect.TypeOf(&MCTS{}), reflect.TypeOf(&CachedOracle{})} {
		t.Run(typ.String(), func(t *testing.T) {
			for _, name := range []string{"Lock", "Unlock", "RLock", "RUnlock"} {
				_, ok := typ.MethodByName(name)
				require.False(t, ok, "%s is exported", name)
			}
		})
	}
}
