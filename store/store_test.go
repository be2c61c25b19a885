package store

import (
	"context"
	"errors"
	"testing"

	"hexzero/game"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, n int) *game.Hex {
	t.Helper()
	h, err := game.NewHex(n)
	require.NoError(t, err)
	return h
}

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewExamples(t *testing.T) {
	h := mustHex(t, 3)
	board := h.InitBoard()
	require.NoError(t, board.Place(game.Position{Row: 0, Col: 1}, game.White))
	policy := make([]float64, h.ActionSize())
	policy[2] = 1

	t.Run("one example per symmetry", func(t *testing.T) {
		examples, err := NewExamples(h, uuid.New(), 3, board, policy, -1)

		require.NoError(t, err)
		require.Len(t, examples, 2)
		require.Equal(t, board.Cells(), examples[0].Board)
		require.Equal(t, policy, examples[0].Policy)

		rotated, err := examples[1].Position()
		require.NoError(t, err)
		require.Equal(t, game.WhiteStone, rotated.At(game.Position{Row: 2, Col: 1}))
		require.Equal(t, 1.0, examples[1].Policy[6], "Policy should rotate with the board")
		for _, e := range examples {
			require.Equal(t, -1.0, e.Value)
			require.Equal(t, 3, e.Step)
		}
	})

	t.Run("rejecting a short policy", func(t *testing.T) {
		_, err := NewExamples(h, uuid.New(), 0, board, []float64{1}, 0)

		require.ErrorIs(t, err, game.ErrContractViolation)
	})
}

func TestStore(t *testing.T) {
	h := mustHex(t, 3)
	ctx := context.Background()

	record := func(t *testing.T, s *Store, id uuid.UUID, steps int) {
		t.Helper()
		board := h.InitBoard()
		policy := make([]float64, h.ActionSize())
		policy[4] = 1
		for step := 0; step < steps; step++ {
			examples, err := NewExamples(h, id, step, board, policy, 1)
			require.NoError(t, err)
			require.NoError(t, s.Put(ctx, examples))
		}
	}

	t.Run("reading back a game", func(t *testing.T) {
		s := openInMemory(t)
		id := uuid.New()
		record(t, s, id, 3)
		record(t, s, uuid.New(), 2)

		examples, err := s.Game(ctx, id)

		require.NoError(t, err)
		require.Len(t, examples, 6)
		for i, e := range examples {
			require.Equal(t, id, e.GameID)
			require.Equal(t, i/2, e.Step, "Examples should come back in move order")
			require.Equal(t, i%2, e.Symmetry)
		}

		count, err := s.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 10, count)
	})

	t.Run("scanning every example", func(t *testing.T) {
		s := openInMemory(t)
		record(t, s, uuid.New(), 2)

		seen := 0
		err := s.Scan(ctx, func(e Example) error {
			seen++
			board, err := e.Position()
			require.NoError(t, err)
			require.Equal(t, 3, board.Size())
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 4, seen)
	})

	t.Run("stopping a scan early", func(t *testing.T) {
		s := openInMemory(t)
		record(t, s, uuid.New(), 2)
		stop := errors.New("stop")

		err := s.Scan(ctx, func(Example) error { return stop })

		require.ErrorIs(t, err, stop)
	})

	t.Run("persisting across reopen", func(t *testing.T) {
		cfg := Config{Path: t.TempDir()}
		s, err := Open(cfg)
		require.NoError(t, err)
		id := uuid.New()
		record(t, s, id, 1)
		require.NoError(t, s.Close())

		s, err = Open(cfg)
		require.NoError(t, err)
		defer s.Close()
		examples, err := s.Game(ctx, id)
		require.NoError(t, err)
		require.Len(t, examples, 2)
	})

	t.Run("requiring a path", func(t *testing.T) {
		_, err := Open(Config{})

		require.Error(t, err)
	})
}
