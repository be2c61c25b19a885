package engine

import (
	"context"

	"hexzero/experiments/metrics"
	"hexzero/game"
)

// MaxMoves bounds any game: a board of the largest size is full by then.
const MaxMoves = game.MaxSize * game.MaxSize

type Engine interface {
	// Run plays a game till there's a winner and returns it with the game and per-move metrics
	Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}

// Update describes one move played by the engine.
type Update struct {
	Step   int
	Player game.Player
	Action int
	Move   string
	Hash   game.StateHash
}
