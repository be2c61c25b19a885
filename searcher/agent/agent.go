package agent

import (
	"context"

	"hexzero/experiments/metrics"
	"hexzero/game"
)

type Agent interface {
	// FindMove returns an action on the real board and performance metrics (if collected) from the search
	FindMove(ctx context.Context, board *game.Board, player game.Player) (int, metrics.SearchMetric, error)
}
