package agent

import (
	"context"
	"sync"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent playing a uniformly random empty cell.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, board *game.Board, _ game.Player) (int, metrics.SearchMetric, error) {
	a.Lock()
	defer a.Unlock()

	pos, ok := game.RandomMove(board, a.rng)
	if !ok {
		return 0, metrics.SearchMetric{}, searcher.ErrGameOver
	}
	return board.Index(pos), metrics.SearchMetric{}, nil
}
