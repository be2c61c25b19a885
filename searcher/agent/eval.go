package agent

import (
	"context"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, board *game.Board, player game.Player) (int, metrics.SearchMetric, error) {
	policy, err := a.mcts.Search(ctx, board, player, 0, 1)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return findMax(policy), a.mcts.Metrics(), nil
}

func findMax(policy []float64) int {
	maxAction := 0
	maxVisit := -1.0
	for action, visit := range policy {
		if visit > maxVisit {
			maxVisit = visit
			maxAction = action
		}
	}
	return maxAction
}
