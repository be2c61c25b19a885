package searcher

import (
	"fmt"
	"math"
	"sync"

	"hexzero/experiments/metrics"
	"hexzero/game"
)

// node holds the statistics of one canonical position. Edge values are from
// the perspective of the player to move at the node, which is always White on
// a canonical board.
type node struct {
	sync.Mutex
	expanded bool
	terminal float64 // GameEnded for the player to move, 0 while the game goes on
	priors   []float64
	valid    game.Mask
	children []*node
	visits   []int
	values   []float64
	total    int
}

type step struct {
	node   *node
	action int
}

// evaluate expands an unvisited node with the oracle. It returns leaf=true
// with the value of the position when the simulation stops here: on first
// expansion or on a finished game.
func (n *node) evaluate(board *game.Board, g Game, oracle game.Oracle, collector metrics.Collector) (leaf bool, value float64, err error) {
	n.Lock()
	defer n.Unlock()

	if n.expanded {
		if n.terminal != 0 {
			collector.AddTerminal()
			return true, n.terminal, nil
		}
		return false, 0, nil
	}

	if ended := g.GameEnded(board, game.White); ended != 0 {
		n.expanded = true
		n.terminal = ended
		collector.AddTerminal()
		return true, ended, nil
	}

	policy, value, err := oracle.Evaluate(board)
	collector.AddOracleCall()
	if err != nil {
		return false, 0, fmt.Errorf("oracle evaluation: %w", err)
	}
	if len(policy) != g.ActionSize() {
		return false, 0, fmt.Errorf("%w: oracle returned %d priors, want %d", game.ErrContractViolation, len(policy), g.ActionSize())
	}

	n.valid = g.ValidMoves(board)
	n.priors = maskPriors(policy, n.valid)
	n.children = make([]*node, len(policy))
	n.visits = make([]int, len(policy))
	n.values = make([]float64, len(policy))
	n.expanded = true
	return true, math.Max(-1, math.Min(1, value)), nil
}

// maskPriors zeroes illegal actions and renormalizes. An oracle putting no
// mass on legal actions falls back to a uniform prior over them.
func maskPriors(policy []float64, valid game.Mask) []float64 {
	priors := make([]float64, len(policy))
	sum := 0.0
	for i, p := range policy {
		if valid[i] == 1 && p > 0 {
			priors[i] = p
			sum += p
		}
	}
	if sum > 0 {
		for i := range priors {
			priors[i] /= sum
		}
		return priors
	}
	count := float64(valid.Count())
	for i := range priors {
		if valid[i] == 1 {
			priors[i] = 1 / count
		}
	}
	return priors
}

// selectChild picks the legal edge with the highest PUCT score and charges it
// a virtual loss so concurrent simulations spread over other edges.
func (n *node) selectChild(cPuct float64) (int, *node) {
	n.Lock()
	defer n.Unlock()

	score := newPUCT(cPuct, n.total)
	best := -1
	bestScore := math.Inf(-1)
	for a, legal := range n.valid {
		if legal == 0 {
			continue
		}
		if s := score.evaluate(n.values[a], n.visits[a], n.priors[a]); s > bestScore {
			bestScore = s
			best = a
		}
	}
	if best < 0 {
		panic("expanded node has no legal actions")
	}

	if n.children[best] == nil {
		n.children[best] = &node{}
	}
	n.applyLoss(best)
	return best, n.children[best]
}

func (n *node) applyLoss(action int) {
	n.visits[action]++
	n.values[action] -= VirtualLoss
	n.total++
}

func (n *node) reverseLoss(action int) {
	n.visits[action]--
	n.values[action] += VirtualLoss
	n.total--
}

// backup replaces the virtual loss on action with the simulation's value.
func (n *node) backup(action int, value float64) {
	n.Lock()
	defer n.Unlock()

	n.values[action] += VirtualLoss + value
}

func (n *node) abandon(action int) {
	n.Lock()
	defer n.Unlock()

	n.reverseLoss(action)
}

// counts returns a copy of the edge visit counts.
func (n *node) counts(size int) []float64 {
	n.Lock()
	defer n.Unlock()

	counts := make([]float64, size)
	for a, v := range n.visits {
		counts[a] = float64(v)
	}
	return counts
}
