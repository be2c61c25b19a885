package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"

	"hexzero/game"

	"golang.org/x/exp/rand"
)

// OracleFunc adapts a plain function to the game.Oracle interface.
type OracleFunc func(canonical *game.Board) ([]float64, float64, error)

func (f OracleFunc) Evaluate(canonical *game.Board) ([]float64, float64, error) {
	return f(canonical)
}

// UniformOracle spreads the prior evenly over legal moves and values every
// position at 0.
type UniformOracle struct {
	Game game.Game
}

func (o UniformOracle) Evaluate(canonical *game.Board) ([]float64, float64, error) {
	return uniformPolicy(o.Game.ValidMoves(canonical)), 0, nil
}

func uniformPolicy(valid game.Mask) []float64 {
	policy := make([]float64, len(valid))
	count := float64(valid.Count())
	if count == 0 {
		return policy
	}
	for a, legal := range valid {
		if legal == 1 {
			policy[a] = 1 / count
		}
	}
	return policy
}

// RolloutOracle values a position by averaging random playouts, the classic
// network-free estimate. The prior is uniform over legal moves.
type RolloutOracle struct {
	game     game.Game
	rollouts int
	seed     atomic.Uint64
}

func NewRolloutOracle(g game.Game, rollouts int, seed uint64) *RolloutOracle {
	o := &RolloutOracle{game: g, rollouts: max(1, rollouts)}
	o.seed.Store(seed)
	return o
}

func (o *RolloutOracle) Evaluate(canonical *game.Board) ([]float64, float64, error) {
	// Each call draws its own source so concurrent searches never share one
	rng := rand.New(rand.NewSource(o.seed.Add(1)))

	total := 0.0
	for i := 0; i < o.rollouts; i++ {
		if game.RandomPlayout(canonical.Clone(), game.White, rng) == game.WhiteWin {
			total++
		} else {
			total--
		}
	}
	return uniformPolicy(o.game.ValidMoves(canonical)), total / float64(o.rollouts), nil
}

type evaluation struct {
	policy []float64
	value  float64
}

// CachedOracle memoizes another oracle by the exact grid contents.
type CachedOracle struct {
	mu     sync.RWMutex
	game   game.Game
	oracle game.Oracle
	cache  map[string]evaluation
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachedOracle(g game.Game, oracle game.Oracle) *CachedOracle {
	return &CachedOracle{
		game:   g,
		oracle: oracle,
		cache:  make(map[string]evaluation),
	}
}

func (o *CachedOracle) Evaluate(canonical *game.Board) ([]float64, float64, error) {
	key := o.game.StateKey(canonical)

	o.mu.RLock()
	cached, ok := o.cache[key]
	o.mu.RUnlock()
	if ok {
		o.hits.Add(1)
		return append([]float64(nil), cached.policy...), cached.value, nil
	}

	o.misses.Add(1)
	policy, value, err := o.oracle.Evaluate(canonical)
	if err != nil {
		return nil, 0, err
	}
	if len(policy) != o.game.ActionSize() {
		return nil, 0, fmt.Errorf("%w: oracle returned %d priors, want %d", game.ErrContractViolation, len(policy), o.game.ActionSize())
	}

	o.mu.Lock()
	o.cache[key] = evaluation{policy: append([]float64(nil), policy...), value: value}
	o.mu.Unlock()
	return policy, value, nil
}

// Stats returns the cache hits and misses so far.
func (o *CachedOracle) Stats() (hits, misses int64) {
	return o.hits.Load(), o.misses.Load()
}

func (o *CachedOracle) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.cache)
}
