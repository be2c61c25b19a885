package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"hexzero/experiments/metrics"
	"hexzero/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MCTS is a tree-parallel PUCT search over canonical boards guided by an Oracle.
// Concurrent calls to Search run one after another.
type MCTS struct {
	mu         sync.Mutex
	game       Game
	oracle     game.Oracle
	goroutines int
	duration   time.Duration
	episodes   int
	cPuct      float64
	metrics    metrics.Collector
	last       metrics.SearchMetric
}

var _ game.Searcher = (*MCTS)(nil)

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCPuct(cPuct float64) Option {
	return func(m *MCTS) {
		if cPuct > 0 {
			m.cPuct = cPuct
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(g Game, oracle game.Oracle, goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		game:       g,
		oracle:     oracle,
		goroutines: max(1, goroutines),
		cPuct:      CPuct,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// ActionProbabilities runs budget simulations (the configured episodes or
// duration when budget <= 0) and returns a distribution over real actions.
func (m *MCTS) ActionProbabilities(board *game.Board, player game.Player, budget int, temperature float64) ([]float64, error) {
	return m.Search(context.Background(), board, player, budget, temperature)
}

// Search is ActionProbabilities with cancellation.
func (m *MCTS) Search(ctx context.Context, board *game.Board, player game.Player, budget int, temperature float64) ([]float64, error) {
	if rows, _ := m.game.BoardSize(); board == nil || board.Size() != rows {
		return nil, fmt.Errorf("%w: board does not match a game of size %d", game.ErrContractViolation, rows)
	}
	if m.game.GameEnded(board, player) != 0 {
		return nil, ErrGameOver
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	canonical := m.game.CanonicalForm(board, player)
	root := &node{}

	m.metrics.Start(m.goroutines)
	var err error
	switch {
	case budget > 0:
		err = m.iterate(ctx, root, canonical, budget)
	case m.episodes > 0:
		err = m.iterate(ctx, root, canonical, m.episodes)
	default:
		err = m.countdown(ctx, root, canonical)
	}
	m.last = m.metrics.Complete()
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("episodes", m.last.Episodes).
		Int("oracle_calls", m.last.OracleCalls).
		Dur("duration", m.last.Duration).
		Msg("search completed")

	probs, err := applyTemperature(root.counts(m.game.ActionSize()), temperature)
	if err != nil {
		return nil, err
	}
	return m.game.OriginalPolicy(probs, player)
}

// Metrics returns the statistics of the most recent search.
func (m *MCTS) Metrics() metrics.SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

func (m *MCTS) iterate(ctx context.Context, root *node, canonical *game.Board, episodes int) error {
	task := make(chan struct{}, episodes)
	for i := 0; i < episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		group.Go(func() error {
			for range task {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := m.simulate(root, canonical); err != nil {
					return err
				}
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return group.Wait()
}

func (m *MCTS) countdown(ctx context.Context, root *node, canonical *game.Board) error {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
					if err := m.simulate(root, canonical); err != nil {
						return err
					}
					m.metrics.AddEpisode()
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return parent.Err()
}

// simulate descends from the root selecting by PUCT, expands the first
// unvisited position with the oracle and backs the value up the path,
// negating it at every ply.
func (m *MCTS) simulate(root *node, canonical *game.Board) error {
	board := canonical
	current := root
	var path []step
	var value float64

	for {
		leaf, v, err := current.evaluate(board, m.game, m.oracle, m.metrics)
		if err != nil {
			abandon(path)
			return err
		}
		if leaf {
			value = v
			break
		}

		action, child := current.selectChild(m.cPuct)
		path = append(path, step{node: current, action: action})

		next, player, err := m.game.NextState(board, game.White, action)
		if err != nil {
			abandon(path)
			return fmt.Errorf("expanding action %d: %w", action, err)
		}
		board = m.game.CanonicalForm(next, player)
		current = child
	}

	for i := len(path) - 1; i >= 0; i-- {
		value = -value
		path[i].node.backup(path[i].action, value)
	}
	return nil
}

func abandon(path []step) {
	for _, s := range path {
		s.node.abandon(s.action)
	}
}

// applyTemperature turns visit counts into probabilities. Temperature 0 puts
// all mass on the most visited action; otherwise counts are raised to 1/T.
func applyTemperature(counts []float64, temperature float64) ([]float64, error) {
	probs := make([]float64, len(counts))
	if temperature <= 0 {
		best, bestCount := -1, 0.0
		for a, c := range counts {
			if c > bestCount {
				best, bestCount = a, c
			}
		}
		if best < 0 {
			return nil, errors.New("no simulations reached the root's children")
		}
		probs[best] = 1
		return probs, nil
	}

	exponent := 1.0 / temperature
	sum := 0.0
	for a, c := range counts {
		probs[a] = math.Pow(c, exponent)
		sum += probs[a]
	}
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return applyTemperature(counts, 0)
	}
	for a := range probs {
		probs[a] /= sum
	}
	return probs, nil
}
