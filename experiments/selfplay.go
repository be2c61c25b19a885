package experiments

import (
	"context"
	"fmt"

	"hexzero/game"
	"hexzero/searcher"
	"hexzero/searcher/agent"
	"hexzero/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// SelfPlay plays a search against itself and records training examples.
type SelfPlay struct {
	game             *game.Hex
	mcts             *searcher.MCTS
	store            *store.Store
	temperatureMoves int
	rng              *rand.Rand
}

// NewSelfPlay samples the first temperatureMoves moves of every game in
// proportion to visit counts and plays the most visited move afterwards.
func NewSelfPlay(h *game.Hex, mcts *searcher.MCTS, st *store.Store, temperatureMoves int, seed uint64) *SelfPlay {
	return &SelfPlay{
		game:             h,
		mcts:             mcts,
		store:            st,
		temperatureMoves: temperatureMoves,
		rng:              rand.New(rand.NewSource(seed)),
	}
}

type pending struct {
	step      int
	player    game.Player
	canonical *game.Board
	policy    []float64
}

// PlayGame plays one game and stores its examples, valued from the
// perspective of the player to move once the winner is known.
func (s *SelfPlay) PlayGame(ctx context.Context) (uuid.UUID, game.Outcome, int, error) {
	id := uuid.New()
	board := s.game.InitBoard()
	player := game.White
	var positions []pending

	for step := 0; board.Winner() == game.NoWinner; step++ {
		temperature := 0.0
		if step < s.temperatureMoves {
			temperature = 1
		}
		probs, err := s.mcts.Search(ctx, board, player, 0, temperature)
		if err != nil {
			return id, game.NoWinner, 0, fmt.Errorf("step %d: %w", step, err)
		}
		policy, err := s.game.CanonicalPolicy(probs, player)
		if err != nil {
			return id, game.NoWinner, 0, err
		}
		positions = append(positions, pending{
			step:      step,
			player:    player,
			canonical: s.game.CanonicalForm(board, player),
			policy:    policy,
		})

		action := agent.Sample(probs, s.rng.Float64())
		board, player, err = s.game.NextState(board, player, action)
		if err != nil {
			return id, game.NoWinner, 0, fmt.Errorf("step %d: %w", step, err)
		}
	}

	var examples []store.Example
	for _, p := range positions {
		value := s.game.GameEnded(board, p.player)
		expanded, err := store.NewExamples(s.game, id, p.step, p.canonical, p.policy, value)
		if err != nil {
			return id, game.NoWinner, 0, err
		}
		examples = append(examples, expanded...)
	}
	if err := s.store.Put(ctx, examples); err != nil {
		return id, game.NoWinner, 0, err
	}

	outcome := board.Winner()
	log.Info().
		Str("game", id.String()).
		Str("winner", outcome.String()).
		Int("moves", len(positions)).
		Int("examples", len(examples)).
		Msg("self-play game recorded")
	return id, outcome, len(examples), nil
}

// Run plays games one after another and returns the number of examples stored.
func (s *SelfPlay) Run(ctx context.Context, games int) (int, error) {
	total := 0
	for i := 0; i < games; i++ {
		log.Info().Msgf("starting self-play game %d of %d...", i+1, games)
		_, _, count, err := s.PlayGame(ctx)
		if err != nil {
			return total, fmt.Errorf("self-play game %d: %w", i+1, err)
		}
		total += count
	}
	return total, nil
}
