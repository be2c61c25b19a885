package engine

import (
	"context"
	"fmt"
	"time"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine referees a game between two in-process agents.
type LocalEngine struct {
	game     *game.Hex
	board    *game.Board
	player   game.Player
	agents   map[game.Player]agent.Agent
	observer func(update Update, board *game.Board)
	history  []Update
}

var _ Engine = (*LocalEngine)(nil)

// WithStartingPlayer lets Black move first.
func WithStartingPlayer(player game.Player) Option {
	return func(e *LocalEngine) {
		if player == game.White || player == game.Black {
			e.player = player
		}
	}
}

// WithBoard starts the game from a position instead of the empty board.
func WithBoard(board *game.Board) Option {
	return func(e *LocalEngine) {
		if board != nil {
			e.board = board.Clone()
		}
	}
}

// WithObserver is called after every move with the updated board.
func WithObserver(observer func(update Update, board *game.Board)) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func NewLocalEngine(g *game.Hex, white, black agent.Agent, options ...Option) *LocalEngine {
	if white == nil || black == nil {
		panic("need an agent for each player")
	}
	e := &LocalEngine{ // Default values
		game:   g,
		board:  g.InitBoard(),
		player: game.White,
		agents: map[game.Player]agent.Agent{game.White: white, game.Black: black},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns a copy of the current position.
func (e *LocalEngine) Board() *game.Board {
	return e.board.Clone()
}

// History returns the moves played so far.
func (e *LocalEngine) History() []Update {
	return append([]Update(nil), e.history...)
}

// Run executes the game loop until a player connects their sides.
func (e *LocalEngine) Run(ctx context.Context) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.player),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.player)

	for step := 1; ; step++ {
		if outcome := e.board.Winner(); outcome != game.NoWinner {
			gameMetric.Winner = outcome.String()
			gameMetric.EndTime = time.Now()
			gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
			gameMetric.TotalMoves = len(e.history)
			log.Info().Msgf("game ended after %d moves with winner: %s", len(e.history), outcome)
			return outcome, gameMetric, moveMetrics, nil
		}
		if e.board.Full() {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%w: full board without a winner", game.ErrSolverDefect)
		}
		if step > MaxMoves {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%w: no winner after %d moves", game.ErrSolverDefect, MaxMoves)
		}
		if err := ctx.Err(); err != nil {
			return game.NoWinner, gameMetric, moveMetrics, err
		}

		action, searchMetric, err := e.agents[e.player].FindMove(ctx, e.board.Clone(), e.player)
		if err != nil {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%s failed to find a move: %w", e.player, err)
		}

		next, nextPlayer, err := e.game.NextState(e.board, e.player, action)
		if err != nil {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%s played action %d: %w", e.player, action, err)
		}

		pos, _ := e.board.Decode(action)
		update := Update{
			Step:   step,
			Player: e.player,
			Action: action,
			Move:   game.FormatMove(pos),
			Hash:   e.game.Hash(next),
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(e.player),
			Action:       update.Move,
			SearchMetric: searchMetric,
		})
		log.Debug().
			Int("step", step).
			Str("player", e.player.String()).
			Str("move", update.Move).
			Int("episodes", searchMetric.Episodes).
			Msg("move played")

		e.history = append(e.history, update)
		e.board = next
		e.player = nextPlayer
		if e.observer != nil {
			e.observer(update, e.board.Clone())
		}
	}
}
