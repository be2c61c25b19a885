package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hexzero/game"
	"hexzero/searcher"

	"github.com/rs/zerolog/log"
)

// MoveRequest is the body of POST /findmove.
type MoveRequest struct {
	Size   int         `json:"size"`
	Cells  []game.Cell `json:"cells"`
	Player game.Player `json:"player"`
}

// MoveResponse carries the chosen action and its notation.
type MoveResponse struct {
	Action int    `json:"action"`
	Move   string `json:"move"`
}

// NewMoveRequest encodes the position an agent is asked to play.
func NewMoveRequest(board *game.Board, player game.Player) MoveRequest {
	return MoveRequest{Size: board.Size(), Cells: board.Cells(), Player: player}
}

// Board decodes the requested position.
func (r MoveRequest) Board() (*game.Board, error) {
	return game.NewBoardFromCells(r.Size, r.Cells)
}

// NewHandler serves agent on /findmove for boards of the given size.
func NewHandler(agent Agent, size int) http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", func(w http.ResponseWriter, r *http.Request) {
		handleFindMove(agent, size, w, r)
	})
	return mux
}

// StartAgentServer serves agent on addr until ctx is done.
func StartAgentServer(ctx context.Context, addr string, agent Agent, size int) error {
	server := &http.Server{Addr: addr, Handler: NewHandler(agent, size)}

	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("starting agent server on %s...", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			return fmt.Errorf("shutting down agent server: %w", err)
		}
		log.Info().Msg("agent server stopped")
		return nil
	}
}

func handleFindMove(agent Agent, size int, w http.ResponseWriter, r *http.Request) {
	var payload MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Size != size {
		http.Error(w, fmt.Sprintf("bad request: board size %d, serving size %d", payload.Size, size), http.StatusBadRequest)
		return
	}
	board, err := payload.Board()
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Player != game.White && payload.Player != game.Black {
		http.Error(w, fmt.Sprintf("bad request: unknown player %d", payload.Player), http.StatusBadRequest)
		return
	}

	action, searchMetric, err := agent.FindMove(r.Context(), board, payload.Player)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrInvalidMove) || errors.Is(err, game.ErrContractViolation) || errors.Is(err, searcher.ErrGameOver) {
			status = http.StatusUnprocessableEntity
		}
		log.Warn().Err(err).Msg("agent failed to find a move")
		http.Error(w, "failed to find move: "+err.Error(), status)
		return
	}

	pos, err := board.Decode(action)
	if err != nil {
		http.Error(w, "agent returned an invalid move: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debug().
		Str("player", payload.Player.String()).
		Str("move", game.FormatMove(pos)).
		Int("episodes", searchMetric.Episodes).
		Msg("served move")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MoveResponse{Action: action, Move: game.FormatMove(pos)}); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
