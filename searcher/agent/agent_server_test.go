package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hexzero/game"
	"hexzero/searcher"

	"github.com/stretchr/testify/require"
)

func TestAgentServer(t *testing.T) {
	h := mustHex(t, 3)
	server := httptest.NewServer(NewHandler(NewRandomAgent(5), 3))
	defer server.Close()

	post := func(t *testing.T, body any) *http.Response {
		t.Helper()
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		resp, err := http.Post(server.URL+"/findmove", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		return resp
	}

	t.Run("answering with a legal move", func(t *testing.T) {
		board := almostWon(t, h)

		resp := post(t, NewMoveRequest(board, game.Black))
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var move MoveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&move))
		require.True(t, h.ValidMoves(board).Legal(move.Action))
		pos, err := board.Decode(move.Action)
		require.NoError(t, err)
		require.Equal(t, game.FormatMove(pos), move.Move)
	})

	t.Run("rejecting a malformed board", func(t *testing.T) {
		resp := post(t, MoveRequest{Size: 3, Cells: []game.Cell{0, 0}, Player: game.White})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejecting an unknown player", func(t *testing.T) {
		resp := post(t, MoveRequest{Size: 3, Cells: make([]game.Cell, 9), Player: 3})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejecting a board of another size", func(t *testing.T) {
		mcts := searcher.NewMCTS(h, searcher.UniformOracle{Game: h}, 2, searcher.WithEpisodes(20))
		evaluation := httptest.NewServer(NewHandler(NewEvaluationAgent(mcts), 3))
		defer evaluation.Close()
		payload, err := json.Marshal(NewMoveRequest(mustHex(t, 5).InitBoard(), game.White))
		require.NoError(t, err)

		resp, err := http.Post(evaluation.URL+"/findmove", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejecting a full board", func(t *testing.T) {
		board := h.InitBoard()
		for _, pos := range board.ActionSpace() {
			require.NoError(t, board.Place(pos, game.Black))
		}

		resp := post(t, NewMoveRequest(board, game.White))
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("only accepting POST", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/findmove")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
