package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hexzero/game"
	"hexzero/searcher/agent"

	"github.com/stretchr/testify/require"
)

func TestRemoteAgent(t *testing.T) {
	h := mustHex(t, 4)

	t.Run("playing a game against a served agent", func(t *testing.T) {
		server := httptest.NewServer(agent.NewHandler(agent.NewRandomAgent(7), 4))
		defer server.Close()
		e := NewLocalEngine(h, NewRemoteAgent(server.URL+"/", time.Second), agent.NewRandomAgent(8))

		outcome, _, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEqual(t, game.NoWinner, outcome)
	})

	t.Run("reporting server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, _, err := NewRemoteAgent(server.URL, time.Second).FindMove(context.Background(), h.InitBoard(), game.White)

		require.ErrorContains(t, err, "503")
		require.ErrorContains(t, err, "overloaded")
	})
}
