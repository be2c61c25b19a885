package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher/agent"
)

// RemoteAgent asks an agent server for moves over HTTP.
type RemoteAgent struct {
	url    string
	client *http.Client
}

var _ agent.Agent = (*RemoteAgent)(nil)

func NewRemoteAgent(url string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		url:    strings.TrimSuffix(url, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// FindMove posts the position to /findmove on the agent side.
func (a *RemoteAgent) FindMove(ctx context.Context, board *game.Board, player game.Player) (int, metrics.SearchMetric, error) {
	body, err := json.Marshal(agent.NewMoveRequest(board, player))
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("encoding move request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("requesting move from %s: %w", a.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return 0, metrics.SearchMetric{}, fmt.Errorf("agent at %s returned status %d: %s", a.url, resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var move agent.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return 0, metrics.SearchMetric{}, fmt.Errorf("decoding move from %s: %w", a.url, err)
	}
	return move.Action, metrics.SearchMetric{}, nil
}
