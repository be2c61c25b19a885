package main

import (
	"hexzero/experiments"
	"hexzero/searcher/agent"

	"github.com/spf13/cobra"
)

var (
	serveAddr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve search moves on POST /findmove",
		Args:  cobra.NoArgs,
		RunE:  runServeCommand,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides the config")
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	h := newGame()
	mcts, err := experiments.NewSearch(h, cfg.Search)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return agent.StartAgentServer(cmd.Context(), addr, agent.NewEvaluationAgent(mcts), cfg.BoardSize)
}
