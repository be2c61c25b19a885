package main

import (
	"fmt"

	"hexzero/experiments"
	"hexzero/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	selfPlayGames int

	selfPlayCmd = &cobra.Command{
		Use:   "selfplay",
		Short: "Record training examples from search self-play",
		Args:  cobra.NoArgs,
		RunE:  runSelfPlayCommand,
	}
)

func init() {
	selfPlayCmd.Flags().IntVar(&selfPlayGames, "games", 0, "number of games, overrides the config")
}

func runSelfPlayCommand(cmd *cobra.Command, args []string) error {
	h := newGame()
	games := cfg.SelfPlay.Games
	if selfPlayGames > 0 {
		games = selfPlayGames
	}

	st, err := store.Open(store.Config{Path: cfg.Store.Path, SyncWrites: cfg.Store.SyncWrites})
	if err != nil {
		return err
	}
	defer st.Close()

	mcts, err := experiments.NewSearch(h, cfg.Search)
	if err != nil {
		return err
	}

	count, err := experiments.NewSelfPlay(h, mcts, st, cfg.SelfPlay.TemperatureMoves, cfg.Search.Seed).Run(cmd.Context(), games)
	if err != nil {
		return err
	}
	total, err := st.Count(cmd.Context())
	if err != nil {
		return err
	}

	log.Info().Int("examples", count).Int("total", total).Str("path", cfg.Store.Path).Msg("self-play completed")
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %d examples (%d in store)\n", count, total)
	return nil
}
