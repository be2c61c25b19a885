package main

import (
	"fmt"
	"os"

	"hexzero/engine"
	"hexzero/experiments"
	"hexzero/game"
	"hexzero/searcher/agent"

	"github.com/spf13/cobra"
)

var (
	humanColor string
	opponent   string
	remoteURL  string
	noColor    bool
	lightTerm  bool

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play against the machine in the terminal",
		Long:  `Play Hex against a machine opponent, entering moves like "A1" (column letter, row number). White connects the left and right edges, Black the top and bottom.`,
		Args:  cobra.NoArgs,
		RunE:  runPlayCommand,
	}
)

func init() {
	playCmd.Flags().StringVar(&humanColor, "human", "white", "color of the human player: white, black or none")
	playCmd.Flags().StringVar(&opponent, "opponent", "random", "machine opponent: random, mcts or remote")
	playCmd.Flags().StringVar(&remoteURL, "url", "http://localhost:8080", "agent server for --opponent remote")
	playCmd.Flags().BoolVar(&noColor, "no-color", false, "draw the board without colors")
	playCmd.Flags().BoolVar(&lightTerm, "light", false, "terminal prints dark text on a light background")
}

func runPlayCommand(cmd *cobra.Command, args []string) error {
	h := newGame()
	opts := game.RenderOptions{Color: !noColor, LightBackground: lightTerm}
	out := cmd.OutOrStdout()

	human := agent.NewHumanAgent(os.Stdin, out, opts)
	white, err := machine(h, cfg.Search.Seed)
	if err != nil {
		return err
	}
	black, err := machine(h, cfg.Search.Seed+1)
	if err != nil {
		return err
	}
	switch humanColor {
	case "white":
		white = human
	case "black":
		black = human
	case "none":
	default:
		return fmt.Errorf("unknown color %q", humanColor)
	}

	e := engine.NewLocalEngine(h, white, black)
	outcome, _, _, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := game.Render(out, e.Board(), opts); err != nil {
		return err
	}
	winner, _ := outcome.Player()
	who := "computer"
	if humanColor == winner.String() {
		who = "human player"
	}
	fmt.Fprintf(out, "The %s (%s) has won!\n", who, winner)
	return nil
}

func machine(h *game.Hex, seed uint64) (agent.Agent, error) {
	switch opponent {
	case "random":
		return agent.NewRandomAgent(seed), nil
	case "mcts":
		mcts, err := experiments.NewSearch(h, cfg.Search)
		if err != nil {
			return nil, err
		}
		return agent.NewEvaluationAgent(mcts), nil
	case "remote":
		return engine.NewRemoteAgent(remoteURL, cfg.Server.Timeout), nil
	}
	return nil, fmt.Errorf("unknown opponent %q", opponent)
}
