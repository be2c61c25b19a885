package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hexzero/config"
	"hexzero/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	boardSize  int
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:           "hexzero",
		Short:         "Hex board engine with a PUCT tree search",
		Long:          `hexzero plays Hex on square boards up to 26x26. It pits humans, random players and tree searches against each other, records self-play training examples and serves moves over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if boardSize > 0 {
				cfg.BoardSize = boardSize
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			setupLogging(cfg.Log)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().IntVarP(&boardSize, "size", "n", 0, "board size, overrides the config")
	rootCmd.AddCommand(playCmd, selfPlayCmd, arenaCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("hexzero failed")
	}
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newGame() *game.Hex {
	h, err := game.NewHex(cfg.BoardSize)
	if err != nil {
		// Validated with the config
		panic(err)
	}
	return h
}
