package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"hexzero/experiments/metrics"
	"hexzero/game"
)

type humanAgent struct {
	scanner *bufio.Scanner
	out     io.Writer
	opts    game.RenderOptions

	once  sync.Once
	lines chan string
	// err is set before lines is closed.
	err error
}

// NewHumanAgent returns an agent that shows the board on out and reads moves
// like "A1" from in until a legal one is entered.
func NewHumanAgent(in io.Reader, out io.Writer, opts game.RenderOptions) Agent {
	return &humanAgent{scanner: bufio.NewScanner(in), out: out, opts: opts, lines: make(chan string)}
}

// read feeds input lines to FindMove so a blocked read never outlives a cancelled context.
func (a *humanAgent) read() {
	for a.scanner.Scan() {
		a.lines <- a.scanner.Text()
	}
	a.err = a.scanner.Err()
	close(a.lines)
}

func (a *humanAgent) FindMove(ctx context.Context, board *game.Board, player game.Player) (int, metrics.SearchMetric, error) {
	if err := game.Render(a.out, board, a.opts); err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	a.once.Do(func() { go a.read() })
	for {
		if err := ctx.Err(); err != nil {
			return 0, metrics.SearchMetric{}, err
		}
		fmt.Fprintf(a.out, "%s to move. Enter your move (e.g. 'A1'): ", player)

		var line string
		select {
		case <-ctx.Done():
			return 0, metrics.SearchMetric{}, ctx.Err()
		case l, ok := <-a.lines:
			if !ok {
				if a.err != nil {
					return 0, metrics.SearchMetric{}, fmt.Errorf("reading move: %w", a.err)
				}
				return 0, metrics.SearchMetric{}, fmt.Errorf("reading move: %w", io.ErrUnexpectedEOF)
			}
			line = l
		}

		pos, err := game.ParseMove(line, board.Size())
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		if board.At(pos) != game.Empty {
			fmt.Fprintf(a.out, "%s is already taken\n", game.FormatMove(pos))
			continue
		}
		return board.Index(pos), metrics.SearchMetric{}, nil
	}
}
