package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderOptions controls the text rendering of a board.
type RenderOptions struct {
	// Color styles stones with terminal colors.
	Color bool
	// LightBackground swaps the filled and hollow glyphs for terminals
	// printing dark text on a light background.
	LightBackground bool
}

var (
	whiteStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	blackStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	edgeStyle  = lipgloss.NewStyle().Faint(true)
)

// Render draws b as a rhombus of hexagons with column letters and row numbers.
func Render(w io.Writer, b *Board, opts RenderOptions) error {
	n := b.size
	letters := make([]string, n)
	for i := range letters {
		letters[i] = string(columnNames[i])
	}
	headings := strings.Repeat(" ", 5) + strings.Join(letters, "   ")

	var sb strings.Builder
	sb.WriteString(headings + "\n")
	sb.WriteString(strings.Repeat(" ", 5) + strings.Join(strings.Split(strings.Repeat("_", n), ""), "   ") + "\n")
	sb.WriteString(edge(strings.Repeat(" ", 4)+`/ \`+strings.Repeat(`_/ \`, n-1), opts) + "\n")

	indent := 0
	for r := 0; r < n; r++ {
		glyphs := make([]string, n)
		for c := 0; c < n; c++ {
			glyphs[c] = glyph(b.cells[r*n+c], opts)
		}
		sb.WriteString(strings.Repeat(" ", indent) + "   | " + strings.Join(glyphs, " | ") + fmt.Sprintf(" | %d \n", r+1))

		bottom := strings.Repeat(" ", indent) + "   " + strings.Repeat(` \_/`, n)
		if r < n-1 {
			bottom += ` \`
		}
		sb.WriteString(edge(bottom, opts) + "\n")
		indent += 2
	}
	sb.WriteString(strings.Repeat(" ", indent-2) + headings + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders the board without colors.
func (b *Board) String() string {
	var sb strings.Builder
	_ = Render(&sb, b, RenderOptions{})
	return sb.String()
}

func glyph(c Cell, opts RenderOptions) string {
	filled, hollow := "●", "○"
	if opts.LightBackground {
		filled, hollow = hollow, filled
	}
	switch c {
	case WhiteStone:
		if opts.Color {
			return whiteStyle.Render(filled)
		}
		return filled
	case BlackStone:
		if opts.Color {
			return blackStyle.Render(hollow)
		}
		return hollow
	}
	return " "
}

func edge(s string, opts RenderOptions) string {
	if opts.Color {
		return edgeStyle.Render(s)
	}
	return s
}
