package game

import (
	"fmt"
	"strconv"
	"strings"
)

const columnNames = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ParseMove reads a move such as "A1" or "c12": the letter names the column
// and the 1-based number the row.
func ParseMove(move string, size int) (Position, error) {
	move = strings.ToUpper(strings.TrimSpace(move))
	if len(move) < 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, move)
	}
	col := strings.IndexByte(columnNames, move[0])
	if col < 0 {
		return Position{}, fmt.Errorf("%w: %q has no column letter", ErrInvalidNotation, move)
	}
	row, err := strconv.Atoi(move[1:])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q has no row number", ErrInvalidNotation, move)
	}
	pos := Position{Row: row - 1, Col: col}
	if pos.Row < 0 || pos.Row >= size || pos.Col >= size {
		return Position{}, fmt.Errorf("%w: %q is off a board of size %d", ErrInvalidNotation, move, size)
	}
	return pos, nil
}

// FormatMove writes pos in the notation read by ParseMove.
func FormatMove(pos Position) string {
	if pos.Col < 0 || pos.Col >= len(columnNames) || pos.Row < 0 {
		return "??"
	}
	return fmt.Sprintf("%c%d", columnNames[pos.Col], pos.Row+1)
}
