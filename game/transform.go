package game

// transform maps a source position to its destination on an n x n grid.
type transform func(pos Position, n int) Position

func rotateClockwise(pos Position, n int) Position {
	return Position{Row: pos.Col, Col: n - 1 - pos.Row}
}

func rotateCounterClockwise(pos Position, n int) Position {
	return Position{Row: n - 1 - pos.Col, Col: pos.Row}
}

func rotate180(pos Position, n int) Position {
	return Position{Row: n - 1 - pos.Row, Col: n - 1 - pos.Col}
}

func flipHorizontal(pos Position, n int) Position {
	return Position{Row: pos.Row, Col: n - 1 - pos.Col}
}

// then composes t with next, applying t first.
func (t transform) then(next transform) transform {
	return func(pos Position, n int) Position {
		return next(t(pos, n), n)
	}
}

// Black's goal axis is orthogonal to White's: turning Black-to-move into
// White-to-move needs a color swap plus an axis swap. The forward transform is
// a clockwise rotation followed by a horizontal flip; the backward transform
// undoes them in reverse order. Both reduce to the main-diagonal transpose.
var (
	toCanonical   = transform(rotateClockwise).then(flipHorizontal)
	fromCanonical = transform(flipHorizontal).then(rotateCounterClockwise)
)

// apply moves every element of a row-major n x n grid through t.
func apply[T any](grid []T, n int, t transform) []T {
	out := make([]T, len(grid))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			dst := t(Position{Row: row, Col: col}, n)
			out[dst.Row*n+dst.Col] = grid[row*n+col]
		}
	}
	return out
}

// transformed returns a copy of b moved through t, negating colors if asked.
func (b *Board) transformed(t transform, negate bool) *Board {
	cells := apply(b.cells, b.size, t)
	if negate {
		for i, c := range cells {
			cells[i] = -c
		}
	}
	return &Board{size: b.size, cells: cells}
}
