package game

import (
	"fmt"
)

const (
	MinSize = 2
	MaxSize = 26 // One column letter per column in move notation
)

// Cell is the content of a board cell: Empty, White or Black.
type Cell int8

const (
	Empty      Cell = 0
	WhiteStone Cell = 1
	BlackStone Cell = -1
)

// Player identifies the side to move. White connects left-right, Black top-bottom.
type Player int8

const (
	White Player = 1
	Black Player = -1
)

func (p Player) Opponent() Player {
	return -p
}

// Stone returns the cell value a player places.
func (p Player) Stone() Cell {
	return Cell(p)
}

func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("player(%d)", int8(p))
}

// Position addresses a cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hex adjacency: the four orthogonal cells plus upper-right and lower-left.
var neighborOffsets = [6]Position{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {1, -1},
}

// Board is a square Hex grid stored row-major. A Board is owned by a single
// goroutine; search branches work on clones.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// NewBoardFromCells builds a board from row-major cell values, e.g. a decoded StateKey.
func NewBoardFromCells(size int, cells []Cell) (*Board, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: %d cells for a board of size %d", ErrOutOfRange, len(cells), size)
	}
	for i, c := range cells {
		if c != Empty && c != WhiteStone && c != BlackStone {
			return nil, fmt.Errorf("%w: cell %d has value %d", ErrOutOfRange, i, c)
		}
	}
	copy(b.cells, cells)
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

// Contains reports whether pos lies on the board.
func (b *Board) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.size && pos.Col >= 0 && pos.Col < b.size
}

// At returns the cell at pos. pos must be on the board.
func (b *Board) At(pos Position) Cell {
	return b.cells[pos.Row*b.size+pos.Col]
}

// Index encodes pos as a flat action index row*N + col.
func (b *Board) Index(pos Position) int {
	return pos.Row*b.size + pos.Col
}

// Decode converts a flat action index back into a position.
func (b *Board) Decode(action int) (Position, error) {
	if action < 0 || action >= len(b.cells) {
		return Position{}, fmt.Errorf("%w: action %d not in [0, %d)", ErrOutOfRange, action, len(b.cells))
	}
	return Position{Row: action / b.size, Col: action % b.size}, nil
}

// Neighbors returns the on-board cells adjacent to pos.
func (b *Board) Neighbors(pos Position) []Position {
	neighbors := make([]Position, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		n := Position{Row: pos.Row + offset.Row, Col: pos.Col + offset.Col}
		if b.Contains(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// ActionSpace lists the empty cells in row-major order.
func (b *Board) ActionSpace() []Position {
	actions := make([]Position, 0, len(b.cells))
	for i, c := range b.cells {
		if c == Empty {
			actions = append(actions, Position{Row: i / b.size, Col: i % b.size})
		}
	}
	return actions
}

// Place puts player's stone on an empty cell.
func (b *Board) Place(pos Position, player Player) error {
	if !b.Contains(pos) {
		return fmt.Errorf("%w: position (%d, %d) on a board of size %d", ErrOutOfRange, pos.Row, pos.Col, b.size)
	}
	if player != White && player != Black {
		return fmt.Errorf("%w: unknown %v", ErrInvalidMove, player)
	}
	i := b.Index(pos)
	if b.cells[i] != Empty {
		return fmt.Errorf("cannot place %v at (%d, %d): %w", player, pos.Row, pos.Col, ErrCellOccupied)
	}
	b.cells[i] = player.Stone()
	return nil
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// Occupied counts the stones on the board.
func (b *Board) Occupied() int {
	count := 0
	for _, c := range b.cells {
		if c != Empty {
			count++
		}
	}
	return count
}

func (b *Board) Full() bool {
	return b.Occupied() == len(b.cells)
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Inverted returns a copy with White and Black exchanged.
func (b *Board) Inverted() *Board {
	inverted := b.Clone()
	for i, c := range inverted.cells {
		inverted.cells[i] = -c
	}
	return inverted
}

// Vector flattens the board into a float vector, the usual evaluator input.
// With inverted set the colors are exchanged.
func (b *Board) Vector(inverted bool) []float64 {
	vector := make([]float64, len(b.cells))
	for i, c := range b.cells {
		if inverted {
			c = -c
		}
		vector[i] = float64(c)
	}
	return vector
}
