package game

import (
	"fmt"
	"hash/fnv"
)

// Hex adapts Board to the Game contract consumed by search.
type Hex struct {
	n int
}

var _ Game = (*Hex)(nil)

// NewHex returns a game of Hex on an n x n board.
func NewHex(n int) (*Hex, error) {
	if n < MinSize || n > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, n, MinSize, MaxSize)
	}
	return &Hex{n: n}, nil
}

func (h *Hex) InitBoard() *Board {
	return &Board{size: h.n, cells: make([]Cell, h.n*h.n)}
}

func (h *Hex) BoardSize() (int, int) {
	return h.n, h.n
}

func (h *Hex) ActionSize() int {
	return h.n * h.n
}

// NextState places player's stone on action and hands the turn over. The turn
// always passes, even when the move ends the game. board is left untouched.
func (h *Hex) NextState(board *Board, player Player, action int) (*Board, Player, error) {
	if err := h.check(board); err != nil {
		return nil, player, err
	}
	pos, err := board.Decode(action)
	if err != nil {
		return nil, player, err
	}
	next := board.Clone()
	if err := next.Place(pos, player); err != nil {
		return nil, player, err
	}
	return next, player.Opponent(), nil
}

// ValidMoves flags every empty cell at index row*N + col.
func (h *Hex) ValidMoves(board *Board) Mask {
	mask := make(Mask, h.ActionSize())
	for i, c := range board.cells {
		if c == Empty {
			mask[i] = 1
		}
	}
	return mask
}

// GameEnded scores the board from player's perspective:
// (+1 if White won, -1 if Black won, 0 otherwise) * player.
func (h *Hex) GameEnded(board *Board, player Player) float64 {
	return float64(board.Winner()) * float64(player)
}

// CanonicalForm presents the position as White to move. For Black the colors
// are swapped and the board is rotated clockwise then flipped horizontally.
func (h *Hex) CanonicalForm(board *Board, player Player) *Board {
	if player == White {
		return board.Clone()
	}
	return board.transformed(toCanonical, true)
}

// OriginalForm is the exact inverse of CanonicalForm for the same player.
func (h *Hex) OriginalForm(board *Board, player Player) *Board {
	if player == White {
		return board.Clone()
	}
	return board.transformed(fromCanonical, true)
}

// CanonicalAction maps a real action index to the canonical board of player.
func (h *Hex) CanonicalAction(action int, player Player) int {
	return h.mapAction(action, player, toCanonical)
}

// OriginalAction maps an action chosen on player's canonical board back to
// the real board.
func (h *Hex) OriginalAction(action int, player Player) int {
	return h.mapAction(action, player, fromCanonical)
}

func (h *Hex) mapAction(action int, player Player, t transform) int {
	if player == White {
		return action
	}
	pos := t(Position{Row: action / h.n, Col: action % h.n}, h.n)
	return pos.Row*h.n + pos.Col
}

// CanonicalPolicy maps a policy over the real board onto player's canonical board.
func (h *Hex) CanonicalPolicy(policy []float64, player Player) ([]float64, error) {
	if len(policy) != h.ActionSize() {
		return nil, fmt.Errorf("%w: policy has %d entries, want %d", ErrContractViolation, len(policy), h.ActionSize())
	}
	if player == White {
		return append([]float64(nil), policy...), nil
	}
	return apply(policy, h.n, toCanonical), nil
}

// OriginalPolicy maps a policy over player's canonical board back to the real board.
func (h *Hex) OriginalPolicy(policy []float64, player Player) ([]float64, error) {
	if len(policy) != h.ActionSize() {
		return nil, fmt.Errorf("%w: policy has %d entries, want %d", ErrContractViolation, len(policy), h.ActionSize())
	}
	if player == White {
		return append([]float64(nil), policy...), nil
	}
	return apply(policy, h.n, fromCanonical), nil
}

// Symmetries returns the board and policy rotated by 0 and 180 degrees.
// Reflections are left out: they swap the players' goal axes and would need
// a color swap to stay valid.
func (h *Hex) Symmetries(board *Board, policy []float64) ([]Symmetry, error) {
	if len(policy) != h.ActionSize() {
		return nil, fmt.Errorf("%w: policy has %d entries, want %d", ErrContractViolation, len(policy), h.ActionSize())
	}
	if err := h.check(board); err != nil {
		return nil, err
	}
	return []Symmetry{
		{Board: board.Clone(), Policy: append([]float64(nil), policy...)},
		{Board: board.transformed(rotate180, false), Policy: apply(policy, h.n, rotate180)},
	}, nil
}

// StateKey serializes the grid one byte per cell in row-major order. Equal
// grids give equal keys and distinct grids distinct keys.
func (h *Hex) StateKey(board *Board) string {
	key := make([]byte, len(board.cells))
	for i, c := range board.cells {
		key[i] = byte(c + 1)
	}
	return string(key)
}

// BoardFromKey decodes a StateKey.
func (h *Hex) BoardFromKey(key string) (*Board, error) {
	cells := make([]Cell, len(key))
	for i := 0; i < len(key); i++ {
		cells[i] = Cell(key[i]) - 1
	}
	return NewBoardFromCells(h.n, cells)
}

// Hash condenses the StateKey into 64 bits for logs and record keys.
func (h *Hex) Hash(board *Board) StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(h.StateKey(board)))
	return StateHash(hasher.Sum64())
}

func (h *Hex) check(board *Board) error {
	if board == nil || board.size != h.n {
		return fmt.Errorf("%w: board does not match a game of size %d", ErrContractViolation, h.n)
	}
	return nil
}
