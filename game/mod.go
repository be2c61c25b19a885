package game

type StateHash uint64

// Game is the contract a search procedure consumes to expand Hex states.
// Implementations never mutate the boards they are given.
type Game interface {
	InitBoard() *Board
	BoardSize() (rows, cols int)
	ActionSize() int
	NextState(board *Board, player Player, action int) (*Board, Player, error)
	ValidMoves(board *Board) Mask
	GameEnded(board *Board, player Player) float64
	CanonicalForm(board *Board, player Player) *Board
	OriginalForm(board *Board, player Player) *Board
	Symmetries(board *Board, policy []float64) ([]Symmetry, error)
	StateKey(board *Board) string
}

// Oracle estimates a move policy and a value in [-1, 1] for a board in
// canonical form, i.e. from the perspective of White to move.
type Oracle interface {
	Evaluate(canonical *Board) (policy []float64, value float64, err error)
}

// Searcher produces a move distribution over the real (non-canonical) board.
type Searcher interface {
	ActionProbabilities(board *Board, player Player, budget int, temperature float64) ([]float64, error)
}

// Symmetry is an equivalent (board, policy) pair used for training augmentation.
type Symmetry struct {
	Board  *Board
	Policy []float64
}

// Mask flags legal actions with 1 and illegal ones with 0.
type Mask []uint8

// Count returns the number of legal actions.
func (m Mask) Count() int {
	count := 0
	for _, v := range m {
		count += int(v)
	}
	return count
}

// Legal reports whether action is flagged legal.
func (m Mask) Legal(action int) bool {
	return action >= 0 && action < len(m) && m[action] == 1
}
