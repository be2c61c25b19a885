package searcher

import (
	"errors"

	"hexzero/game"
)

// Hyperparameters for PUCT search

const CPuct = 1.0 // Exploration constant

const VirtualLoss = 1.0 // Temporary loss charged to an edge while a simulation is in flight

// ErrGameOver is returned when asked to search a finished position.
var ErrGameOver = errors.New("game is already over")

// Game is the contract the search consumes, plus the back-mapping of
// canonical policies onto the real board.
type Game interface {
	game.Game
	OriginalPolicy(policy []float64, player game.Player) ([]float64, error)
}
