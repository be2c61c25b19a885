package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a board is constructed outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("invalid board size")
	// ErrOutOfRange is returned for positions or action indices that do not address a cell.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidMove is the class of illegal placements.
	ErrInvalidMove = errors.New("invalid move")
	// ErrCellOccupied is returned when placing on a non-empty cell.
	ErrCellOccupied = fmt.Errorf("%w: cell is occupied", ErrInvalidMove)
	// ErrContractViolation is returned when a policy vector does not match the action size.
	ErrContractViolation = errors.New("contract violation")
	// ErrInvalidNotation is returned when a move string cannot be parsed.
	ErrInvalidNotation = errors.New("invalid move notation")
	// ErrSolverDefect signals a full board without a winner, which Hex rules out.
	ErrSolverDefect = errors.New("solver defect: full board without a winner")
)
