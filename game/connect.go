package game

// Outcome is the result of a connectivity query.
type Outcome int8

const (
	NoWinner Outcome = 0
	WhiteWin Outcome = 1
	BlackWin Outcome = -1
)

func (o Outcome) String() string {
	switch o {
	case WhiteWin:
		return "white"
	case BlackWin:
		return "black"
	}
	return "none"
}

// Player returns the winning player. ok is false for NoWinner.
func (o Outcome) Player() (player Player, ok bool) {
	if o == NoWinner {
		return 0, false
	}
	return Player(o), true
}

// WhiteWins reports whether White connects column 0 to column N-1.
func (b *Board) WhiteWins() bool {
	return b.connected(White, nil)
}

// BlackWins reports whether Black connects row 0 to row N-1.
func (b *Board) BlackWins() bool {
	return b.connected(Black, nil)
}

// Wins reports whether player has a chain spanning their two goal edges.
func (b *Board) Wins(player Player) bool {
	return b.connected(player, nil)
}

// Winner returns the player, if any, holding a winning connection.
// Both players can never win at once on a legal board.
func (b *Board) Winner() Outcome {
	if b.WhiteWins() {
		return WhiteWin
	}
	if b.BlackWins() {
		return BlackWin
	}
	return NoWinner
}

// WinningPath returns one chain of player's stones connecting their goal
// edges, start edge first, or nil when there is none.
func (b *Board) WinningPath(player Player) []Position {
	parents := make([]int, len(b.cells))
	end := -1
	if !b.connected(player, func(cell, parent int, goal bool) {
		parents[cell] = parent
		if goal && end < 0 {
			end = cell
		}
	}) {
		return nil
	}

	var path []Position
	for cell := end; cell >= 0; cell = parents[cell] {
		path = append(path, Position{Row: cell / b.size, Col: cell % b.size})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// endsOn reports whether cell lies on player's goal edge.
func (b *Board) endsOn(player Player, row, col int) bool {
	if player == White {
		return col == b.size-1
	}
	return row == b.size-1
}

// connected runs a breadth-first search from every stone of player on their
// start edge. Every cell enters the frontier at most once, so the search is
// bounded by N*N expansions. visit, when set, observes each discovered cell
// with its BFS parent (-1 for seeds) and whether it lies on the goal edge.
func (b *Board) connected(player Player, visit func(cell, parent int, goal bool)) bool {
	stone := player.Stone()
	visited := make([]bool, len(b.cells))
	frontier := make([]int, 0, len(b.cells))

	for i := 0; i < b.size; i++ {
		row, col := i, 0
		if player == Black {
			row, col = 0, i
		}
		cell := row*b.size + col
		if b.cells[cell] != stone {
			continue
		}
		visited[cell] = true
		goal := b.endsOn(player, row, col)
		if visit != nil {
			visit(cell, -1, goal)
		}
		if goal {
			return true
		}
		frontier = append(frontier, cell)
	}

	for head := 0; head < len(frontier); head++ {
		cell := frontier[head]
		row, col := cell/b.size, cell%b.size
		for _, offset := range neighborOffsets {
			r, c := row+offset.Row, col+offset.Col
			if r < 0 || r >= b.size || c < 0 || c >= b.size {
				continue
			}
			next := r*b.size + c
			if visited[next] || b.cells[next] != stone {
				continue
			}
			visited[next] = true
			goal := b.endsOn(player, r, c)
			if visit != nil {
				visit(next, cell, goal)
			}
			if goal {
				return true
			}
			frontier = append(frontier, next)
		}
	}
	return false
}
