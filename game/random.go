package game

import "golang.org/x/exp/rand"

// RandomMove picks a uniformly random empty cell. ok is false on a full board.
func RandomMove(b *Board, rng *rand.Rand) (pos Position, ok bool) {
	actions := b.ActionSpace()
	if len(actions) == 0 {
		return Position{}, false
	}
	return actions[rng.Intn(len(actions))], true
}

// RandomFill alternates random moves, starting with player, until the board
// is full, regardless of when a winner appears.
func RandomFill(b *Board, player Player, rng *rand.Rand) {
	for {
		pos, ok := RandomMove(b, rng)
		if !ok {
			return
		}
		if err := b.Place(pos, player); err != nil {
			panic(err) // RandomMove only returns empty cells
		}
		player = player.Opponent()
	}
}

// RandomPlayout plays random moves, starting with player, and returns the
// winner. Filling the whole board gives the same winner as stopping at the
// first connection, since stones added afterwards cannot create a second one.
func RandomPlayout(b *Board, player Player, rng *rand.Rand) Outcome {
	RandomFill(b, player, rng)
	return b.Winner()
}
