package bot

import (
	"math/rand/v2"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/search"
)

// Random makes a completely random move. A nil Rand uses the global source,
// which is safe for concurrent use.
type Random struct {
	Rand *rand.Rand
}

func (r *Random) NextMove(state *game.State) (int, error) {
	if state.IsGameOver() {
		return -1, ErrNoMove
	}
	return r.pick(state.LegalMoves()), nil
}

func (r *Random) pick(moves game.MoveSet) int {
	cells := moves.Slice()
	if r.Rand != nil {
		return cells[r.Rand.IntN(len(cells))]
	}
	return cells[rand.IntN(len(cells))]
}

// Blocker wins if it can, blocks if it must, otherwise moves randomly.
type Blocker struct {
	Random
}

func (b *Blocker) NextMove(state *game.State) (int, error) {
	if state.IsGameOver() {
		return -1, ErrNoMove
	}

	// 1. Win: Check if we can win in the next move
	if move, ok := findWinningMove(state, state.CurrentPlayer()); ok {
		return move, nil
	}

	// 2. Block: Check if the opponent is about to win and block them
	if move, ok := findWinningMove(state, state.CurrentPlayer().Opponent()); ok {
		return move, nil
	}

	// 3. Random: Otherwise, make a random move
	return b.pick(state.LegalMoves()), nil
}

// findWinningMove returns the lowest empty cell that would complete a line
// for mark.
func findWinningMove(state *game.State, mark game.Player) (int, bool) {
	for moves := state.LegalMoves(); moves != 0; {
		var move int
		move, moves = moves.Pop()

		for _, line := range game.LinesThrough(move) {
			owned := 0
			for _, cell := range line {
				if cell != move && state.At(cell) == mark {
					owned++
				}
			}
			if owned == len(line)-1 {
				return move, true
			}
		}
	}
	return -1, false
}

// Negamax plays perfectly by searching the whole game tree.
type Negamax struct {
	Algorithm search.Algorithm

	// Last holds the statistics of the most recent search.
	Last search.Result
}

func (n *Negamax) NextMove(state *game.State) (int, error) {
	res, ok := search.New(n.Algorithm).Search(state)
	if !ok {
		return -1, ErrNoMove
	}
	n.Last = res
	return res.Move, nil
}
