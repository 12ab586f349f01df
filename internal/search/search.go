// Package search computes optimal tic-tac-toe play with an exhaustive
// negamax, optionally pruned with alpha-beta.
//
// The search explores variations by applying and undoing moves on the state
// it is given, so a state must not be shared with another goroutine while a
// search runs on it. The state is back in its original configuration when
// the search returns.
package search

import (
	"fmt"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
)

// Algorithm selects the negamax variant.
type Algorithm int

const (
	AlphaBeta Algorithm = iota
	Plain
)

func (a Algorithm) String() string {
	switch a {
	case AlphaBeta:
		return "alpha-beta"
	case Plain:
		return "plain"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Infinity is larger than any score.
const Infinity = 1 << 30

// Result describes a root search.
type Result struct {
	Move  int
	Score int // from the point of view of the player to move
	Nodes int
	Depth int // deepest ply below the root
}

// Searcher runs root searches and keeps node statistics for the last one.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	Algorithm Algorithm

	nodes int
	depth int
}

func New(algo Algorithm) *Searcher {
	return &Searcher{Algorithm: algo}
}

// Search returns the best move for the player to move. The first move in
// ascending cell order that reaches the best score wins ties. ok is false
// when the state is already terminal.
func (s *Searcher) Search(state *game.State) (Result, bool) {
	if state.IsGameOver() {
		return Result{Move: -1}, false
	}

	s.nodes, s.depth = 0, 0
	var score, move int
	switch s.Algorithm {
	case Plain:
		score, move = s.negamax(state, state.CurrentPlayer(), 0)
	default:
		score, move = s.alphaBeta(state, state.CurrentPlayer(), 0, -Infinity, Infinity)
	}

	return Result{Move: move, Score: score, Nodes: s.nodes, Depth: s.depth}, true
}

func (s *Searcher) visit(depth int) {
	s.nodes++
	if depth > s.depth {
		s.depth = depth
	}
}

// negamax returns the score of state for player and the move reaching it.
func (s *Searcher) negamax(state *game.State, player game.Player, depth int) (int, int) {
	s.visit(depth)
	if state.IsGameOver() {
		return TerminalScore(state, player), -1
	}

	best, bestMove := -Infinity, -1
	for moves := state.LegalMoves(); moves != 0; {
		var move int
		move, moves = moves.Pop()

		state.ApplyMove(move)
		child, _ := s.negamax(state, -player, depth+1)
		state.UndoMove(move)

		if score := -child; score > best {
			best, bestMove = score, move
		}
	}
	return best, bestMove
}

func (s *Searcher) alphaBeta(state *game.State, player game.Player, depth, alpha, beta int) (int, int) {
	s.visit(depth)
	if state.IsGameOver() {
		return TerminalScore(state, player), -1
	}

	best, bestMove := -Infinity, -1
	for moves := state.LegalMoves(); moves != 0; {
		var move int
		move, moves = moves.Pop()

		state.ApplyMove(move)
		child, _ := s.alphaBeta(state, -player, depth+1, -beta, -alpha)
		state.UndoMove(move)

		score := -child
		if score > best {
			best, bestMove = score, move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestMove
}

// TerminalScore scores a finished game for perspective: 0 for a draw, +1 if
// perspective won and -1 if it lost.
func TerminalScore(state *game.State, perspective game.Player) int {
	return int(state.Winner()) * int(perspective)
}

// ChooseMove returns the optimal move for the player to move using
// alpha-beta. ok is false when the state is terminal.
func ChooseMove(state *game.State) (move int, ok bool) {
	res, ok := New(AlphaBeta).Search(state)
	return res.Move, ok
}

// Evaluate returns the game-theoretic value of state for perspective:
// +1 for a forced win, 0 for a draw with best play, -1 for a forced loss.
func Evaluate(state *game.State, perspective game.Player) int {
	if state.IsGameOver() {
		return TerminalScore(state, perspective)
	}
	res, _ := New(AlphaBeta).Search(state)
	if perspective == state.CurrentPlayer() {
		return res.Score
	}
	return -res.Score
}
