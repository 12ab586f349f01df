package game

import "strings"

// Player is the mark held by a cell, or the side to move.
type Player int8

const (
	Empty     Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = -1
)

// Opponent returns the other side. Empty stays Empty.
func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "X"
	case PlayerTwo:
		return "O"
	default:
		return "."
	}
}

// Board is the 3x3 grid stored row-major.
type Board [Cells]Player

// State is a mutable tic-tac-toe position.
//
// ApplyMove and UndoMove are an unchecked fast path: they trust the caller to
// pass legal moves and to undo in strict LIFO order. Callers that need
// validation do it before calling in.
type State struct {
	board   Board
	legal   MoveSet
	current Player
	winner  Player
}

// NewState returns the initial position: empty board, PlayerOne to move.
func NewState() *State {
	return &State{
		legal:   AllCells,
		current: PlayerOne,
	}
}

// ApplyMove places the current player's mark on move and flips the turn.
// move must be legal and the state must not be terminal.
func (s *State) ApplyMove(move int) {
	s.board[move] = s.current
	s.legal = s.legal.Remove(move)

	for _, line := range linesThrough[move] {
		if s.board[line[0]] == s.current && s.board[line[1]] == s.current && s.board[line[2]] == s.current {
			s.winner = s.current
			break
		}
	}

	s.current = -s.current
}

// UndoMove reverts move, which must be the most recently applied one.
// The winner is cleared unconditionally: only the last move can have won.
func (s *State) UndoMove(move int) {
	s.board[move] = Empty
	s.legal = s.legal.Add(move)
	s.winner = Empty
	s.current = -s.current
}

// WithMove applies move, runs fn and undoes move again.
func (s *State) WithMove(move int, fn func()) {
	s.ApplyMove(move)
	fn()
	s.UndoMove(move)
}

// IsGameOver reports whether somebody has won or the board is full.
func (s *State) IsGameOver() bool {
	return s.winner != Empty || s.legal == 0
}

// Winner returns the player who completed a line, or Empty for an
// undecided or drawn game.
func (s *State) Winner() Player {
	return s.winner
}

func (s *State) CurrentPlayer() Player {
	return s.current
}

// LegalMoves returns the set of empty cells.
func (s *State) LegalMoves() MoveSet {
	return s.legal
}

// Board returns a copy of the grid.
func (s *State) Board() Board {
	return s.board
}

func (s *State) At(cell int) Player {
	return s.board[cell]
}

// Ply is the number of moves played so far.
func (s *State) Ply() int {
	return Cells - s.legal.Len()
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// String renders the board for the console.
func (s *State) String() string {
	var sb strings.Builder
	for row := range Rows {
		for col := range Cols {
			if col > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(s.board[RowColToIndex(row, col)].String())
		}
		sb.WriteString("\n")
		if row < Rows-1 {
			sb.WriteString("--+---+--\n")
		}
	}
	return sb.String()
}
