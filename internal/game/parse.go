package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDiagram = errors.New("invalid board diagram")

// ParseState builds a position from a diagram such as "XX./.OO/...": three
// rows separated by '/', with 'X', 'O' and '.' for empty. The side to move
// follows from the mark counts. A completed line must belong to the player
// who moved last.
func ParseState(diagram string) (*State, error) {
	rows := strings.Split(diagram, "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidDiagram, Rows, len(rows))
	}

	s := NewState()
	var xs, os int
	for row, text := range rows {
		if len(text) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidDiagram, row, len(text))
		}
		for col, ch := range text {
			cell := RowColToIndex(row, col)
			switch ch {
			case 'X', 'x':
				s.board[cell] = PlayerOne
				xs++
			case 'O', 'o':
				s.board[cell] = PlayerTwo
				os++
			case '.':
				continue
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d", ErrInvalidDiagram, ch, row)
			}
			s.legal = s.legal.Remove(cell)
		}
	}

	switch xs - os {
	case 0:
		s.current = PlayerOne
	case 1:
		s.current = PlayerTwo
	default:
		return nil, fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidDiagram, xs, os)
	}

	xWins, oWins := s.hasLine(PlayerOne), s.hasLine(PlayerTwo)
	switch {
	case xWins && oWins:
		return nil, fmt.Errorf("%w: both players have a line", ErrInvalidDiagram)
	case xWins && s.current != PlayerTwo:
		return nil, fmt.Errorf("%w: O moved after X completed a line", ErrInvalidDiagram)
	case oWins && s.current != PlayerOne:
		return nil, fmt.Errorf("%w: X moved after O completed a line", ErrInvalidDiagram)
	case xWins:
		s.winner = PlayerOne
	case oWins:
		s.winner = PlayerTwo
	}

	return s, nil
}

func (s *State) hasLine(p Player) bool {
	for cell := range Cells {
		for _, line := range linesThrough[cell] {
			if s.board[line[0]] == p && s.board[line[1]] == p && s.board[line[2]] == p {
				return true
			}
		}
	}
	return false
}
