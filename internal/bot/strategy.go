package bot

import (
	"errors"
	"fmt"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/search"
)

//go:generate mockgen -source=strategy.go -destination=mock_strategy.go -package=bot

var (
	ErrNoMove            = errors.New("no legal move")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Strategy picks a move for the player to move. Implementations may explore
// the state but must hand it back unchanged.
type Strategy interface {
	NextMove(state *game.State) (int, error)
}

// Difficulty names a built-in strategy.
type Difficulty string

const (
	Easy      Difficulty = "easy"       // uniform random
	Medium    Difficulty = "medium"     // win, else block, else random
	Hard      Difficulty = "hard"       // negamax with alpha-beta
	HardPlain Difficulty = "hard-plain" // negamax without pruning
)

// Difficulties lists every known difficulty.
var Difficulties = []Difficulty{Easy, Medium, Hard, HardPlain}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// New returns a fresh strategy for d. Strategies are not shared between
// games, so each game running on its own goroutine gets its own.
func New(d Difficulty) (Strategy, error) {
	switch d {
	case Easy:
		return &Random{}, nil
	case Medium:
		return &Blocker{}, nil
	case Hard:
		return &Negamax{Algorithm: search.AlphaBeta}, nil
	case HardPlain:
		return &Negamax{Algorithm: search.Plain}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
	}
}
