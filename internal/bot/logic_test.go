package bot

import (
	"math/rand/v2"
	"testing"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, diagram string) *game.State {
	t.Helper()
	s, err := game.ParseState(diagram)
	require.NoError(t, err)
	return s
}

func TestFindWinningMove(t *testing.T) {
	tests := []struct {
		name      string
		diagram   string
		mark      game.Player
		wantMove  int
		wantFound bool
	}{
		{name: "No winning move - empty board", diagram: ".../.../...", mark: game.PlayerOne, wantMove: -1},
		{name: "X can win - first row", diagram: "XX./OO./...", mark: game.PlayerOne, wantMove: 2, wantFound: true},
		{name: "O can win - second column", diagram: "XO./XO./..X", mark: game.PlayerTwo, wantMove: 7, wantFound: true},
		{name: "X can win - main diagonal", diagram: "XO./.X./O..", mark: game.PlayerOne, wantMove: 8, wantFound: true},
		{name: "O can win - anti-diagonal", diagram: "X.O/XO./..X", mark: game.PlayerTwo, wantMove: 6, wantFound: true},
		{name: "Lowest cell wins ties", diagram: "X.X/.O./XO.", mark: game.PlayerOne, wantMove: 1, wantFound: true},
		{name: "Last cell completes a line", diagram: "XOX/OXO/OX.", mark: game.PlayerOne, wantMove: 8, wantFound: true},
		{name: "Full board, no win possible", diagram: "XOX/XOO/OXX", mark: game.PlayerOne, wantMove: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, found := findWinningMove(mustParse(t, tt.diagram), tt.mark)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantMove, move)
		})
	}
}

func TestRandomMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		move, err := (&Random{}).NextMove(mustParse(t, "XOX/XOO/O.X"))
		require.NoError(t, err)
		assert.Equal(t, 7, move)
	})

	t.Run("Multiple spots left - check validity", func(t *testing.T) {
		s := mustParse(t, "X../.O./...")
		r := &Random{}
		seen := make(map[int]bool)
		for range 200 {
			move, err := r.NextMove(s)
			require.NoError(t, err)
			require.True(t, s.LegalMoves().Contains(move), "illegal move %d", move)
			seen[move] = true
		}
		assert.Greater(t, len(seen), 1, "random strategy always picked the same cell")
	})

	t.Run("Seeded source is reproducible", func(t *testing.T) {
		a := &Random{Rand: rand.New(rand.NewPCG(1, 2))}
		b := &Random{Rand: rand.New(rand.NewPCG(1, 2))}
		for range 20 {
			ma, _ := a.NextMove(game.NewState())
			mb, _ := b.NextMove(game.NewState())
			assert.Equal(t, ma, mb)
		}
	})

	t.Run("Finished game", func(t *testing.T) {
		move, err := (&Random{}).NextMove(mustParse(t, "XXX/OO./..."))
		assert.ErrorIs(t, err, ErrNoMove)
		assert.Equal(t, -1, move)
	})
}

func TestBlockerMove(t *testing.T) {
	tests := []struct {
		name     string
		diagram  string
		wantMove int // -1 for any legal move
	}{
		{name: "Can win", diagram: "XX./O../O..", wantMove: 2},
		{name: "Must block opponent", diagram: "OO./X../..X", wantMove: 2},
		{name: "Winning beats blocking", diagram: "XX./OO./...", wantMove: 2},
		{name: "O wins instead of blocking", diagram: "XX./OO./X..", wantMove: 5},
		{name: "No immediate win or block", diagram: "X../.O./...", wantMove: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.diagram)
			move, err := (&Blocker{}).NextMove(s)
			require.NoError(t, err)
			if tt.wantMove == -1 {
				assert.True(t, s.LegalMoves().Contains(move), "illegal move %d", move)
				return
			}
			assert.Equal(t, tt.wantMove, move)
		})
	}

	_, err := (&Blocker{}).NextMove(mustParse(t, "XOX/XOO/OXX"))
	assert.ErrorIs(t, err, ErrNoMove)
}

func TestNegamaxMove(t *testing.T) {
	for _, algo := range []search.Algorithm{search.AlphaBeta, search.Plain} {
		t.Run(algo.String(), func(t *testing.T) {
			n := &Negamax{Algorithm: algo}

			move, err := n.NextMove(mustParse(t, "X.O/.O./..X"))
			require.NoError(t, err)
			assert.Equal(t, 6, move, "block at 6 also forks")
			assert.Equal(t, 1, n.Last.Score)
			assert.Positive(t, n.Last.Nodes)

			_, err = n.NextMove(mustParse(t, "XXX/OO./..."))
			assert.ErrorIs(t, err, ErrNoMove)
		})
	}
}

func TestNewStrategyNextMove(t *testing.T) {
	tests := []struct {
		name       string
		diagram    string
		difficulty Difficulty
		wantMove   int // -1 for any legal move
		wantErr    error
	}{
		{name: "Hard difficulty - winning move", diagram: "XX./O../O..", difficulty: Hard, wantMove: 2},
		{name: "Plain hard difficulty - winning move", diagram: "XX./O../O..", difficulty: HardPlain, wantMove: 2},
		{name: "Medium difficulty - blocking move", diagram: "OO./X../..X", difficulty: Medium, wantMove: 2},
		{name: "Easy difficulty - random valid move", diagram: ".../.../...", difficulty: Easy, wantMove: -1},
		{name: "Full board - hard difficulty", diagram: "XOX/XOO/OXX", difficulty: Hard, wantErr: ErrNoMove},
		{name: "Full board - easy difficulty", diagram: "XOX/XOO/OXX", difficulty: Easy, wantErr: ErrNoMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.diagram)
			strategy, err := New(tt.difficulty)
			require.NoError(t, err)

			move, err := strategy.NextMove(s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantMove == -1 {
				assert.True(t, s.LegalMoves().Contains(move))
				return
			}
			assert.Equal(t, tt.wantMove, move)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)

		s, err := New(d)
		require.NoError(t, err)
		assert.NotNil(t, s)
	}

	_, err := ParseDifficulty("impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
	_, err = New("impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}
