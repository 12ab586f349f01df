package simulation

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/match"
)

// Summary tallies the outcome of a batch.
type Summary struct {
	Config        Config
	Results       []*match.Result // in game order
	PlayerOneWins int
	PlayerTwoWins int
	Draws         int
	Elapsed       time.Duration
}

func summarize(cfg Config, results []*match.Result, elapsed time.Duration) *Summary {
	s := &Summary{Config: cfg, Results: results, Elapsed: elapsed}
	for _, res := range results {
		switch res.Winner {
		case game.PlayerOne:
			s.PlayerOneWins++
		case game.PlayerTwo:
			s.PlayerTwoWins++
		default:
			s.Draws++
		}
	}
	return s
}

// AverageGame is the elapsed wall time divided by the number of games.
func (s *Summary) AverageGame() time.Duration {
	if len(s.Results) == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(len(s.Results))
}

// Write prints the batch report.
func (s *Summary) Write(w io.Writer) error {
	name := s.Config.Name
	if name == "" {
		name = fmt.Sprintf("%s vs %s", s.Config.PlayerOne, s.Config.PlayerTwo)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s results after %d games:\n", name, len(s.Results))
	fmt.Fprintf(tw, "X wins\t%d\n", s.PlayerOneWins)
	fmt.Fprintf(tw, "O wins\t%d\n", s.PlayerTwoWins)
	fmt.Fprintf(tw, "Draws\t%d\n", s.Draws)
	fmt.Fprintf(tw, "Total time\t%.4f seconds\n", s.Elapsed.Seconds())
	fmt.Fprintf(tw, "Average game time\t%.6f seconds\n", s.AverageGame().Seconds())
	return tw.Flush()
}
