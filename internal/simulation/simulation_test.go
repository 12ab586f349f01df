package simulation

import (
	"bytes"
	"context"
	"testing"
	"time"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRun_PerfectPlayAlwaysDraws(t *testing.T) {
	summary, err := Run(context.Background(), Config{
		Games:     20,
		Workers:   4,
		PlayerOne: bot.Hard,
		PlayerTwo: bot.Hard,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, summary.Draws)
	assert.Zero(t, summary.PlayerOneWins)
	assert.Zero(t, summary.PlayerTwoWins)
	require.Len(t, summary.Results, 20)

	// every game is the same deterministic line
	for _, res := range summary.Results {
		require.NotNil(t, res)
		assert.Equal(t, summary.Results[0].Moves, res.Moves)
	}
}

func TestRun_PerfectPlayAgainstRandom(t *testing.T) {
	summary, err := Run(context.Background(), Config{
		Games:     100,
		PlayerOne: bot.Hard,
		PlayerTwo: bot.Easy,
	})
	require.NoError(t, err)

	assert.Zero(t, summary.PlayerTwoWins)
	assert.Equal(t, 100, summary.PlayerOneWins+summary.Draws)
	assert.Positive(t, summary.PlayerOneWins)
}

func TestRun_ResultsInGameOrder(t *testing.T) {
	summary, err := Run(context.Background(), Config{
		Games:     50,
		Workers:   8,
		PlayerOne: bot.Easy,
		PlayerTwo: bot.Medium,
	})
	require.NoError(t, err)

	ids := make(map[string]bool)
	total := 0
	for i, res := range summary.Results {
		require.NotNil(t, res, "game %d has no result", i)
		ids[res.ID.String()] = true

		replayed, err := match.Replay(res.Moves...)
		require.NoError(t, err)
		assert.True(t, replayed.IsGameOver())
		assert.Equal(t, res.Winner, replayed.Winner())
		total++
	}
	assert.Len(t, ids, 50)
	assert.Equal(t, total, summary.PlayerOneWins+summary.PlayerTwoWins+summary.Draws)
}

func TestRun_WithOpening(t *testing.T) {
	summary, err := Run(context.Background(), Config{
		Games:     10,
		PlayerOne: bot.Hard,
		PlayerTwo: bot.Hard,
		Opening:   []int{0, 1},
	})
	require.NoError(t, err)

	// O's adjacent edge reply loses against perfect play
	assert.Equal(t, 10, summary.PlayerOneWins)
	for _, res := range summary.Results {
		assert.Equal(t, []int{0, 1}, res.Moves[:2])
	}

	_, err = Run(context.Background(), Config{
		Games:     3,
		PlayerOne: bot.Easy,
		PlayerTwo: bot.Easy,
		Opening:   []int{4, 4},
	})
	assert.ErrorIs(t, err, match.ErrIllegalMove)
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no games", cfg: Config{PlayerOne: bot.Easy, PlayerTwo: bot.Easy}},
		{name: "negative workers", cfg: Config{Games: 1, Workers: -1, PlayerOne: bot.Easy, PlayerTwo: bot.Easy}},
		{name: "unknown difficulty", cfg: Config{Games: 1, PlayerOne: "impossible", PlayerTwo: bot.Easy}},
		{name: "missing player", cfg: Config{Games: 1, PlayerOne: bot.Easy}},
		{name: "opening off the board", cfg: Config{Games: 1, PlayerOne: bot.Easy, PlayerTwo: bot.Easy, Opening: []int{9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Games: 10, PlayerOne: bot.Easy, PlayerTwo: bot.Easy})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	summary, err := Run(context.Background(), Config{
		Games:     30,
		PlayerOne: bot.Easy,
		PlayerTwo: bot.Easy,
	}, WithMeterProvider(mp))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byOutcome := make(map[string]int64)
	var histogramCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				require.Equal(t, "simulation.games", m.Name)
				for _, dp := range data.DataPoints {
					outcome, ok := dp.Attributes.Value("outcome")
					require.True(t, ok)
					byOutcome[outcome.AsString()] += dp.Value
				}
			case metricdata.Histogram[float64]:
				require.Equal(t, "simulation.game.duration", m.Name)
				for _, dp := range data.DataPoints {
					histogramCount += dp.Count
				}
			}
		}
	}

	assert.Equal(t, int64(summary.PlayerOneWins), byOutcome[match.OutcomePlayerOne])
	assert.Equal(t, int64(summary.PlayerTwoWins), byOutcome[match.OutcomePlayerTwo])
	assert.Equal(t, int64(summary.Draws), byOutcome[match.OutcomeDraw])
	assert.Equal(t, uint64(30), histogramCount)
}

func TestSummary_Write(t *testing.T) {
	s := summarize(Config{Name: "AI vs Random"}, []*match.Result{
		{Winner: game.PlayerOne},
		{Winner: game.PlayerOne},
		{Winner: game.Empty},
		{Winner: game.PlayerTwo},
	}, 2*time.Second)

	assert.Equal(t, 2, s.PlayerOneWins)
	assert.Equal(t, 1, s.PlayerTwoWins)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 500*time.Millisecond, s.AverageGame())

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "AI vs Random results after 4 games:")
	assert.Regexp(t, `X wins\s+2`, out)
	assert.Regexp(t, `O wins\s+1`, out)
	assert.Regexp(t, `Draws\s+1`, out)
	assert.Contains(t, out, "2.0000 seconds")

	assert.Zero(t, (&Summary{}).AverageGame())
}
