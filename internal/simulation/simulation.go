// Package simulation plays batches of independent games in parallel.
//
// Every game owns its GameState and its strategies; nothing mutable is shared
// between workers. Results come back in game order.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/match"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/validator"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "ctchen222/Tic-Tac-Toe-Negamax/simulation"

var tracer = otel.Tracer("simulation")

// Config describes one batch.
type Config struct {
	Name      string
	Games     int            `validate:"required,min=1"`
	Workers   int            `validate:"min=0"` // 0 means one per CPU
	PlayerOne bot.Difficulty `validate:"required,difficulty"`
	PlayerTwo bot.Difficulty `validate:"required,difficulty"`
	Opening   []int          `validate:"max=9,dive,min=0,max=8"` // forced first moves of every game
}

type options struct {
	meterProvider metric.MeterProvider
}

type Option func(*options)

// WithMeterProvider records metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

type instruments struct {
	games    metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	games, err := meter.Int64Counter("simulation.games",
		metric.WithDescription("Number of simulated games by outcome"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games counter: %w", err)
	}

	duration, err := meter.Float64Histogram("simulation.game.duration",
		metric.WithDescription("Wall time of a single simulated game"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &instruments{games: games, duration: duration}, nil
}

// Run plays cfg.Games games on a bounded pool of workers and tallies the
// outcomes. The first failing game cancels the rest.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Summary, error) {
	o := options{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	runID := uuid.New()
	ctx, span := tracer.Start(ctx, "simulation.Run", trace.WithAttributes(
		attribute.String("simulation.id", runID.String()),
		attribute.Int("simulation.games", cfg.Games),
		attribute.Int("simulation.workers", workers),
		attribute.String("simulation.player_one", string(cfg.PlayerOne)),
		attribute.String("simulation.player_two", string(cfg.PlayerTwo)),
	))
	defer span.End()

	inst, err := newInstruments(o.meterProvider)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create instruments")
		return nil, err
	}
	attrs := metric.WithAttributes(
		attribute.String("player_one", string(cfg.PlayerOne)),
		attribute.String("player_two", string(cfg.PlayerTwo)),
	)

	slog.InfoContext(ctx, "simulation started", "simulation.id", runID, "games", cfg.Games, "workers", workers,
		"player_one", cfg.PlayerOne, "player_two", cfg.PlayerTwo)

	results := make([]*match.Result, cfg.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	start := time.Now()

	for i := range cfg.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			playerOne, err := bot.New(cfg.PlayerOne)
			if err != nil {
				return err
			}
			playerTwo, err := bot.New(cfg.PlayerTwo)
			if err != nil {
				return err
			}

			res, err := match.Play(gctx, playerOne, playerTwo, match.WithOpening(cfg.Opening...))
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res

			inst.games.Add(gctx, 1, attrs, metric.WithAttributes(attribute.String("outcome", res.Outcome())))
			inst.duration.Record(gctx, res.Duration.Seconds(), attrs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "simulation failed", "simulation.id", runID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Simulation failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Simulation cancelled")
		return nil, err
	}

	summary := summarize(cfg, results, time.Since(start))
	span.SetAttributes(
		attribute.Int("simulation.player_one_wins", summary.PlayerOneWins),
		attribute.Int("simulation.player_two_wins", summary.PlayerTwoWins),
		attribute.Int("simulation.draws", summary.Draws),
	)
	slog.InfoContext(ctx, "simulation finished", "simulation.id", runID,
		"player_one_wins", summary.PlayerOneWins, "player_two_wins", summary.PlayerTwoWins,
		"draws", summary.Draws, "elapsed", summary.Elapsed)

	return summary, nil
}
