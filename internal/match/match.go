package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("match")

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game already finished")
	ErrStateModified = errors.New("strategy modified the game state")
)

// Outcome labels
const (
	OutcomePlayerOne = "player_one"
	OutcomePlayerTwo = "player_two"
	OutcomeDraw      = "draw"
)

// Result is the record of one finished game.
type Result struct {
	ID       uuid.UUID
	Winner   game.Player
	Moves    []int
	Duration time.Duration
}

func (r *Result) Outcome() string {
	switch r.Winner {
	case game.PlayerOne:
		return OutcomePlayerOne
	case game.PlayerTwo:
		return OutcomePlayerTwo
	default:
		return OutcomeDraw
	}
}

// Observer is called after every applied move.
type Observer func(state *game.State, move int)

type options struct {
	observer Observer
	opening  []int
}

type Option func(*options)

// WithObserver registers fn to be called after each move.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithOpening starts the game from the position reached by moves. The
// opening is validated like any other move and is part of the result.
func WithOpening(moves ...int) Option {
	return func(o *options) {
		o.opening = moves
	}
}

// Play runs a full game between x (PlayerOne) and o (PlayerTwo) on a private
// GameState. Every move is checked before it is applied; a strategy that
// returns an illegal move or touches the state ends the game with an error.
func Play(ctx context.Context, x, o bot.Strategy, opts ...Option) (*Result, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	res := &Result{ID: uuid.New()}
	ctx, span := tracer.Start(ctx, "match.Play", trace.WithAttributes(
		attribute.String("match.id", res.ID.String()),
	))
	defer span.End()

	state, err := Replay(cfg.opening...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid opening")
		return nil, fmt.Errorf("invalid opening: %w", err)
	}
	res.Moves = append(res.Moves, cfg.opening...)
	start := time.Now()

	for !state.IsGameOver() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Match cancelled")
			return nil, err
		}

		player := state.CurrentPlayer()
		strategy := x
		if player == game.PlayerTwo {
			strategy = o
		}

		before := *state
		move, err := strategy.NextMove(state)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Strategy failed to move")
			return nil, fmt.Errorf("%v failed to move: %w", player, err)
		}
		if *state != before {
			span.RecordError(ErrStateModified)
			span.SetStatus(codes.Error, "Strategy modified the state")
			return nil, fmt.Errorf("%v: %w", player, ErrStateModified)
		}
		if err := CheckMove(state, move); err != nil {
			slog.WarnContext(ctx, "strategy returned an illegal move", "match.id", res.ID, "player", player.String(), "move", move, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Illegal move")
			return nil, fmt.Errorf("%v: %w", player, err)
		}

		state.ApplyMove(move)
		res.Moves = append(res.Moves, move)
		slog.DebugContext(ctx, "move played", "match.id", res.ID, "player", player.String(), "move", move)

		if cfg.observer != nil {
			cfg.observer(state, move)
		}
	}

	res.Winner = state.Winner()
	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.String("match.outcome", res.Outcome()),
		attribute.Int("match.moves", len(res.Moves)),
	)
	slog.DebugContext(ctx, "match finished", "match.id", res.ID, "outcome", res.Outcome(), "moves", len(res.Moves))

	return res, nil
}

// CheckMove reports whether move may be applied to state.
func CheckMove(state *game.State, move int) error {
	if state.IsGameOver() {
		return ErrGameOver
	}
	if !state.LegalMoves().Contains(move) {
		return fmt.Errorf("%w: cell %d", ErrIllegalMove, move)
	}
	return nil
}

// Replay plays moves from the initial position, checking each one.
func Replay(moves ...int) (*game.State, error) {
	state := game.NewState()
	for i, move := range moves {
		if err := CheckMove(state, move); err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		state.ApplyMove(move)
	}
	return state, nil
}
