package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/Tic-Tac-Toe-Negamax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/config"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/game"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/logger"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/match"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/simulation"
	"ctchen222/Tic-Tac-Toe-Negamax/internal/telemetry"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("tictactoe: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load(config.NewFlagSet("tictactoe"), args)
	if err != nil {
		return err
	}

	// Initialize telemetry
	otelCfg := telemetry.Config{Endpoint: cfg.OtelEndpoint}
	if cfg.TraceStdout {
		otelCfg.Console = os.Stderr
	}
	shutdown, err := telemetry.InitOtel(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level)

	if cfg.Show {
		return show(ctx, out, cfg.Opening)
	}

	for _, batch := range batches(cfg) {
		summary, err := simulation.Run(ctx, batch)
		if err != nil {
			return err
		}
		if err := summary.Write(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

// batches returns the explicit pairing when players were given, otherwise the
// perfect player against random and then against itself.
func batches(cfg *config.Config) []simulation.Config {
	if cfg.Custom() {
		one, two := cfg.PlayerOne, cfg.PlayerTwo
		if one == "" {
			one = bot.Hard
		}
		if two == "" {
			two = bot.Hard
		}
		return []simulation.Config{{Games: cfg.Games, Workers: cfg.Workers, PlayerOne: one, PlayerTwo: two, Opening: cfg.Opening}}
	}

	return []simulation.Config{
		{Name: "AI vs Random", Games: cfg.Games, Workers: cfg.Workers, PlayerOne: bot.Hard, PlayerTwo: bot.Easy, Opening: cfg.Opening},
		{Name: "AI vs AI", Games: cfg.Games, Workers: cfg.Workers, PlayerOne: bot.Hard, PlayerTwo: bot.Hard, Opening: cfg.Opening},
	}
}

// show plays one perfect-play game from opening and prints the board after
// every move.
func show(ctx context.Context, out io.Writer, opening []int) error {
	start, err := match.Replay(opening...)
	if err != nil {
		return fmt.Errorf("invalid opening: %w", err)
	}

	printBoard := func(state *game.State, move int) {
		row, col := game.IndexToRowCol(move)
		fmt.Fprintf(out, "%s plays (%d, %d)\n%s\n\n", state.At(move), row, col, state)
	}

	x, err := bot.New(bot.Hard)
	if err != nil {
		return err
	}
	o, err := bot.New(bot.Hard)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n\n", start)
	res, err := match.Play(ctx, x, o, match.WithOpening(opening...), match.WithObserver(printBoard))
	if err != nil {
		return err
	}

	switch res.Winner {
	case game.PlayerOne, game.PlayerTwo:
		fmt.Fprintf(out, "%s wins after %d moves\n", res.Winner, len(res.Moves))
	default:
		fmt.Fprintf(out, "Draw after %d moves\n", len(res.Moves))
	}
	return nil
}
