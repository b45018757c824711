package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fadedpez/tucotrainer/internal/simulation"
	"github.com/fadedpez/tucotrainer/pkg/entities"
)

type CLI struct {
	Rounds  int   `default:"100000" help:"Number of rounds to simulate"`
	Seed    int64 `default:"0" help:"RNG seed (0 for random)"`
	Bet     int64 `default:"10" help:"Bet per round in whole dollars"`
	Workers int   `default:"0" help:"Parallel workers (0 for one per CPU)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play basic strategy against the dealer and report outcome rates."))

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}
	if cli.Workers <= 0 {
		cli.Workers = runtime.NumCPU()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting simulation: %d rounds at %s (seed: %d, workers: %d)\n", cli.Rounds, entities.Dollars(cli.Bet), cli.Seed, cli.Workers)

	start := time.Now()
	report, err := simulation.Run(runCtx, simulation.Config{
		Rounds:  cli.Rounds,
		Seed:    cli.Seed,
		Bet:     entities.Dollars(cli.Bet),
		Workers: cli.Workers,
	})
	ctx.FatalIfErrorf(err)

	printReport(report, time.Since(start))
}

func printReport(r *simulation.Report, elapsed time.Duration) {
	fmt.Printf("\n=== RESULTS (%d rounds in %s) ===\n", r.Rounds, elapsed.Round(time.Millisecond))
	fmt.Printf("Wins:       %8d  %6.2f%%\n", r.Wins, r.Rate(r.Wins))
	fmt.Printf("Losses:     %8d  %6.2f%%\n", r.Losses, r.Rate(r.Losses))
	fmt.Printf("Pushes:     %8d  %6.2f%%\n", r.Pushes, r.Rate(r.Pushes))
	fmt.Printf("Blackjacks: %8d  %6.2f%%\n", r.Blackjacks, r.Rate(r.Blackjacks))
	fmt.Printf("Busts:      %8d  %6.2f%%\n", r.Busts, r.Rate(r.Busts))
	fmt.Printf("Doubles:    %8d  %6.2f%%\n", r.Doubles, r.Rate(r.Doubles))
	fmt.Printf("Splits:     %8d  %6.2f%% (played on as totals)\n", r.Splits, r.Rate(r.Splits))
	fmt.Printf("\nStaked: %s  Net: %s  Return: %+.2f%%\n", r.Staked, r.Net, r.ReturnRate())
	fmt.Printf("Per round: %+.4f ± %.4f bets (SE)\n", r.MeanUnits(), r.StdError())
}
