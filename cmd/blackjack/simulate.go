package main

import (
	"fmt"
	"time"

	"github.com/joelfrenette/card-counting-coach-com/internal/fileutil"
	"github.com/joelfrenette/card-counting-coach-com/internal/simulator"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// SimulateCmd runs an advisor-driven session without a UI
type SimulateCmd struct {
	Rounds int    `kong:"default='1000',help='Number of rounds to play'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (omit for random)'"`
	Decks  int    `kong:"default='6',help='Number of decks in the shoe'"`
	System string `kong:"default='hi-lo',help='Counting system'"`
	Style  string `kong:"default='flat',help='Betting style'"`
	Seats  int    `kong:"default='3',help='Seats at the table'"`
	Out    string `kong:"help='Write the report to a file as well as stdout'"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Debug("simulation seed", "seed", seed)

	sim := simulator.New(simulator.Config{
		Rounds: c.Rounds,
		Seed:   seed,
		Decks:  c.Decks,
		System: c.System,
		Style:  strategy.Style(c.Style),
		Seats:  c.Seats,
		Logger: logger,
	})

	report, err := sim.Run()
	if err != nil {
		return err
	}

	summary := report.Summary()
	fmt.Print(summary)
	if c.Out != "" {
		if err := fileutil.WriteFileAtomic(c.Out, []byte(summary), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Debug("report written", "path", c.Out)
	}
	return nil
}
