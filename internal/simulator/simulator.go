// Package simulator plays headless coached sessions: the human seat is
// driven by the advisor itself, which makes a run a fixture for both the
// engine invariants and the strategy's long-run behavior.
package simulator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/counting"
	"github.com/joelfrenette/card-counting-coach-com/internal/game"
	"github.com/joelfrenette/card-counting-coach-com/internal/randutil"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds int
	Seed   int64
	Decks  int
	System string
	Style  strategy.Style
	Seats  int
	Logger *log.Logger
}

// Simulator runs coached blackjack sessions without a UI
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Report aggregates one simulated session
type Report struct {
	Rounds          int
	Wins            int
	Blackjacks      int
	NetProfit       decimal.Decimal
	FinalBankroll   decimal.Decimal
	MaxDrawdown     decimal.Decimal
	Reshuffles      int
	CountMismatches int
	SitOutsAdvised  int
	DeviationsTaken int
	Busted          bool
	Variant         string
	System          string
	Style           strategy.Style
}

// WinRate returns the fraction of rounds won
func (r *Report) WinRate() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Rounds)
}

// Summary renders the report as a human-readable block
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rules: %s, counting %s, %s betting\n", r.Variant, r.System, r.Style)
	fmt.Fprintf(&b, "Rounds played: %d (won %d, %.1f%%)\n", r.Rounds, r.Wins, r.WinRate()*100)
	fmt.Fprintf(&b, "Blackjacks: %d\n", r.Blackjacks)
	fmt.Fprintf(&b, "Net profit: %s (final bankroll %s)\n", r.NetProfit, r.FinalBankroll)
	fmt.Fprintf(&b, "Max drawdown: %s\n", r.MaxDrawdown)
	fmt.Fprintf(&b, "Reshuffles: %d\n", r.Reshuffles)
	fmt.Fprintf(&b, "Index deviations taken: %d\n", r.DeviationsTaken)
	if r.SitOutsAdvised > 0 {
		fmt.Fprintf(&b, "Rounds the style advised sitting out: %d\n", r.SitOutsAdvised)
	}
	if r.CountMismatches > 0 {
		fmt.Fprintf(&b, "COUNT MISMATCHES: %d\n", r.CountMismatches)
	}
	if r.Busted {
		b.WriteString("Session ended with the bankroll below the table minimum\n")
	}
	return b.String()
}

// countAuditor recomputes the running count independently from the dealt
// card stream and flags any disagreement with the engine's published count.
type countAuditor struct {
	counter    *counting.Counter
	mismatches int
}

func (a *countAuditor) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.ShoeShuffledEvent:
		a.counter.Reset()
	case game.CardDealtEvent:
		a.counter.Observe(e.Card)
		if e.Card.FaceUp && a.counter.RunningCount() != e.RunningCount {
			a.mismatches++
		}
	case game.HoleRevealEvent:
		a.counter.Observe(e.Card)
		if a.counter.RunningCount() != e.RunningCount {
			a.mismatches++
		}
	}
}

// Run plays the configured number of rounds with the advisor driving the
// human seat: recommended bets, index-aware play and count-gated insurance.
func (s *Simulator) Run() (*Report, error) {
	rules := game.DefaultRules()
	if s.config.Decks > 0 {
		rules.Decks = s.config.Decks
	}
	if s.config.Seats > 0 {
		rules.Seats = s.config.Seats
		rules.HumanSeat = 1
	}
	if s.config.System != "" {
		rules.CountingSystem = s.config.System
	}
	if s.config.Style != "" {
		rules.BettingStyle = s.config.Style
	}

	system, err := counting.Lookup(rules.CountingSystem)
	if err != nil {
		return nil, err
	}

	table, err := game.NewTable(rules,
		game.WithLogger(s.config.Logger),
		game.WithRNG(randutil.New(s.config.Seed)),
	)
	if err != nil {
		return nil, err
	}

	auditor := &countAuditor{counter: counting.NewCounter(system)}
	table.Events().Subscribe(auditor)

	report := &Report{
		Variant: rules.VariantName(),
		System:  system.Name,
		Style:   rules.BettingStyle,
	}
	start := table.Human().Bankroll
	peak := start

	for round := 0; round < s.config.Rounds; round++ {
		if err := s.playRound(table, report); err != nil {
			if report.Busted {
				break
			}
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}

		bankroll := table.Human().Bankroll
		if bankroll.GreaterThan(peak) {
			peak = bankroll
		}
		if dd := peak.Sub(bankroll); dd.GreaterThan(report.MaxDrawdown) {
			report.MaxDrawdown = dd
		}
	}

	report.CountMismatches = auditor.mismatches
	report.FinalBankroll = table.Human().Bankroll
	report.NetProfit = report.FinalBankroll.Sub(start)
	return report, nil
}

// playRound bets, plays and resolves one round on the advisor's advice
func (s *Simulator) playRound(table *game.Table, report *Report) error {
	human := table.Human()
	rules := table.Rules()

	if table.NeedsReshuffle() {
		report.Reshuffles++
	}

	bet := table.RecommendedBet()
	amount := bet.Amount
	if amount.IsZero() {
		// Wonging out: the engine needs a wagered human seat to advance
		// the shoe, so the simulation plays the minimum and records that
		// the style would have sat out.
		report.SitOutsAdvised++
		amount = rules.MinBet
	}
	if amount.GreaterThan(human.Bankroll) {
		amount = rules.MinBet
	}
	if amount.GreaterThan(human.Bankroll) {
		report.Busted = true
		return fmt.Errorf("bankroll %s below table minimum", human.Bankroll)
	}

	if err := table.PlaceBet(amount); err != nil {
		return err
	}
	if err := table.StartRound(); err != nil {
		return err
	}

	if table.Phase() == game.PhaseInsurance {
		if err := table.DecideInsurance(table.TrueCount() >= 3); err != nil {
			return err
		}
	}

	for table.Phase() == game.PhasePlayerTurn {
		if err := s.playHand(table, report); err != nil {
			return err
		}
	}

	if table.Phase() != game.PhaseRoundEnd {
		return fmt.Errorf("round stalled in %s", table.Phase())
	}

	report.Rounds++
	if human.LastWon {
		report.Wins++
	}
	for _, h := range human.Hands {
		if h.IsBlackjack() {
			report.Blackjacks++
		}
	}
	return table.NewRound()
}

// playHand applies one advisor decision to the human's current hand
func (s *Simulator) playHand(table *game.Table, report *Report) error {
	coaching, ok := table.RecommendedAction()
	if !ok {
		return fmt.Errorf("no coaching available in %s", table.Phase())
	}

	action := game.Action(coaching.Basic.Action)
	if coaching.Deviation != nil {
		deviation := game.Action(coaching.Deviation.IndexAction)
		if actionAvailable(table, deviation) {
			action = deviation
			report.DeviationsTaken++
		}
	}
	if !actionAvailable(table, action) {
		action = game.ActionHit
	}

	switch action {
	case game.ActionHit:
		return table.Hit()
	case game.ActionStand:
		return table.Stand()
	case game.ActionDouble:
		return table.Double()
	case game.ActionSplit:
		return table.Split()
	case game.ActionSurrender:
		return table.Surrender()
	default:
		return table.Stand()
	}
}

func actionAvailable(table *game.Table, action game.Action) bool {
	for _, a := range table.ValidActions() {
		if a == action {
			return true
		}
	}
	return false
}
