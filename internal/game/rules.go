package game

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/counting"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Rules is the immutable-per-round table configuration: shoe size, bet
// limits, house rule toggles and the selected counting/betting setup.
type Rules struct {
	Decks             int
	PenetrationMarker float64
	MinBet            decimal.Decimal
	MaxBet            decimal.Decimal
	StartingBankroll  decimal.Decimal

	DealerHitsSoft17 bool
	DoubleAfterSplit bool
	LateSurrender    bool
	ResplitAces      bool
	MaxSplitHands    int

	Seats     int
	HumanSeat int

	CountingSystem string
	BettingStyle   strategy.Style
}

// DefaultRules is a common six-deck Vegas Strip style game
func DefaultRules() Rules {
	return Rules{
		Decks:             6,
		PenetrationMarker: 0.75,
		MinBet:            decimal.NewFromInt(25),
		MaxBet:            decimal.NewFromInt(500),
		StartingBankroll:  decimal.NewFromInt(1000),
		DoubleAfterSplit:  true,
		LateSurrender:     true,
		MaxSplitHands:     4,
		Seats:             3,
		HumanSeat:         1,
		CountingSystem:    "hi-lo",
		BettingStyle:      strategy.StyleFlat,
	}
}

// Validate rejects configurations that would corrupt play before any shoe
// is built. All failures wrap ErrInvalidConfiguration.
func (r Rules) Validate() error {
	if r.Decks <= 0 {
		return fmt.Errorf("%w: deck count %d must be positive", ErrInvalidConfiguration, r.Decks)
	}
	if !r.MinBet.IsPositive() {
		return fmt.Errorf("%w: minimum bet %s must be positive", ErrInvalidConfiguration, r.MinBet)
	}
	if r.MinBet.GreaterThan(r.MaxBet) {
		return fmt.Errorf("%w: minimum bet %s exceeds maximum %s", ErrInvalidConfiguration, r.MinBet, r.MaxBet)
	}
	if !r.StartingBankroll.IsPositive() {
		return fmt.Errorf("%w: starting bankroll %s must be positive", ErrInvalidConfiguration, r.StartingBankroll)
	}
	if r.MaxSplitHands < 2 {
		return fmt.Errorf("%w: max split hands %d must be at least 2", ErrInvalidConfiguration, r.MaxSplitHands)
	}
	if r.Seats < 1 {
		return fmt.Errorf("%w: seat count %d must be at least 1", ErrInvalidConfiguration, r.Seats)
	}
	if r.HumanSeat < 1 || r.HumanSeat > r.Seats {
		return fmt.Errorf("%w: human seat %d outside 1..%d", ErrInvalidConfiguration, r.HumanSeat, r.Seats)
	}
	if _, err := counting.Lookup(r.CountingSystem); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if _, err := strategy.LookupStyle(r.BettingStyle); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// RuleSet converts the table rules to the subset the edge model uses
func (r Rules) RuleSet() strategy.RuleSet {
	return strategy.RuleSet{
		Decks:            r.Decks,
		DealerHitsSoft17: r.DealerHitsSoft17,
		DoubleAfterSplit: r.DoubleAfterSplit,
		LateSurrender:    r.LateSurrender,
		ResplitAces:      r.ResplitAces,
	}
}

// VariantName renders the rules in conventional shorthand, e.g.
// "6 Decks, S17, DAS, LS".
func (r Rules) VariantName() string {
	return strategy.RuleVariantName(r.RuleSet())
}
