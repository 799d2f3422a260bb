// Package config loads session settings from HCL files. A missing file is
// not an error; the defaults describe a common six-deck game.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/game"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Settings represents the complete session configuration
type Settings struct {
	Table    TableSettings    `hcl:"table,block"`
	Rules    RuleSettings     `hcl:"rules,block"`
	Counting CountingSettings `hcl:"counting,block"`
}

// TableSettings contains shoe and table-level configuration
type TableSettings struct {
	Decks       int     `hcl:"decks,optional"`
	Penetration float64 `hcl:"penetration,optional"`
	MinBet      int64   `hcl:"min_bet,optional"`
	MaxBet      int64   `hcl:"max_bet,optional"`
	Bankroll    int64   `hcl:"bankroll,optional"`
	Seats       int     `hcl:"seats,optional"`
	HumanSeat   int     `hcl:"human_seat,optional"`
	PlaySpeed   string  `hcl:"play_speed,optional"`
}

// RuleSettings contains the house rule toggles
type RuleSettings struct {
	DealerHitsSoft17 bool `hcl:"h17,optional"`
	DoubleAfterSplit bool `hcl:"das,optional"`
	LateSurrender    bool `hcl:"ls,optional"`
	ResplitAces      bool `hcl:"rsa,optional"`
	MaxSplitHands    int  `hcl:"max_split_hands,optional"`
}

// CountingSettings contains the counting and coaching configuration
type CountingSettings struct {
	System       string `hcl:"system,optional"`
	BettingStyle string `hcl:"betting_style,optional"`
	ShowCount    bool   `hcl:"show_count,optional"`
	ShowAdvice   bool   `hcl:"show_advice,optional"`
	ShowBetHints bool   `hcl:"show_bet_hints,optional"`
}

// DefaultSettings returns the default session configuration
func DefaultSettings() *Settings {
	return &Settings{
		Table: TableSettings{
			Decks:       6,
			Penetration: 0.75,
			MinBet:      25,
			MaxBet:      500,
			Bankroll:    1000,
			Seats:       3,
			HumanSeat:   1,
			PlaySpeed:   "normal",
		},
		Rules: RuleSettings{
			DoubleAfterSplit: true,
			LateSurrender:    true,
			MaxSplitHands:    4,
		},
		Counting: CountingSettings{
			System:       "hi-lo",
			BettingStyle: "flat",
			ShowCount:    true,
			ShowAdvice:   true,
			ShowBetHints: true,
		},
	}
}

// Load reads session settings from an HCL file. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(filename string) (*Settings, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Pointer blocks so any block can be omitted entirely.
	var raw struct {
		Table    *TableSettings    `hcl:"table,block"`
		Rules    *RuleSettings     `hcl:"rules,block"`
		Counting *CountingSettings `hcl:"counting,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var settings Settings
	if raw.Table != nil {
		settings.Table = *raw.Table
	}
	if raw.Rules != nil {
		settings.Rules = *raw.Rules
	}
	if raw.Counting != nil {
		settings.Counting = *raw.Counting
	}

	settings.applyDefaults()
	return &settings, nil
}

// applyDefaults fills zero-valued fields with the default configuration.
// Boolean rule toggles are taken as written: an omitted toggle is off,
// matching how rule variants are usually quoted.
func (s *Settings) applyDefaults() {
	def := DefaultSettings()

	if s.Table.Decks == 0 {
		s.Table.Decks = def.Table.Decks
	}
	if s.Table.Penetration == 0 {
		s.Table.Penetration = def.Table.Penetration
	}
	if s.Table.MinBet == 0 {
		s.Table.MinBet = def.Table.MinBet
	}
	if s.Table.MaxBet == 0 {
		s.Table.MaxBet = def.Table.MaxBet
	}
	if s.Table.Bankroll == 0 {
		s.Table.Bankroll = def.Table.Bankroll
	}
	if s.Table.Seats == 0 {
		s.Table.Seats = def.Table.Seats
	}
	if s.Table.HumanSeat == 0 {
		s.Table.HumanSeat = def.Table.HumanSeat
	}
	if s.Table.PlaySpeed == "" {
		s.Table.PlaySpeed = def.Table.PlaySpeed
	}
	if s.Rules.MaxSplitHands == 0 {
		s.Rules.MaxSplitHands = def.Rules.MaxSplitHands
	}
	if s.Counting.System == "" {
		s.Counting.System = def.Counting.System
	}
	if s.Counting.BettingStyle == "" {
		s.Counting.BettingStyle = def.Counting.BettingStyle
	}
}

// Validate validates the session settings. The table rules carry their own
// deeper validation; this catches what the HCL schema cannot express.
func (s *Settings) Validate() error {
	if s.Table.Decks < 1 || s.Table.Decks > 8 {
		return fmt.Errorf("%w: decks %d outside 1..8", game.ErrInvalidConfiguration, s.Table.Decks)
	}
	if _, ok := pace(s.Table.PlaySpeed); !ok {
		return fmt.Errorf("%w: unknown play speed %q", game.ErrInvalidConfiguration, s.Table.PlaySpeed)
	}
	return s.ToRules().Validate()
}

// ToRules bridges the settings to the engine's rule set
func (s *Settings) ToRules() game.Rules {
	return game.Rules{
		Decks:             s.Table.Decks,
		PenetrationMarker: s.Table.Penetration,
		MinBet:            decimal.NewFromInt(s.Table.MinBet),
		MaxBet:            decimal.NewFromInt(s.Table.MaxBet),
		StartingBankroll:  decimal.NewFromInt(s.Table.Bankroll),
		DealerHitsSoft17:  s.Rules.DealerHitsSoft17,
		DoubleAfterSplit:  s.Rules.DoubleAfterSplit,
		LateSurrender:     s.Rules.LateSurrender,
		ResplitAces:       s.Rules.ResplitAces,
		MaxSplitHands:     s.Rules.MaxSplitHands,
		Seats:             s.Table.Seats,
		HumanSeat:         s.Table.HumanSeat,
		CountingSystem:    s.Counting.System,
		BettingStyle:      strategy.Style(s.Counting.BettingStyle),
	}
}

// Pace returns the configured play speed as an engine pace
func (s *Settings) Pace() game.Pace {
	p, _ := pace(s.Table.PlaySpeed)
	return p
}

func pace(speed string) (game.Pace, bool) {
	switch speed {
	case "slow":
		return game.PaceSlow, true
	case "normal":
		return game.PaceNormal, true
	case "fast":
		return game.PaceFast, true
	case "immediate":
		return game.PaceImmediate, true
	default:
		return game.PaceNormal, false
	}
}
