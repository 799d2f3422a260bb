package strategy

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Style identifies a bet-sizing discipline
type Style string

const (
	StyleFlat         Style = "flat"
	StyleKelly        Style = "kelly"
	StyleAggressive   Style = "aggressive"
	StyleConservative Style = "conservative"
	StyleMartingale   Style = "martingale"
	StyleOscar        Style = "oscar"
	StyleWonging      Style = "wonging"
)

// StyleInfo describes a betting style for display and selection
type StyleInfo struct {
	ID             Style
	Name           string
	Description    string
	MinCountToPlay float64
	RiskLevel      string
}

var styles = map[Style]StyleInfo{
	StyleFlat: {
		ID:             StyleFlat,
		Name:           "Flat Betting",
		Description:    "Bet the same amount every hand regardless of count. Safest but lowest edge.",
		MinCountToPlay: -999,
		RiskLevel:      "low",
	},
	StyleKelly: {
		ID:             StyleKelly,
		Name:           "Kelly Criterion",
		Description:    "Mathematically optimal bet sizing based on your edge from the count. Balanced risk/reward.",
		MinCountToPlay: -999,
		RiskLevel:      "medium",
	},
	StyleAggressive: {
		ID:             StyleAggressive,
		Name:           "Aggressive Ramp",
		Description:    "Large bet spreads (1-20 units) with rapid escalation. High variance, high returns, high heat.",
		MinCountToPlay: -999,
		RiskLevel:      "high",
	},
	StyleConservative: {
		ID:             StyleConservative,
		Name:           "Conservative Spread",
		Description:    "Small spread (1-6 units) with slow ramp. Lower risk, less heat, but smaller edge.",
		MinCountToPlay: -999,
		RiskLevel:      "low",
	},
	StyleMartingale: {
		ID:             StyleMartingale,
		Name:           "Martingale System",
		Description:    "Double bet after each loss. NOT RECOMMENDED - high risk of ruin, ignores count.",
		MinCountToPlay: -999,
		RiskLevel:      "high",
	},
	StyleOscar: {
		ID:             StyleOscar,
		Name:           "Oscar's Grind",
		Description:    "Increase bet by 1 unit after wins, reset after reaching profit goal. Conservative system.",
		MinCountToPlay: -999,
		RiskLevel:      "low",
	},
	StyleWonging: {
		ID:             StyleWonging,
		Name:           "Wonging (Back-Counting)",
		Description:    "Only play when count is favorable (+2 or higher). Leave table on negative counts.",
		MinCountToPlay: 2,
		RiskLevel:      "medium",
	},
}

// LookupStyle returns the betting style with the given ID
func LookupStyle(id Style) (StyleInfo, error) {
	s, ok := styles[id]
	if !ok {
		return StyleInfo{}, fmt.Errorf("unknown betting style %q", id)
	}
	return s, nil
}

// Styles returns all betting styles sorted by ID
func Styles() []StyleInfo {
	all := make([]StyleInfo, 0, len(styles))
	for _, s := range styles {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// BetContext carries everything a betting style may consult when sizing
// the next wager.
type BetContext struct {
	TrueCount  float64
	MinBet     decimal.Decimal
	MaxBet     decimal.Decimal
	Bankroll   decimal.Decimal
	LastBet    decimal.Decimal
	LastWon    bool
	PlayedHand bool // false on the first hand of a session
}

// BetAdvice is a sized wager with the reasoning. A zero amount means sit
// out this round (wonging below the entry count).
type BetAdvice struct {
	Amount decimal.Decimal
	Reason string
}

// SizeBet applies a betting style to the current situation. Amounts are
// clamped to the table limits; martingale and oscar read the previous bet
// and result out of the context.
func SizeBet(style Style, ctx BetContext) BetAdvice {
	tc := ctx.TrueCount

	if style == StyleWonging && tc < styles[StyleWonging].MinCountToPlay {
		return BetAdvice{
			Amount: decimal.Zero,
			Reason: fmt.Sprintf("Count is %s - Wong out (sit out) until count improves", formatTC(tc)),
		}
	}

	switch style {
	case StyleFlat:
		return BetAdvice{ctx.MinBet, "Flat betting - same amount every hand for low variance"}

	case StyleKelly:
		// Each true-count point is worth roughly half a percent of edge;
		// divide by the ~1.3 variance of a blackjack hand.
		edge := tc * 0.005
		if edge <= 0 {
			return BetAdvice{ctx.MinBet, "No advantage - Kelly says minimum bet"}
		}
		kelly := ctx.Bankroll.Mul(decimal.NewFromFloat(edge)).Div(decimal.NewFromFloat(1.3)).Floor()
		bet := clampBet(kelly, ctx.MinBet, ctx.MaxBet)
		return BetAdvice{bet, fmt.Sprintf("Kelly Criterion: %.2f%% edge = $%s optimal bet", edge*100, bet.String())}

	case StyleAggressive:
		switch {
		case tc >= 5:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(20)), ctx.MaxBet), fmt.Sprintf("TC %s - Aggressive max bet!", formatTC(tc))}
		case tc >= 4:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(12)), ctx.MaxBet), fmt.Sprintf("TC %s - Large aggressive bet", formatTC(tc))}
		case tc >= 3:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(8)), ctx.MaxBet), fmt.Sprintf("TC %s - Ramping up aggressively", formatTC(tc))}
		case tc >= 2:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(4)), ctx.MaxBet), fmt.Sprintf("TC %s - Moderate aggressive bet", formatTC(tc))}
		case tc < 0:
			return BetAdvice{ctx.MinBet, "Negative count - min bet"}
		default:
			return BetAdvice{ctx.MinBet, "Neutral count - min bet"}
		}

	case StyleConservative:
		switch {
		case tc >= 5:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(6)), ctx.MaxBet), fmt.Sprintf("TC %s - Conservative max bet", formatTC(tc))}
		case tc >= 4:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(5)), ctx.MaxBet), fmt.Sprintf("TC %s - Gradual increase", formatTC(tc))}
		case tc >= 3:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(4)), ctx.MaxBet), fmt.Sprintf("TC %s - Moderate conservative bet", formatTC(tc))}
		case tc >= 2:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(2)), ctx.MaxBet), fmt.Sprintf("TC %s - Small increase", formatTC(tc))}
		default:
			return BetAdvice{ctx.MinBet, "Conservative style - keeping bets low"}
		}

	case StyleMartingale:
		if ctx.PlayedHand && !ctx.LastWon && ctx.LastBet.IsPositive() {
			return BetAdvice{
				Amount: capBet(ctx.LastBet.Mul(decimal.NewFromInt(2)), ctx.MaxBet),
				Reason: "Martingale: doubling after loss (WARNING: high risk!)",
			}
		}
		return BetAdvice{ctx.MinBet, "Martingale: reset to min after win"}

	case StyleOscar:
		if ctx.PlayedHand && ctx.LastWon && ctx.LastBet.IsPositive() {
			return BetAdvice{
				Amount: capBet(ctx.LastBet.Add(ctx.MinBet), ctx.MaxBet),
				Reason: "Oscar's Grind: +1 unit after win",
			}
		}
		if ctx.LastBet.IsPositive() {
			return BetAdvice{ctx.LastBet, "Oscar's Grind: maintain bet after loss"}
		}
		return BetAdvice{ctx.MinBet, "Oscar's Grind: maintain bet after loss"}

	case StyleWonging:
		switch {
		case tc >= 5:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(10)), ctx.MaxBet), fmt.Sprintf("Wonging: TC %s - big bet while here", formatTC(tc))}
		case tc >= 3:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(6)), ctx.MaxBet), fmt.Sprintf("Wonging: TC %s - solid advantage", formatTC(tc))}
		default:
			return BetAdvice{capBet(ctx.MinBet.Mul(decimal.NewFromInt(3)), ctx.MaxBet), fmt.Sprintf("Wonging: TC %s - playing favorable count", formatTC(tc))}
		}

	default:
		return BetAdvice{ctx.MinBet, "Standard minimum bet"}
	}
}

// NPCBet sizes a table companion's wager: a simple 1x/2x/3x/4x count ramp,
// capped by the table max and the player's bankroll, rounded down to a
// whole number of minimum-bet chips.
func NPCBet(trueCount float64, minBet, maxBet, bankroll decimal.Decimal) decimal.Decimal {
	mult := int64(1)
	switch {
	case trueCount >= 4:
		mult = 4
	case trueCount >= 3:
		mult = 3
	case trueCount >= 2:
		mult = 2
	}
	bet := decimal.Min(minBet.Mul(decimal.NewFromInt(mult)), maxBet, bankroll)
	if minBet.IsPositive() {
		bet = bet.Div(minBet).Floor().Mul(minBet)
	}
	return bet
}

func capBet(bet, maxBet decimal.Decimal) decimal.Decimal {
	return decimal.Min(bet, maxBet)
}

func clampBet(bet, minBet, maxBet decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(bet, minBet), maxBet)
}

func formatTC(tc float64) string {
	if tc >= 0 {
		return fmt.Sprintf("+%.0f", tc)
	}
	return fmt.Sprintf("%.0f", tc)
}
