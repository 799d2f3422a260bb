package strategy

import (
	"fmt"
	"math"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// IndexPlay is a count-based deviation from basic strategy: in the named
// situation, once the true count crosses the index, the index action
// replaces the basic one. Non-negative indexes trigger at or above the
// threshold, negative indexes at or below.
type IndexPlay struct {
	Situation   string
	BasicAction Action
	IndexAction Action
	Index       int
	Description string
	EdgeGain    string
}

// Illustrious18 holds the eighteen highest-value Hi-Lo deviations, in
// descending order of edge gained.
var Illustrious18 = []IndexPlay{
	{"16 vs 10", Hit, Stand, 0, "Stand on 16 vs dealer 10 when TC >= 0", "+0.10%"},
	{"15 vs 10", Hit, Stand, 4, "Stand on 15 vs dealer 10 when TC >= +4", "+0.08%"},
	{"10,10 vs 5", Stand, Split, 5, "Split 10s vs dealer 5 when TC >= +5", "+0.07%"},
	{"10,10 vs 6", Stand, Split, 4, "Split 10s vs dealer 6 when TC >= +4", "+0.08%"},
	{"10 vs 10", Hit, Double, 4, "Double 10 vs dealer 10 when TC >= +4", "+0.05%"},
	{"12 vs 3", Hit, Stand, 2, "Stand on 12 vs dealer 3 when TC >= +2", "+0.04%"},
	{"12 vs 2", Hit, Stand, 3, "Stand on 12 vs dealer 2 when TC >= +3", "+0.03%"},
	{"11 vs A", Hit, Double, 1, "Double 11 vs dealer Ace when TC >= +1", "+0.05%"},
	{"9 vs 2", Hit, Double, 1, "Double 9 vs dealer 2 when TC >= +1", "+0.03%"},
	{"10 vs A", Hit, Double, 4, "Double 10 vs dealer Ace when TC >= +4", "+0.04%"},
	{"9 vs 7", Hit, Double, 3, "Double 9 vs dealer 7 when TC >= +3", "+0.02%"},
	{"16 vs 9", Hit, Stand, 5, "Stand on 16 vs dealer 9 when TC >= +5", "+0.03%"},
	{"13 vs 2", Stand, Hit, -1, "Hit 13 vs dealer 2 when TC <= -1", "+0.02%"},
	{"12 vs 4", Stand, Hit, 0, "Hit 12 vs dealer 4 when TC <= 0", "+0.02%"},
	{"12 vs 5", Stand, Hit, -2, "Hit 12 vs dealer 5 when TC <= -2", "+0.02%"},
	{"13 vs 3", Stand, Hit, -2, "Hit 13 vs dealer 3 when TC <= -2", "+0.02%"},
	{"A,8 vs 5", Stand, Double, 1, "Double soft 19 vs dealer 5 when TC >= +1", "+0.01%"},
	{"A,8 vs 6", Stand, Double, 1, "Double soft 19 vs dealer 6 when TC >= +1", "+0.01%"},
}

// Fab4 holds the four most valuable surrender deviations
var Fab4 = []IndexPlay{
	{"16 vs 10", Hit, Surrender, 0, "Surrender 16 vs dealer 10 when TC >= 0", "+0.07%"},
	{"16 vs 9", Hit, Surrender, 2, "Surrender 16 vs dealer 9 when TC >= +2", "+0.02%"},
	{"15 vs 10", Hit, Surrender, 0, "Surrender 15 vs dealer 10 when TC >= 0", "+0.06%"},
	{"15 vs A", Hit, Surrender, 1, "Surrender 15 vs dealer Ace when TC >= +1", "+0.03%"},
}

// SituationKey builds the lookup key the index tables use. Ten pairs key as
// "10,10 vs N", two-card ace hands as "A,X vs N" and everything else as the
// hard total.
func SituationKey(cards []deck.Card, dealerUp deck.Rank) string {
	dealer := UpCardValue(dealerUp)

	if len(cards) == 2 && cards[0].Rank == cards[1].Rank && cards[0].Rank == deck.Ten {
		return fmt.Sprintf("10,10 vs %d", dealer)
	}
	if len(cards) == 2 && (cards[0].IsAce() || cards[1].IsAce()) {
		other := cards[0].Rank
		if cards[0].IsAce() {
			other = cards[1].Rank
		}
		if other != deck.Ace {
			return fmt.Sprintf("A,%s vs %d", other, dealer)
		}
	}
	value, _ := HandTotal(cards)
	return fmt.Sprintf("%d vs %d", value, dealer)
}

// FindIndexPlay returns the deviation that applies to the situation at the
// given true count, or nil when basic strategy stands. Fab 4 surrenders are
// checked first when surrender is still legal; surrender indexes only ever
// trigger on high counts, so they use the at-or-above rule unconditionally.
func FindIndexPlay(cards []deck.Card, dealerUp deck.Rank, trueCount float64, surrenderAllowed bool) *IndexPlay {
	situation := SituationKey(cards, dealerUp)

	if surrenderAllowed {
		for i := range Fab4 {
			play := &Fab4[i]
			if play.Situation == situation && trueCount >= float64(play.Index) {
				return play
			}
		}
	}

	for i := range Illustrious18 {
		play := &Illustrious18[i]
		if play.Situation != situation {
			continue
		}
		if play.Index >= 0 && trueCount >= float64(play.Index) {
			return play
		}
		if play.Index < 0 && trueCount <= float64(play.Index) {
			return play
		}
	}
	return nil
}

// RuleSet is the subset of table rules the edge model cares about
type RuleSet struct {
	Decks            int
	DealerHitsSoft17 bool
	DoubleAfterSplit bool
	LateSurrender    bool
	ResplitAces      bool
}

// BaseHouseEdge estimates the house edge in percent for a rule set, for a
// player using perfect basic strategy. Adjustments are the standard
// per-rule figures layered on a 0.50% baseline.
func BaseHouseEdge(rules RuleSet) float64 {
	edge := 0.50

	switch rules.Decks {
	case 1:
		edge -= 0.15
	case 2:
		edge -= 0.10
	case 6:
		edge += 0.02
	case 8:
		edge += 0.04
	}
	if rules.DealerHitsSoft17 {
		edge += 0.20
	}
	if rules.DoubleAfterSplit {
		edge -= 0.14
	}
	if rules.LateSurrender {
		edge -= 0.08
	}
	if rules.ResplitAces {
		edge -= 0.06
	}

	return math.Round(edge*100) / 100
}

// PlayerEdge converts a true count into the player's advantage in percent.
// Each true-count point is worth roughly half a percent, offset by the
// house edge of the rules in play.
func PlayerEdge(trueCount, baseHouseEdge float64) float64 {
	return math.Round((trueCount*0.5-baseHouseEdge)*100) / 100
}

// RuleVariantName renders a rule set in the conventional shorthand,
// e.g. "6 Decks, S17, DAS, LS".
func RuleVariantName(rules RuleSet) string {
	name := fmt.Sprintf("%d Deck", rules.Decks)
	if rules.Decks > 1 {
		name += "s"
	}
	if rules.DealerHitsSoft17 {
		name += ", H17"
	} else {
		name += ", S17"
	}
	if rules.DoubleAfterSplit {
		name += ", DAS"
	}
	if rules.LateSurrender {
		name += ", LS"
	}
	if rules.ResplitAces {
		name += ", RSA"
	}
	return name
}
