// Package strategy implements the playing and betting advisor: basic
// strategy with plain-language rationale, true-count index deviations
// (Illustrious 18 and Fab 4) and the bet-sizing styles.
//
// The advisor is pure: it never touches table state, it only maps a
// situation to a recommendation. The game engine decides what is legal;
// the advisor assumes the caller passed accurate canDouble/canSplit flags.
package strategy

import (
	"fmt"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// Action is a recommended play
type Action string

const (
	Hit       Action = "hit"
	Stand     Action = "stand"
	Double    Action = "double"
	Split     Action = "split"
	Surrender Action = "surrender"
)

// Advice pairs a recommended action with the reasoning behind it
type Advice struct {
	Action Action
	Reason string
}

// HandTotal returns the best blackjack value of a set of cards and whether
// the total is soft. Aces start at 11 and drop to 1 one at a time while the
// total busts; the hand is soft while at least one ace still counts 11.
func HandTotal(cards []deck.Card) (value int, soft bool) {
	aces := 0
	for _, c := range cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value, aces > 0
}

// UpCardValue returns the dealer up-card value used by the strategy tables:
// ace is 11, faces are 10.
func UpCardValue(rank deck.Rank) int {
	return rank.Value()
}

// BasicAdvice returns the basic strategy play for the hand against the
// dealer up card. Pair rules are consulted first, then soft totals, then
// hard totals. When doubling or splitting is not available the advice
// falls back the way the printed charts do (double falls back to hit, or
// stand for soft 18 and up).
func BasicAdvice(cards []deck.Card, dealerUp deck.Rank, canDouble, canSplit bool) Advice {
	dealer := UpCardValue(dealerUp)

	if canSplit && len(cards) == 2 && cards[0].Rank == cards[1].Rank {
		if advice, ok := pairAdvice(cards[0].Rank, dealer); ok {
			return advice
		}
	}

	value, soft := HandTotal(cards)
	if soft {
		return softAdvice(value, dealer, canDouble)
	}
	return hardAdvice(value, dealer, canDouble)
}

// pairAdvice returns the split recommendation for a pair, or ok=false when
// the pair plays as its hard or soft total instead.
func pairAdvice(rank deck.Rank, dealer int) (Advice, bool) {
	switch {
	case rank == deck.Ace:
		return Advice{Split, "Always split Aces - gives you two chances at 21"}, true
	case rank == deck.Eight:
		return Advice{Split, "16 is a terrible hand. Split 8s to improve your position"}, true
	case (deck.Card{Rank: rank}).IsTenValue():
		return Advice{Stand, "20 is too strong to split. Stand and win"}, true
	case rank == deck.Two || rank == deck.Three:
		if dealer >= 2 && dealer <= 7 {
			return Advice{Split, "Split small pairs against weak dealer"}, true
		}
	case rank == deck.Six:
		if dealer >= 2 && dealer <= 6 {
			return Advice{Split, "Split 6s when dealer shows 2-6"}, true
		}
	case rank == deck.Seven:
		if dealer >= 2 && dealer <= 7 {
			return Advice{Split, "Split 7s against dealer 2-7"}, true
		}
	case rank == deck.Nine:
		if (dealer >= 2 && dealer <= 6) || dealer == 8 || dealer == 9 {
			return Advice{Split, "Split 9s against weak cards (avoid 7, 10, A)"}, true
		}
		return Advice{Stand, "18 is strong against dealer 7, 10, or Ace"}, true
	}
	// Fives and everything else play as the total.
	return Advice{}, false
}

func softAdvice(value, dealer int, canDouble bool) Advice {
	if value >= 19 {
		return Advice{Stand, fmt.Sprintf("Soft %d is very strong - stand", value)}
	}
	if value == 18 {
		if dealer >= 2 && dealer <= 6 && canDouble {
			return Advice{Double, "Double soft 18 against weak dealer (or stand)"}
		}
		if dealer >= 9 {
			return Advice{Hit, "Soft 18 is weak against 9, 10, A - hit to improve"}
		}
		return Advice{Stand, "Soft 18 is decent against mid-range dealer cards"}
	}
	if value >= 13 && value <= 17 {
		if dealer >= 4 && dealer <= 6 && canDouble {
			return Advice{Double, fmt.Sprintf("Double soft %d against dealer's weak %d", value, dealer)}
		}
		return Advice{Hit, fmt.Sprintf("Soft %d needs improvement - hit", value)}
	}
	return Advice{Hit, "Hit to improve your soft hand"}
}

func hardAdvice(value, dealer int, canDouble bool) Advice {
	switch {
	case value >= 17:
		return Advice{Stand, fmt.Sprintf("%d is too risky to hit - stand", value)}
	case value >= 13:
		if dealer >= 2 && dealer <= 6 {
			return Advice{Stand, fmt.Sprintf("Stand on %d - let dealer bust with weak %d", value, dealer)}
		}
		return Advice{Hit, fmt.Sprintf("%d is too weak against dealer %d - must hit", value, dealer)}
	case value == 12:
		if dealer >= 4 && dealer <= 6 {
			return Advice{Stand, "Stand on 12 vs weak dealer 4-6"}
		}
		return Advice{Hit, "Hit 12 - only 4 cards bust you"}
	case value == 11:
		if canDouble {
			return Advice{Double, "11 is the best double down hand - high chance of 21"}
		}
		return Advice{Hit, "Hit your 11 to get closer to 21"}
	case value == 10:
		if canDouble && dealer <= 9 {
			return Advice{Double, "Double 10 against dealer weak/mid cards"}
		}
		return Advice{Hit, "Hit 10 against strong dealer card"}
	case value == 9:
		if canDouble && dealer >= 3 && dealer <= 6 {
			return Advice{Double, "Double 9 against weak dealer 3-6"}
		}
		return Advice{Hit, "Hit 9 to build a stronger hand"}
	default:
		return Advice{Hit, fmt.Sprintf("%d is too low - always hit", value)}
	}
}
