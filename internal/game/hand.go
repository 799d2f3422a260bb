package game

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Hand is one wagered blackjack hand. A seat starts each round with one
// hand and grows more only by splitting. Value is computed on demand from
// the cards, never cached.
type Hand struct {
	Cards       []deck.Card
	Bet         decimal.Decimal
	Active      bool
	Doubled     bool
	Split       bool
	Surrendered bool
}

// NewHand returns an empty active hand carrying the given bet
func NewHand(bet decimal.Decimal) *Hand {
	return &Hand{
		Cards:  make([]deck.Card, 0, 4),
		Bet:    bet,
		Active: true,
	}
}

// Value returns the best total: aces count 11 and demote to 1 one at a
// time while the hand busts.
func (h *Hand) Value() int {
	value, _ := strategy.HandTotal(h.Cards)
	return value
}

// IsSoft reports whether an ace still counts as 11
func (h *Hand) IsSoft() bool {
	_, soft := strategy.HandTotal(h.Cards)
	return soft
}

// IsBlackjack reports a natural: a two-card 21 on a hand that was not
// formed by a split. A split ace drawing a ten is 21, not blackjack.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && !h.Split && h.Value() == 21
}

// IsBust reports whether the hand has gone over 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// IsPair reports whether the hand is two cards of equal rank value, the
// condition for splitting. Ten and king form a splittable pair under this
// rule even though they are distinct ranks.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Value() == h.Cards[1].Value()
}

// CanDouble reports whether doubling is structurally possible: an active
// untouched two-card hand, optionally gated on the double-after-split rule.
// Bankroll is checked at action time, not here.
func (h *Hand) CanDouble(doubleAfterSplit bool) bool {
	if !h.Active || h.Doubled || len(h.Cards) != 2 {
		return false
	}
	if h.Split && !doubleAfterSplit {
		return false
	}
	return true
}

// CanSurrender reports whether late surrender is structurally possible:
// only on an untouched initial two-card hand.
func (h *Hand) CanSurrender() bool {
	return h.Active && len(h.Cards) == 2 && !h.Split && !h.Doubled
}

// AddCard appends a dealt card
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// String renders the hand for logs: "K♠ 6♥ (16)"
func (h *Hand) String() string {
	if len(h.Cards) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	out := strings.Join(parts, " ")
	if allFaceUp(h.Cards) {
		soft := ""
		if h.IsSoft() {
			soft = "soft "
		}
		out += " (" + soft + strconv.Itoa(h.Value()) + ")"
	}
	return out
}

func allFaceUp(cards []deck.Card) bool {
	for _, c := range cards {
		if !c.FaceUp {
			return false
		}
	}
	return true
}
