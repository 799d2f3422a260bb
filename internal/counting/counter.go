package counting

import (
	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// minDecksRemaining floors the true-count divisor at half a deck so the
// conversion never divides by a vanishing denominator late in the shoe.
const minDecksRemaining = 0.5

// Counter accumulates the running count for one counting system. Only cards
// revealed face up are counted; the dealer's hole card is counted when it is
// turned over, not when it is dealt.
type Counter struct {
	system  System
	running int
	seen    int
}

// NewCounter returns a counter at zero for the given system
func NewCounter(system System) *Counter {
	return &Counter{system: system}
}

// System returns the counting system this counter uses
func (c *Counter) System() System {
	return c.system
}

// Observe updates the running count for a card as it becomes visible.
// Face-down cards are ignored; the caller re-observes them at reveal time.
func (c *Counter) Observe(card deck.Card) {
	if !card.FaceUp {
		return
	}
	c.running += c.system.CardValue(card)
	c.seen++
}

// RunningCount returns the current running count
func (c *Counter) RunningCount() int {
	return c.running
}

// CardsSeen returns how many face-up cards have been counted
func (c *Counter) CardsSeen() int {
	return c.seen
}

// TrueCount converts the running count using the cards still in the shoe.
// Deviation thresholds are calibrated against the count per remaining deck,
// so the running count is normalized by cardsRemaining/52 with a floor of
// half a deck. Systems that skip true-count conversion, like KO, use the
// running count directly as the betting and strategy signal.
func (c *Counter) TrueCount(cardsRemaining int) float64 {
	if !c.system.NeedsTrueCount {
		return float64(c.running)
	}
	return TrueCount(c.running, cardsRemaining)
}

// Reset zeroes the count for a fresh shoe
func (c *Counter) Reset() {
	c.running = 0
	c.seen = 0
}

// DecksRemaining converts a card total to decks, floored at half a deck
func DecksRemaining(cardsRemaining int) float64 {
	decks := float64(cardsRemaining) / 52.0
	if decks < minDecksRemaining {
		return minDecksRemaining
	}
	return decks
}

// TrueCount divides a running count by the decks remaining
func TrueCount(running, cardsRemaining int) float64 {
	return float64(running) / DecksRemaining(cardsRemaining)
}
