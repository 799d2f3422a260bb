package game

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func handOf(ranks ...deck.Rank) *Hand {
	h := NewHand(decimal.NewFromInt(100))
	for _, r := range ranks {
		c := deck.NewCard(deck.Spades, r)
		c.FaceUp = true
		h.AddCard(c)
	}
	return h
}

func TestHandValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, handOf(deck.Ace, deck.Ace).Value())
	assert.True(t, handOf(deck.Ace, deck.Ace).IsSoft())

	assert.Equal(t, 21, handOf(deck.Ace, deck.King).Value())

	// Ace demotes when a ten lands on soft 17.
	h := handOf(deck.Ace, deck.Six, deck.King)
	assert.Equal(t, 17, h.Value())
	assert.False(t, h.IsSoft())

	assert.True(t, handOf(deck.Ten, deck.Six, deck.King).IsBust())
}

func TestBlackjackRequiresNatural(t *testing.T) {
	t.Parallel()

	assert.True(t, handOf(deck.Ace, deck.King).IsBlackjack())
	assert.False(t, handOf(deck.Ace, deck.Five, deck.Five).IsBlackjack())

	// A two-card 21 on a split hand is just 21.
	split := handOf(deck.Ace, deck.King)
	split.Split = true
	assert.False(t, split.IsBlackjack())
}

func TestIsPairByValue(t *testing.T) {
	t.Parallel()

	assert.True(t, handOf(deck.Eight, deck.Eight).IsPair())
	// Ten and king carry equal value and split together.
	assert.True(t, handOf(deck.Ten, deck.King).IsPair())
	assert.False(t, handOf(deck.Ten, deck.Nine).IsPair())
	assert.False(t, handOf(deck.Eight, deck.Eight, deck.Eight).IsPair())
}

func TestCanDouble(t *testing.T) {
	t.Parallel()

	h := handOf(deck.Five, deck.Six)
	assert.True(t, h.CanDouble(true))

	h.Doubled = true
	assert.False(t, h.CanDouble(true))

	three := handOf(deck.Five, deck.Six, deck.Two)
	assert.False(t, three.CanDouble(true))

	split := handOf(deck.Five, deck.Six)
	split.Split = true
	assert.True(t, split.CanDouble(true))
	assert.False(t, split.CanDouble(false))
}

func TestCanSurrender(t *testing.T) {
	t.Parallel()

	assert.True(t, handOf(deck.Ten, deck.Six).CanSurrender())
	assert.False(t, handOf(deck.Ten, deck.Three, deck.Three).CanSurrender())

	split := handOf(deck.Ten, deck.Six)
	split.Split = true
	assert.False(t, split.CanSurrender())
}
