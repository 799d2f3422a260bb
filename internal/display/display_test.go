package display

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/game"
)

func TestFormatCard(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	up := deck.NewCard(deck.Hearts, deck.Ace).FaceUpCopy()
	assert.Contains(t, r.FormatCard(up), "A♥")

	down := deck.NewCard(deck.Spades, deck.King)
	assert.Contains(t, r.FormatCard(down), "??")
}

func TestFormatHand(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	h := game.NewHand(decimal.NewFromInt(100))
	h.AddCard(deck.NewCard(deck.Spades, deck.Ace).FaceUpCopy())
	h.AddCard(deck.NewCard(deck.Hearts, deck.Six).FaceUpCopy())
	out := r.FormatHand(h)
	assert.Contains(t, out, "soft 17")

	h.AddCard(deck.NewCard(deck.Clubs, deck.King))
	// A face-down card hides the total.
	assert.NotContains(t, r.FormatHand(h), "(")
}

func TestSystemsAndStylesTables(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	systems := r.Systems()
	assert.Contains(t, systems, "Hi-Lo")
	assert.Contains(t, systems, "Wong Halves")
	assert.Contains(t, systems, "unbalanced")
	assert.Contains(t, systems, "level 3")
	assert.Contains(t, systems, "ace side count")

	styles := r.Styles()
	assert.Contains(t, styles, "Kelly")
	assert.Contains(t, styles, "Wonging")
}

func TestTableRendering(t *testing.T) {
	t.Parallel()
	rules := game.DefaultRules()
	rules.Seats = 1
	table, err := game.NewTable(rules)
	require.NoError(t, err)

	out := NewRenderer().Table(table)
	assert.Contains(t, out, "Dealer:")
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "running +0")
}
