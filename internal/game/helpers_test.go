package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/randutil"
	"github.com/joelfrenette/card-counting-coach-com/internal/shoe"
)

// soloRules is a one-seat table with late surrender on, handy for
// scripting exact deals.
func soloRules() Rules {
	r := DefaultRules()
	r.Seats = 1
	r.HumanSeat = 1
	return r
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestTable(t *testing.T, rules Rules, opts ...Option) *Table {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithRNG(randutil.New(1))}, opts...)
	table, err := NewTable(rules, opts...)
	require.NoError(t, err)
	return table
}

// stackShoe replaces the table's shoe with a scripted deal order and
// zeroes the count, so tests control every card.
func stackShoe(t *Table, ranks ...deck.Rank) {
	cards := make([]deck.Card, len(ranks))
	suits := []deck.Suit{deck.Spades, deck.Hearts, deck.Diamonds, deck.Clubs}
	for i, r := range ranks {
		cards[i] = deck.NewCard(suits[i%len(suits)], r)
	}
	t.shoe = shoe.NewStacked(cards...)
	t.counter.Reset()
}

func mustBet(t *testing.T, table *Table, amount int64) {
	t.Helper()
	require.NoError(t, table.PlaceBet(decimal.NewFromInt(amount)))
}

func bankroll(table *Table) decimal.Decimal {
	return table.Human().Bankroll
}

func requireAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromInt(want)), "amount = %s, want %d", got, want)
}
