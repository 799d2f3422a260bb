package game

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func TestSplitAcesGetOneCardEach(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, soloRules())
	stackShoe(table, deck.Ace, deck.Nine, deck.Ace, deck.Nine, deck.King, deck.Queen)

	mustBet(t, table, 100)
	require.NoError(t, table.StartRound())
	require.Contains(t, table.ValidActions(), ActionSplit)
	require.NoError(t, table.Split())

	// Each ace takes its forced card and stands; no further action and
	// straight to the dealer.
	require.Equal(t, PhaseRoundEnd, table.Phase())
	human := table.Human()
	require.Len(t, human.Hands, 2)
	for _, h := range human.Hands {
		assert.Len(t, h.Cards, 2)
		assert.Equal(t, 21, h.Value())
		assert.True(t, h.Split)
		// A split ace drawing a ten is 21, never a natural.
		assert.False(t, h.IsBlackjack())
	}

	// Both 21s beat the dealer's 18 at even money on doubled stakes.
	assert.Equal(t, 18, table.Dealer().Value())
	requireAmount(t, 1200, bankroll(table))
}

func TestSplitHandsPlayInOrder(t *testing.T) {
	t.Parallel()
	table := newTestTable(t, soloRules())
	// Split eights against a six; each hand draws a ten and stands on 18.
	stackShoe(table, deck.Eight, deck.Six, deck.Eight, deck.Ten,
		deck.Ten, deck.Ten, deck.Ten)

	mustBet(t, table, 100)
	require.NoError(t, table.StartRound())
	require.NoError(t, table.Split())

	human := table.Human()
	require.Len(t, human.Hands, 2)
	require.Equal(t, PhasePlayerTurn, table.Phase())
	assert.Equal(t, 0, human.CurrentHand)

	require.NoError(t, table.Stand())
	assert.Equal(t, PhasePlayerTurn, table.Phase())
	require.NoError(t, table.Stand())

	// Dealer 16 draws once and busts; both hands win.
	require.Equal(t, PhaseRoundEnd, table.Phase())
	assert.True(t, table.Dealer().IsBust())
	requireAmount(t, 1200, bankroll(table))
}

func TestSplitLimitStopsResplits(t *testing.T) {
	t.Parallel()
	rules := soloRules()
	rules.MaxSplitHands = 2
	table := newTestTable(t, rules)
	// Both split hands draw another eight, pairs again, but the table is
	// already at its hand limit.
	stackShoe(table, deck.Eight, deck.Six, deck.Eight, deck.Ten,
		deck.Eight, deck.Eight, deck.Ten)

	mustBet(t, table, 100)
	require.NoError(t, table.StartRound())
	require.NoError(t, table.Split())

	require.Len(t, table.Human().Hands, 2)
	assert.True(t, table.Human().Hands[0].IsPair())
	assert.NotContains(t, table.ValidActions(), ActionSplit)
	require.ErrorIs(t, table.Split(), ErrIllegalAction)
}

func TestDoubleAfterSplitGatedByRule(t *testing.T) {
	t.Parallel()
	rules := soloRules()
	rules.DoubleAfterSplit = false
	table := newTestTable(t, rules)
	// First split hand lands on 8,3 = 11, a double in any chart, but the
	// house does not allow doubling after a split.
	stackShoe(table, deck.Eight, deck.Six, deck.Eight, deck.Ten,
		deck.Three, deck.Two, deck.Ten)

	mustBet(t, table, 100)
	require.NoError(t, table.StartRound())
	require.NoError(t, table.Split())

	assert.Equal(t, 11, table.Human().Hands[0].Value())
	assert.NotContains(t, table.ValidActions(), ActionDouble)
	require.ErrorIs(t, table.Double(), ErrIllegalAction)
}

func TestSplitRequiresBankroll(t *testing.T) {
	t.Parallel()
	rules := soloRules()
	rules.StartingBankroll = decimal.NewFromInt(150)
	table := newTestTable(t, rules)
	stackShoe(table, deck.Eight, deck.Six, deck.Eight, deck.Ten)

	mustBet(t, table, 100)
	require.NoError(t, table.StartRound())

	// Only 50 remains; the second stake cannot be covered.
	assert.NotContains(t, table.ValidActions(), ActionSplit)
	require.ErrorIs(t, table.Split(), ErrIllegalAction)
}
