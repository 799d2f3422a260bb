package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func newPacedTable(t *testing.T, pace Pace, clock quartz.Clock) (*Pacer, *Table) {
	t.Helper()
	table := newTestTable(t, soloRules(), WithManualStepping())
	stackShoe(table, deck.King, deck.Nine, deck.Queen, deck.Ten)
	return NewPacer(table, pace, clock, quietLogger()), table
}

func TestPacerImmediateRunsSynchronously(t *testing.T) {
	t.Parallel()
	pacer, table := newPacedTable(t, PaceImmediate, quartz.NewMock(t))

	require.NoError(t, pacer.Do(func(tb *Table) error {
		return tb.PlaceBet(decimal.NewFromInt(100))
	}))
	require.NoError(t, pacer.Do(func(tb *Table) error { return tb.StartRound() }))

	// The whole deal ran inline; the machine is blocked on the human.
	assert.Equal(t, PhasePlayerTurn, table.Phase())
	assert.Equal(t, StepHumanAction, table.PendingStep())

	require.NoError(t, pacer.Do(func(tb *Table) error { return tb.Stand() }))
	assert.Equal(t, PhaseRoundEnd, table.Phase())
	requireAmount(t, 1100, bankroll(table))
}

func TestPacerSchedulesOneStepPerDelay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	pacer, table := newPacedTable(t, PaceNormal, mockClock)

	require.NoError(t, pacer.Do(func(tb *Table) error {
		return tb.PlaceBet(decimal.NewFromInt(100))
	}))
	require.NoError(t, pacer.Do(func(tb *Table) error { return tb.StartRound() }))

	// Nothing moves until the clock does.
	assert.Equal(t, PhaseDealing, table.Phase())
	assert.Empty(t, table.Human().Hands[0].Cards)

	// Each card delay releases exactly one card of the initial deal.
	for dealt := 1; dealt <= 4; dealt++ {
		mockClock.Advance(800 * time.Millisecond).MustWait(ctx)
	}
	assert.Equal(t, PhasePlayerTurn, table.Phase())
	assert.Len(t, table.Human().Hands[0].Cards, 2)
	assert.Len(t, table.Dealer().Cards, 2)

	require.NoError(t, pacer.Do(func(tb *Table) error { return tb.Stand() }))

	// Hole card reveal on the card delay, then resolution on the longer
	// result delay.
	mockClock.Advance(800 * time.Millisecond).MustWait(ctx)
	assert.Equal(t, PhaseDealerTurn, table.Phase())
	mockClock.Advance(1500 * time.Millisecond).MustWait(ctx)

	assert.Equal(t, PhaseRoundEnd, table.Phase())
	requireAmount(t, 1100, bankroll(table))
}

func TestPacerCancelDropsPendingTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mockClock := quartz.NewMock(t)
	pacer, table := newPacedTable(t, PaceFast, mockClock)

	require.NoError(t, pacer.Do(func(tb *Table) error {
		return tb.PlaceBet(decimal.NewFromInt(100))
	}))
	require.NoError(t, pacer.Do(func(tb *Table) error { return tb.StartRound() }))

	mockClock.Advance(400 * time.Millisecond).MustWait(ctx)
	mockClock.Advance(400 * time.Millisecond).MustWait(ctx)
	pacer.Cancel()

	// The first card went to the seat and the second to the dealer; the
	// canceled chain never deals the rest.
	pacer.View(func(tb *Table) {
		assert.Equal(t, PhaseDealing, tb.Phase())
		assert.Len(t, tb.Human().Hands[0].Cards, 1)
		assert.Len(t, tb.Dealer().Cards, 1)
	})

	// A reset through the pacer refunds the stake and rearms nothing.
	require.NoError(t, pacer.Do(func(tb *Table) error {
		tb.Reset()
		return nil
	}))
	assert.Equal(t, PhaseBetting, table.Phase())
	requireAmount(t, 1000, bankroll(table))
}
