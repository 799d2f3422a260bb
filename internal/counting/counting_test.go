package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func TestLookupKnownSystems(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"hi-lo", "ko", "hi-opt-i", "hi-opt-ii", "zen", "omega-ii", "halves"} {
		s, err := Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, s.ID)
	}

	_, err := Lookup("red-seven")
	assert.Error(t, err)
}

func TestBalancedSystems(t *testing.T) {
	t.Parallel()

	balanced := map[string]bool{
		"hi-lo":     true,
		"ko":        false,
		"hi-opt-i":  true,
		"hi-opt-ii": true,
		"zen":       true,
		"omega-ii":  true,
		"halves":    true,
	}
	for id, want := range balanced {
		s, err := Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, want, s.Balanced(), id)
	}
}

func TestSystemTraits(t *testing.T) {
	t.Parallel()

	traits := map[string]struct {
		level         int
		needsTC       bool
		needsAceCount bool
	}{
		"hi-lo":     {1, true, false},
		"ko":        {1, false, false},
		"hi-opt-i":  {1, true, true},
		"hi-opt-ii": {2, true, true},
		"zen":       {2, true, false},
		"omega-ii":  {2, true, true},
		"halves":    {3, true, false},
	}
	for id, want := range traits {
		s, err := Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, want.level, s.Level, id)
		assert.Equal(t, want.needsTC, s.NeedsTrueCount, id)
		assert.Equal(t, want.needsAceCount, s.NeedsAceSideCount, id)
	}
}

func TestHiLoValues(t *testing.T) {
	t.Parallel()

	s, err := Lookup("hi-lo")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Value(deck.Two))
	assert.Equal(t, 1, s.Value(deck.Six))
	assert.Equal(t, 0, s.Value(deck.Seven))
	assert.Equal(t, 0, s.Value(deck.Nine))
	assert.Equal(t, -1, s.Value(deck.Ten))
	assert.Equal(t, -1, s.Value(deck.King))
	assert.Equal(t, -1, s.Value(deck.Ace))
}

func TestHalvesDoubledTags(t *testing.T) {
	t.Parallel()

	s, err := Lookup("halves")
	require.NoError(t, err)

	// Textbook halves is 0.5/1/1/1.5/1/0.5/0/-0.5/-1/-1, stored doubled.
	assert.Equal(t, 1, s.Value(deck.Two))
	assert.Equal(t, 3, s.Value(deck.Five))
	assert.Equal(t, 0, s.Value(deck.Eight))
	assert.Equal(t, -1, s.Value(deck.Nine))
	assert.Equal(t, -2, s.Value(deck.Ace))
}

func TestObserveSkipsFaceDownCards(t *testing.T) {
	t.Parallel()

	s, err := Lookup("hi-lo")
	require.NoError(t, err)
	c := NewCounter(s)

	up := deck.NewCard(deck.Spades, deck.Five)
	up.FaceUp = true
	down := deck.NewCard(deck.Hearts, deck.King)

	c.Observe(up)
	c.Observe(down)
	assert.Equal(t, 1, c.RunningCount())
	assert.Equal(t, 1, c.CardsSeen())

	// Hole card turned over: now it counts.
	down.FaceUp = true
	c.Observe(down)
	assert.Equal(t, 0, c.RunningCount())
	assert.Equal(t, 2, c.CardsSeen())
}

func TestRunningCountSequence(t *testing.T) {
	t.Parallel()

	s, err := Lookup("hi-lo")
	require.NoError(t, err)
	c := NewCounter(s)

	seq := []struct {
		rank deck.Rank
		want int
	}{
		{deck.Two, 1},
		{deck.King, 0},
		{deck.Six, 1},
		{deck.Five, 2},
		{deck.Ace, 1},
		{deck.Eight, 1},
	}
	for _, step := range seq {
		card := deck.NewCard(deck.Clubs, step.rank)
		card.FaceUp = true
		c.Observe(card)
		assert.Equal(t, step.want, c.RunningCount(), "after %s", step.rank)
	}
}

func TestTrueCountConversion(t *testing.T) {
	t.Parallel()

	// 12 running with 3 decks left is a true 4.
	assert.InDelta(t, 4.0, TrueCount(12, 156), 1e-9)
	// One deck left.
	assert.InDelta(t, 5.0, TrueCount(5, 52), 1e-9)
	// Below half a deck the divisor floors at 0.5 instead of exploding.
	assert.InDelta(t, 6.0, TrueCount(3, 10), 1e-9)
	assert.InDelta(t, 6.0, TrueCount(3, 0), 1e-9)
	// Negative counts divide the same way.
	assert.InDelta(t, -2.0, TrueCount(-6, 156), 1e-9)
}

func TestUnbalancedSystemSkipsTrueCountConversion(t *testing.T) {
	t.Parallel()

	ko, err := Lookup("ko")
	require.NoError(t, err)
	c := NewCounter(ko)

	for range 4 {
		card := deck.NewCard(deck.Clubs, deck.Two)
		card.FaceUp = true
		c.Observe(card)
	}
	require.Equal(t, 4, c.RunningCount())

	// KO's signal is the running count itself, whatever is left in the shoe.
	assert.InDelta(t, 4.0, c.TrueCount(104), 1e-9)
	assert.InDelta(t, 4.0, c.TrueCount(26), 1e-9)

	// Hi-Lo converts the same reveals per remaining deck.
	hilo, err := Lookup("hi-lo")
	require.NoError(t, err)
	h := NewCounter(hilo)
	for range 4 {
		card := deck.NewCard(deck.Clubs, deck.Two)
		card.FaceUp = true
		h.Observe(card)
	}
	assert.InDelta(t, 2.0, h.TrueCount(104), 1e-9)
}

func TestDecksRemainingFloor(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 6.0, DecksRemaining(312), 1e-9)
	assert.InDelta(t, 0.5, DecksRemaining(26), 1e-9)
	assert.InDelta(t, 0.5, DecksRemaining(4), 1e-9)
}

func TestCounterReset(t *testing.T) {
	t.Parallel()

	s, err := Lookup("hi-lo")
	require.NoError(t, err)
	c := NewCounter(s)

	card := deck.NewCard(deck.Diamonds, deck.Four)
	card.FaceUp = true
	c.Observe(card)
	require.Equal(t, 1, c.RunningCount())

	c.Reset()
	assert.Equal(t, 0, c.RunningCount())
	assert.Equal(t, 0, c.CardsSeen())
}
