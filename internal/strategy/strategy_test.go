package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func cards(ranks ...deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		out[i] = deck.NewCard(deck.Spades, r)
		if i%2 == 1 {
			out[i].Suit = deck.Hearts
		}
	}
	return out
}

func TestHandTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ranks []deck.Rank
		value int
		soft  bool
	}{
		{[]deck.Rank{deck.Ten, deck.Seven}, 17, false},
		{[]deck.Rank{deck.Ace, deck.Six}, 17, true},
		{[]deck.Rank{deck.Ace, deck.King}, 21, true},
		{[]deck.Rank{deck.Ace, deck.Six, deck.Ten}, 17, false},
		{[]deck.Rank{deck.Ace, deck.Ace}, 12, true},
		{[]deck.Rank{deck.Ace, deck.Ace, deck.Nine}, 21, true},
		{[]deck.Rank{deck.Ace, deck.Ace, deck.Ten, deck.Ten}, 22, false},
		{[]deck.Rank{deck.Ten, deck.Six, deck.King}, 26, false},
	}
	for _, tt := range tests {
		value, soft := HandTotal(cards(tt.ranks...))
		assert.Equal(t, tt.value, value, "%v", tt.ranks)
		assert.Equal(t, tt.soft, soft, "%v soft", tt.ranks)
	}
}

func TestBasicAdvicePairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     []deck.Card
		dealer   deck.Rank
		canSplit bool
		want     Action
	}{
		{"aces always split", cards(deck.Ace, deck.Ace), deck.Ten, true, Split},
		{"eights always split", cards(deck.Eight, deck.Eight), deck.Ace, true, Split},
		{"tens never split", cards(deck.Ten, deck.Ten), deck.Six, true, Stand},
		{"face pair never split", cards(deck.King, deck.King), deck.Six, true, Stand},
		{"fives play as hard ten", cards(deck.Five, deck.Five), deck.Six, true, Double},
		{"nines split vs 8", cards(deck.Nine, deck.Nine), deck.Eight, true, Split},
		{"nines stand vs 7", cards(deck.Nine, deck.Nine), deck.Seven, true, Stand},
		{"sevens split vs 7", cards(deck.Seven, deck.Seven), deck.Seven, true, Split},
		{"sevens hit vs 8", cards(deck.Seven, deck.Seven), deck.Eight, true, Hit},
		{"sixes split vs 6", cards(deck.Six, deck.Six), deck.Six, true, Split},
		{"sixes hit vs 7", cards(deck.Six, deck.Six), deck.Seven, true, Hit},
		{"split unavailable plays total", cards(deck.Eight, deck.Eight), deck.Six, false, Stand},
	}
	for _, tt := range tests {
		advice := BasicAdvice(tt.hand, tt.dealer, true, tt.canSplit)
		assert.Equal(t, tt.want, advice.Action, tt.name)
		assert.NotEmpty(t, advice.Reason, tt.name)
	}
}

func TestBasicAdviceSoftHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hand      []deck.Card
		dealer    deck.Rank
		canDouble bool
		want      Action
	}{
		{"soft 19 stands", cards(deck.Ace, deck.Eight), deck.Six, true, Stand},
		{"soft 18 doubles vs 6", cards(deck.Ace, deck.Seven), deck.Six, true, Double},
		{"soft 18 stands vs 6 without double", cards(deck.Ace, deck.Seven), deck.Six, false, Stand},
		{"soft 18 hits vs 9", cards(deck.Ace, deck.Seven), deck.Nine, true, Hit},
		{"soft 18 hits vs ace", cards(deck.Ace, deck.Seven), deck.Ace, true, Hit},
		{"soft 18 stands vs 7", cards(deck.Ace, deck.Seven), deck.Seven, true, Stand},
		{"soft 17 doubles vs 5", cards(deck.Ace, deck.Six), deck.Five, true, Double},
		{"soft 17 hits vs 3", cards(deck.Ace, deck.Six), deck.Three, true, Hit},
		{"soft 13 doubles vs 4", cards(deck.Ace, deck.Two), deck.Four, true, Double},
		{"soft 13 hits vs 2", cards(deck.Ace, deck.Two), deck.Two, true, Hit},
	}
	for _, tt := range tests {
		advice := BasicAdvice(tt.hand, tt.dealer, tt.canDouble, false)
		assert.Equal(t, tt.want, advice.Action, tt.name)
	}
}

func TestBasicAdviceHardHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hand      []deck.Card
		dealer    deck.Rank
		canDouble bool
		want      Action
	}{
		{"17 stands", cards(deck.Ten, deck.Seven), deck.Ace, true, Stand},
		{"16 stands vs 6", cards(deck.Ten, deck.Six), deck.Six, true, Stand},
		{"16 hits vs 10", cards(deck.Ten, deck.Six), deck.Ten, true, Hit},
		{"13 stands vs 2", cards(deck.Ten, deck.Three), deck.Two, true, Stand},
		{"12 hits vs 3", cards(deck.Ten, deck.Two), deck.Three, true, Hit},
		{"12 stands vs 4", cards(deck.Ten, deck.Two), deck.Four, true, Stand},
		{"11 doubles", cards(deck.Six, deck.Five), deck.Ten, true, Double},
		{"11 hits without double", cards(deck.Six, deck.Five), deck.Ten, false, Hit},
		{"10 doubles vs 9", cards(deck.Six, deck.Four), deck.Nine, true, Double},
		{"10 hits vs 10", cards(deck.Six, deck.Four), deck.Ten, true, Hit},
		{"9 doubles vs 4", cards(deck.Five, deck.Four), deck.Four, true, Double},
		{"9 hits vs 2", cards(deck.Five, deck.Four), deck.Two, true, Hit},
		{"8 always hits", cards(deck.Five, deck.Three), deck.Six, true, Hit},
	}
	for _, tt := range tests {
		advice := BasicAdvice(tt.hand, tt.dealer, tt.canDouble, false)
		assert.Equal(t, tt.want, advice.Action, tt.name)
	}
}

func TestSituationKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "16 vs 10", SituationKey(cards(deck.Ten, deck.Six), deck.King))
	assert.Equal(t, "10,10 vs 5", SituationKey(cards(deck.Ten, deck.Ten), deck.Five))
	// Face pairs key as their hard total, not as the ten-pair split play.
	assert.Equal(t, "20 vs 5", SituationKey(cards(deck.King, deck.King), deck.Five))
	assert.Equal(t, "A,8 vs 5", SituationKey(cards(deck.Ace, deck.Eight), deck.Five))
	assert.Equal(t, "A,8 vs 5", SituationKey(cards(deck.Eight, deck.Ace), deck.Five))
	assert.Equal(t, "12 vs 6", SituationKey(cards(deck.Ace, deck.Ace), deck.Six))
	assert.Equal(t, "15 vs 10", SituationKey(cards(deck.Seven, deck.Five, deck.Three), deck.Ten))
}

func TestFindIndexPlayPositiveThresholds(t *testing.T) {
	t.Parallel()

	sixteen := cards(deck.Ten, deck.Six)

	// 16 vs 10 deviates to stand at TC >= 0.
	play := FindIndexPlay(sixteen, deck.Ten, 0, false)
	require.NotNil(t, play)
	assert.Equal(t, Stand, play.IndexAction)

	play = FindIndexPlay(sixteen, deck.Ten, -0.5, false)
	assert.Nil(t, play)

	// 15 vs 10 needs TC >= +4.
	fifteen := cards(deck.Ten, deck.Five)
	assert.Nil(t, FindIndexPlay(fifteen, deck.Ten, 3.9, false))
	play = FindIndexPlay(fifteen, deck.Ten, 4, false)
	require.NotNil(t, play)
	assert.Equal(t, Stand, play.IndexAction)
}

func TestFindIndexPlayNegativeThresholds(t *testing.T) {
	t.Parallel()

	thirteen := cards(deck.Ten, deck.Three)

	// 13 vs 2 deviates to hit at TC <= -1.
	play := FindIndexPlay(thirteen, deck.Two, -1, false)
	require.NotNil(t, play)
	assert.Equal(t, Hit, play.IndexAction)

	assert.Nil(t, FindIndexPlay(thirteen, deck.Two, 0, false))
}

func TestFindIndexPlaySurrenderFirst(t *testing.T) {
	t.Parallel()

	sixteen := cards(deck.Nine, deck.Seven)

	// With surrender legal, the Fab 4 surrender outranks the stand index.
	play := FindIndexPlay(sixteen, deck.Ten, 1, true)
	require.NotNil(t, play)
	assert.Equal(t, Surrender, play.IndexAction)

	play = FindIndexPlay(sixteen, deck.Ten, 1, false)
	require.NotNil(t, play)
	assert.Equal(t, Stand, play.IndexAction)

	// 15 vs ace surrenders at TC >= +1 and has no Illustrious 18 entry.
	fifteen := cards(deck.Nine, deck.Six)
	play = FindIndexPlay(fifteen, deck.Ace, 1, true)
	require.NotNil(t, play)
	assert.Equal(t, Surrender, play.IndexAction)
	assert.Nil(t, FindIndexPlay(fifteen, deck.Ace, 1, false))
}

func TestFindIndexPlayTenPair(t *testing.T) {
	t.Parallel()

	tens := cards(deck.Ten, deck.Ten)

	play := FindIndexPlay(tens, deck.Five, 5, false)
	require.NotNil(t, play)
	assert.Equal(t, Split, play.IndexAction)

	assert.Nil(t, FindIndexPlay(tens, deck.Five, 4.5, false))

	play = FindIndexPlay(tens, deck.Six, 4, false)
	require.NotNil(t, play)
	assert.Equal(t, Split, play.IndexAction)
}

func TestBaseHouseEdge(t *testing.T) {
	t.Parallel()

	// 6 decks, S17, DAS, LS is a 0.30 house edge under the model.
	edge := BaseHouseEdge(RuleSet{Decks: 6, DoubleAfterSplit: true, LateSurrender: true})
	assert.InDelta(t, 0.30, edge, 1e-9)

	// Single deck H17.
	edge = BaseHouseEdge(RuleSet{Decks: 1, DealerHitsSoft17: true})
	assert.InDelta(t, 0.55, edge, 1e-9)

	// Liberal 8-deck game with everything allowed.
	edge = BaseHouseEdge(RuleSet{Decks: 8, DoubleAfterSplit: true, LateSurrender: true, ResplitAces: true})
	assert.InDelta(t, 0.26, edge, 1e-9)
}

func TestPlayerEdge(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, PlayerEdge(2, 0.5), 1e-9)
	assert.InDelta(t, -0.5, PlayerEdge(0, 0.5), 1e-9)
	assert.InDelta(t, -1.5, PlayerEdge(-2, 0.5), 1e-9)
}

func TestRuleVariantName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "6 Decks, S17, DAS, LS",
		RuleVariantName(RuleSet{Decks: 6, DoubleAfterSplit: true, LateSurrender: true}))
	assert.Equal(t, "1 Deck, H17",
		RuleVariantName(RuleSet{Decks: 1, DealerHitsSoft17: true}))
	assert.Equal(t, "8 Decks, S17, DAS, LS, RSA",
		RuleVariantName(RuleSet{Decks: 8, DoubleAfterSplit: true, LateSurrender: true, ResplitAces: true}))
}
