// Package shoe implements the dealing shoe: multi-deck build, shuffle,
// player cut, penetration marker, burn card and card-by-card dealing.
//
// The shoe owns the only piece of mutable state outside the table: the
// remaining cards in deal order. Dealt and burned cards are removed from
// the front; the union of remaining, burned and dealt cards is always the
// originally shuffled multiset.
package shoe

import (
	"errors"
	"fmt"
	mathrand "math/rand/v2"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// ErrEmptyShoe is returned when a deal or burn is requested with no cards
// remaining. Callers are expected to reshuffle before this can happen; the
// shoe never fabricates a card to paper over the condition.
var ErrEmptyShoe = errors.New("shoe is empty")

// ErrInvalidDeckCount is returned for non-positive deck counts
var ErrInvalidDeckCount = errors.New("deck count must be positive")

const (
	// CutMin and CutMax bound where a player may cut the stack
	CutMin = 0.10
	CutMax = 0.90

	// MarkerMin and MarkerMax bound where the dealer may place the
	// penetration indicator, matching the realistic casino range of
	// leaving half a deck to a third of the shoe undealt.
	MarkerMin = 0.65
	MarkerMax = 0.90

	// DefaultMarker is the typical house setting: deal 75% of the shoe
	DefaultMarker = 0.75
)

// Shoe holds the remaining cards of a shuffled multi-deck stack in deal
// order, along with the burned cards and the penetration marker.
type Shoe struct {
	cards         []deck.Card
	burned        []deck.Card
	originalCount int
	marker        float64
	rng           *mathrand.Rand
}

// New builds a shoe of deckCount standard 52-card decks, shuffles it once
// with an unbiased Fisher-Yates pass and places the penetration marker at
// the default position. The rng must not be nil; pass randutil.NewCrypto()
// for live play or randutil.New(seed) for reproducible tests.
func New(deckCount int, rng *mathrand.Rand) (*Shoe, error) {
	if deckCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDeckCount, deckCount)
	}
	s := &Shoe{
		cards:         buildCards(deckCount),
		originalCount: deckCount * 52,
		marker:        DefaultMarker,
		rng:           rng,
	}
	s.shuffle()
	return s, nil
}

// NewStacked builds an unshuffled shoe dealing the given cards in order.
// Used to script exact deals for drills and deterministic tests.
func NewStacked(cards ...deck.Card) *Shoe {
	return &Shoe{
		cards:         append([]deck.Card(nil), cards...),
		originalCount: len(cards),
		marker:        DefaultMarker,
	}
}

func buildCards(deckCount int) []deck.Card {
	cards := make([]deck.Card, 0, deckCount*52)
	for i := 0; i < deckCount; i++ {
		for _, suit := range deck.Suits {
			for _, rank := range deck.Ranks {
				cards = append(cards, deck.NewCard(suit, rank))
			}
		}
	}
	return cards
}

// shuffle performs an unbiased Fisher-Yates permutation, walking the stack
// from the last index down and swapping with a uniformly chosen earlier or
// equal position. One pass yields a uniform permutation.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Cut completes the player's cut: the stack is split at the given fraction
// (clamped to [0.10, 0.90]) and the bottom portion moves on top. The cut
// reorders cards but preserves the multiset exactly.
func (s *Shoe) Cut(position float64) {
	if len(s.cards) == 0 {
		return
	}
	position = clamp(position, CutMin, CutMax)
	idx := int(float64(len(s.cards)) * position)
	rotated := make([]deck.Card, 0, len(s.cards))
	rotated = append(rotated, s.cards[idx:]...)
	rotated = append(rotated, s.cards[:idx]...)
	s.cards = rotated
}

// SetPenetrationMarker records where the dealer inserts the indicator card,
// clamped to [0.65, 0.90]. Independent of the player's cut position.
func (s *Shoe) SetPenetrationMarker(fraction float64) {
	s.marker = clamp(fraction, MarkerMin, MarkerMax)
}

// PenetrationMarker returns the marker position as a fraction of the shoe
func (s *Shoe) PenetrationMarker() float64 {
	return s.marker
}

// BurnTopCard removes the first card face-down and sets it aside, returning
// the burned card. Fails with ErrEmptyShoe rather than inventing a card.
func (s *Shoe) BurnTopCard() (deck.Card, error) {
	if len(s.cards) == 0 {
		return deck.Card{}, ErrEmptyShoe
	}
	card := s.cards[0].FaceDownCopy()
	s.cards = s.cards[1:]
	s.burned = append(s.burned, card)
	return card, nil
}

// DealNextCard removes and returns the first remaining card with the given
// orientation. Fails with ErrEmptyShoe when no cards remain; the table is
// responsible for reshuffling before that state is reachable.
func (s *Shoe) DealNextCard(faceUp bool) (deck.Card, error) {
	if len(s.cards) == 0 {
		return deck.Card{}, ErrEmptyShoe
	}
	card := s.cards[0]
	card.FaceUp = faceUp
	s.cards = s.cards[1:]
	return card, nil
}

// CardsRemaining returns the number of undealt cards
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// OriginalCount returns the number of cards the shoe was built with
func (s *Shoe) OriginalCount() int {
	return s.originalCount
}

// BurnedCount returns how many cards have been burned this shoe
func (s *Shoe) BurnedCount() int {
	return len(s.burned)
}

// Penetration returns the fraction of the shoe already dealt or burned
func (s *Shoe) Penetration() float64 {
	if s.originalCount == 0 {
		return 0
	}
	return 1 - float64(len(s.cards))/float64(s.originalCount)
}

// NeedsReshuffle reports whether play has reached the penetration marker.
// The table checks this between rounds and rebuilds the shoe before the
// next betting phase rather than running the shoe dry mid-round.
func (s *Shoe) NeedsReshuffle() bool {
	return s.Penetration() >= s.marker
}

// DeckCount returns the shoe size in decks
func (s *Shoe) DeckCount() int {
	return s.originalCount / 52
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
