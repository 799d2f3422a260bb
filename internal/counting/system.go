// Package counting implements card counting: per-system card values, the
// running count over face-up cards and true-count conversion.
package counting

import (
	"fmt"
	"sort"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// System assigns an integer counting value to each rank. Values are kept as
// integers so the running count is exact; Halves stores its half-point tags
// doubled, so its running count reads double the textbook figure but all
// comparisons and true-count ratios remain proportional.
type System struct {
	ID          string
	Name        string
	Description string

	// Level is the largest absolute tag in the system's textbook form.
	Level int
	// NeedsTrueCount is false for unbalanced systems like KO, which use
	// the running count directly as the betting and strategy signal.
	NeedsTrueCount bool
	// NeedsAceSideCount marks systems that tag the ace neutral and expect
	// the player to track aces separately for betting.
	NeedsAceSideCount bool

	values map[deck.Rank]int
}

// Value returns the counting tag for a rank
func (s System) Value(rank deck.Rank) int {
	return s.values[rank]
}

// CardValue returns the counting tag for a card regardless of orientation.
// Orientation filtering is the Counter's job, not the system's.
func (s System) CardValue(c deck.Card) int {
	return s.values[c.Rank]
}

// Balanced reports whether the tags over a full deck sum to zero. Balanced
// systems start at zero; unbalanced ones like KO use an initial running
// count offset per deck instead.
func (s System) Balanced() bool {
	sum := 0
	for _, rank := range deck.Ranks {
		sum += s.values[rank]
	}
	return sum == 0
}

var systems = map[string]System{
	"hi-lo": {
		ID:                "hi-lo",
		Name:              "Hi-Lo",
		Description:       "The classic balanced count. 2-6 are +1, 7-9 neutral, tens and aces -1.",
		Level:             1,
		NeedsTrueCount:    true,
		NeedsAceSideCount: false,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
			deck.Ten: -1, deck.Jack: -1, deck.Queen: -1, deck.King: -1, deck.Ace: -1,
		}),
	},
	"ko": {
		ID:                "ko",
		Name:              "Knock-Out (KO)",
		Description:       "Unbalanced variant of Hi-Lo that also counts sevens as +1, removing the need for true-count conversion in casual play.",
		Level:             1,
		NeedsTrueCount:    false,
		NeedsAceSideCount: false,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1, deck.Seven: 1,
			deck.Ten: -1, deck.Jack: -1, deck.Queen: -1, deck.King: -1, deck.Ace: -1,
		}),
	},
	"hi-opt-i": {
		ID:                "hi-opt-i",
		Name:              "Hi-Opt I",
		Description:       "Balanced count that drops the ace and deuce for better playing accuracy.",
		Level:             1,
		NeedsTrueCount:    true,
		NeedsAceSideCount: true,
		values: tags(map[deck.Rank]int{
			deck.Three: 1, deck.Four: 1, deck.Five: 1, deck.Six: 1,
			deck.Ten: -1, deck.Jack: -1, deck.Queen: -1, deck.King: -1,
		}),
	},
	"hi-opt-ii": {
		ID:                "hi-opt-ii",
		Name:              "Hi-Opt II",
		Description:       "Two-level balanced count with fours and fives at +2 for stronger betting correlation.",
		Level:             2,
		NeedsTrueCount:    true,
		NeedsAceSideCount: true,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 1, deck.Four: 2, deck.Five: 2, deck.Six: 1, deck.Seven: 1,
			deck.Ten: -2, deck.Jack: -2, deck.Queen: -2, deck.King: -2,
		}),
	},
	"zen": {
		ID:                "zen",
		Name:              "Zen Count",
		Description:       "Two-level balanced count keeping the ace at -1 for insurance accuracy.",
		Level:             2,
		NeedsTrueCount:    true,
		NeedsAceSideCount: false,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 1, deck.Four: 2, deck.Five: 2, deck.Six: 2, deck.Seven: 1,
			deck.Ten: -2, deck.Jack: -2, deck.Queen: -2, deck.King: -2, deck.Ace: -1,
		}),
	},
	"omega-ii": {
		ID:                "omega-ii",
		Name:              "Omega II",
		Description:       "Advanced two-level balanced count with a neutral ace, usually paired with an ace side count.",
		Level:             2,
		NeedsTrueCount:    true,
		NeedsAceSideCount: true,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 1, deck.Four: 2, deck.Five: 2, deck.Six: 2, deck.Seven: 1,
			deck.Nine: -1,
			deck.Ten:  -2, deck.Jack: -2, deck.Queen: -2, deck.King: -2,
		}),
	},
	"halves": {
		ID:                "halves",
		Name:              "Wong Halves",
		Description:       "Three-level balanced count. Half-point tags are tracked doubled so the running count stays an integer; divide by two for the textbook figure.",
		Level:             3,
		NeedsTrueCount:    true,
		NeedsAceSideCount: false,
		values: tags(map[deck.Rank]int{
			deck.Two: 1, deck.Three: 2, deck.Four: 2, deck.Five: 3, deck.Six: 2, deck.Seven: 1,
			deck.Nine: -1,
			deck.Ten:  -2, deck.Jack: -2, deck.Queen: -2, deck.King: -2, deck.Ace: -2,
		}),
	},
}

// tags fills the unmentioned ranks with zero so lookups never miss
func tags(m map[deck.Rank]int) map[deck.Rank]int {
	full := make(map[deck.Rank]int, len(deck.Ranks))
	for _, r := range deck.Ranks {
		full[r] = m[r]
	}
	return full
}

// Lookup returns the counting system with the given ID
func Lookup(id string) (System, error) {
	s, ok := systems[id]
	if !ok {
		return System{}, fmt.Errorf("unknown counting system %q", id)
	}
	return s, nil
}

// IDs returns the registered system IDs in sorted order
func IDs() []string {
	ids := make([]string, 0, len(systems))
	for id := range systems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns the registered systems sorted by ID
func All() []System {
	all := make([]System, 0, len(systems))
	for _, id := range IDs() {
		all = append(all, systems[id])
	}
	return all
}
