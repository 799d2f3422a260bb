package game

import (
	"fmt"
	mathrand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/counting"
	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/randutil"
	"github.com/joelfrenette/card-counting-coach-com/internal/shoe"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Phase is the round state machine discriminant
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhaseInsurance
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseRoundEnd
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhaseInsurance:
		return "insurance"
	case PhasePlayerTurn:
		return "player-turn"
	case PhaseDealerTurn:
		return "dealer-turn"
	case PhaseRoundEnd:
		return "round-end"
	default:
		return "unknown"
	}
}

// Result classifies a resolved hand
type Result string

const (
	ResultWin       Result = "win"
	ResultLoss      Result = "loss"
	ResultPush      Result = "push"
	ResultBlackjack Result = "blackjack"
	ResultSurrender Result = "surrender"
)

// StepKind describes the next pending transition of a round in flight.
// The table applies one transition per Step call so a pacing layer can
// schedule them on timers; StepHumanAction means the machine is blocked
// on an explicit human command.
type StepKind int

const (
	StepNone StepKind = iota
	StepDealCard
	StepHumanAction
	StepNPCAction
	StepDealerReveal
	StepDealerDraw
	StepResolve
)

// String returns the string representation of a step kind
func (k StepKind) String() string {
	switch k {
	case StepNone:
		return "none"
	case StepDealCard:
		return "deal-card"
	case StepHumanAction:
		return "human-action"
	case StepNPCAction:
		return "npc-action"
	case StepDealerReveal:
		return "dealer-reveal"
	case StepDealerDraw:
		return "dealer-draw"
	case StepResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// pendingDeal is one entry of the strict initial deal order
type pendingDeal struct {
	seat   int // 0 for the dealer
	faceUp bool
}

// Table owns the single mutable session: the shoe, the seats, the dealer
// hand and the round state machine. It is the sole writer of all of them;
// the counting and strategy packages only ever see values. Table is not
// safe for concurrent use, callers serialize access.
type Table struct {
	rules  Rules
	logger *log.Logger
	events EventBus
	rng    *mathrand.Rand

	system  counting.System
	counter *counting.Counter
	shoe    *shoe.Shoe

	players []*Player
	agents  map[int]Agent
	dealer  *Hand

	phase       Phase
	round       int
	activeSeat  int
	dealQueue   []pendingDeal
	autoAdvance bool

	stats Statistics
}

// Option configures a Table
type Option func(*Table)

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithEventBus sets the event bus
func WithEventBus(bus EventBus) Option {
	return func(t *Table) { t.events = bus }
}

// WithRNG sets a deterministic random source for shuffles and cuts
func WithRNG(rng *mathrand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithAgent overrides the agent for an NPC seat
func WithAgent(seat int, agent Agent) Option {
	return func(t *Table) { t.agents[seat] = agent }
}

// WithManualStepping disables automatic advancement of NPC and dealer
// transitions; the caller drives them one at a time via Step, typically
// from a Pacer timer chain.
func WithManualStepping() Option {
	return func(t *Table) { t.autoAdvance = false }
}

// NewTable validates the rules, seats the players and builds the first
// shoe. The table starts in the betting phase.
func NewTable(rules Rules, opts ...Option) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	system, err := counting.Lookup(rules.CountingSystem)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	t := &Table{
		rules:       rules,
		logger:      log.Default().WithPrefix("table"),
		events:      NewEventBus(),
		system:      system,
		counter:     counting.NewCounter(system),
		agents:      make(map[int]Agent),
		dealer:      NewHand(decimal.Zero),
		phase:       PhaseBetting,
		autoAdvance: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.NewCrypto()
	}

	defaultAgent := NewStrategyAgent()
	t.players = make([]*Player, 0, rules.Seats)
	for seat := 1; seat <= rules.Seats; seat++ {
		if seat == rules.HumanSeat {
			t.players = append(t.players, NewPlayer("You", Human, seat, rules.StartingBankroll))
			continue
		}
		t.players = append(t.players, NewPlayer(fmt.Sprintf("Player %d", seat), NPC, seat, rules.StartingBankroll))
		if _, ok := t.agents[seat]; !ok {
			t.agents[seat] = defaultAgent
		}
	}

	if err := t.newShoe(); err != nil {
		return nil, err
	}
	return t, nil
}

// newShoe builds, cuts, marks and burns a fresh shoe, and zeroes the count
func (t *Table) newShoe() error {
	s, err := shoe.New(t.rules.Decks, t.rng)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	s.SetPenetrationMarker(t.rules.PenetrationMarker)
	// The cut is the player's; spread it across the middle of the stack.
	s.Cut(0.3 + t.rng.Float64()*0.4)
	if _, err := s.BurnTopCard(); err != nil {
		return err
	}
	t.shoe = s
	t.counter.Reset()

	t.logger.Debug("fresh shoe", "decks", t.rules.Decks, "marker", s.PenetrationMarker())
	t.events.Publish(ShoeShuffledEvent{
		Decks:     t.rules.Decks,
		Marker:    s.PenetrationMarker(),
		timestamp: now(),
	})
	return nil
}

// Rules returns the table configuration
func (t *Table) Rules() Rules { return t.rules }

// Events returns the event bus for subscribing to round events
func (t *Table) Events() EventBus { return t.events }

// Phase returns the current round phase
func (t *Table) Phase() Phase { return t.phase }

// Round returns the current round number, starting at 1 on the first deal
func (t *Table) Round() int { return t.round }

// Players returns the seated players in seat order
func (t *Table) Players() []*Player { return t.players }

// Human returns the human-controlled seat
func (t *Table) Human() *Player {
	for _, p := range t.players {
		if p.Type == Human {
			return p
		}
	}
	return nil
}

// Dealer returns the dealer's hand
func (t *Table) Dealer() *Hand { return t.dealer }

// DealerUpCard returns the dealer's face-up card, or nil before the deal
func (t *Table) DealerUpCard() *deck.Card {
	for i := range t.dealer.Cards {
		if t.dealer.Cards[i].FaceUp {
			c := t.dealer.Cards[i]
			return &c
		}
	}
	return nil
}

// RunningCount returns the running count over all face-up cards this shoe
func (t *Table) RunningCount() int { return t.counter.RunningCount() }

// TrueCount returns the running count normalized by decks remaining, or
// the raw running count for systems that do not use true-count conversion
func (t *Table) TrueCount() float64 { return t.counter.TrueCount(t.shoe.CardsRemaining()) }

// CountingSystem returns the active counting system
func (t *Table) CountingSystem() counting.System { return t.system }

// CardsRemaining returns the number of undealt cards in the shoe
func (t *Table) CardsRemaining() int { return t.shoe.CardsRemaining() }

// Penetration returns the fraction of the shoe already dealt
func (t *Table) Penetration() float64 { return t.shoe.Penetration() }

// NeedsReshuffle reports whether play has passed the penetration marker
func (t *Table) NeedsReshuffle() bool { return t.shoe.NeedsReshuffle() }

// Statistics returns the human seat's session statistics
func (t *Table) Statistics() Statistics { return t.stats }

// PlayerEdge estimates the human's current advantage in percent from the
// true count and the house rules.
func (t *Table) PlayerEdge() float64 {
	return strategy.PlayerEdge(t.TrueCount(), strategy.BaseHouseEdge(t.rules.RuleSet()))
}

// view builds the read-only snapshot agents and the coaching surface use
func (t *Table) view() TableView {
	return TableView{
		Phase:        t.phase,
		DealerUpCard: t.DealerUpCard(),
		RunningCount: t.RunningCount(),
		TrueCount:    t.TrueCount(),
		MinBet:       t.rules.MinBet,
		MaxBet:       t.rules.MaxBet,
		Rules:        t.rules,
	}
}

func seatView(p *Player) SeatView {
	return SeatView{
		Name:       p.Name,
		Seat:       p.Seat,
		Bankroll:   p.Bankroll,
		LastBet:    p.LastBet,
		LastWon:    p.LastWon,
		PlayedHand: p.PlayedHand,
	}
}

func handView(h *Hand) HandView {
	value, soft := strategy.HandTotal(h.Cards)
	return HandView{
		Cards:   append([]deck.Card(nil), h.Cards...),
		Value:   value,
		Soft:    soft,
		Bet:     h.Bet,
		Doubled: h.Doubled,
		Split:   h.Split,
	}
}

// RecommendedBet sizes the human's next wager using the configured
// betting style and the live true count.
func (t *Table) RecommendedBet() strategy.BetAdvice {
	human := t.Human()
	return strategy.SizeBet(t.rules.BettingStyle, strategy.BetContext{
		TrueCount:  t.TrueCount(),
		MinBet:     t.rules.MinBet,
		MaxBet:     t.rules.MaxBet,
		Bankroll:   human.Bankroll,
		LastBet:    human.LastBet,
		LastWon:    human.LastWon,
		PlayedHand: human.PlayedHand,
	})
}

// Coaching is the advisor output for the human's current hand: the basic
// strategy line and, when the count justifies one, the index deviation.
type Coaching struct {
	Basic     strategy.Advice
	Deviation *strategy.IndexPlay
}

// RecommendedAction returns coaching for the human's current hand, or
// false when it is not the human's turn.
func (t *Table) RecommendedAction() (Coaching, bool) {
	if t.phase != PhasePlayerTurn {
		return Coaching{}, false
	}
	human := t.Human()
	if t.currentPlayer() != human {
		return Coaching{}, false
	}
	hand := human.ActiveHand()
	up := t.DealerUpCard()
	if hand == nil || up == nil {
		return Coaching{}, false
	}

	valid := t.validActions(human, hand)
	allowed := make(map[Action]bool, len(valid))
	for _, v := range valid {
		allowed[v] = true
	}

	basic := strategy.BasicAdvice(hand.Cards, up.Rank, allowed[ActionDouble], allowed[ActionSplit])
	deviation := strategy.FindIndexPlay(hand.Cards, up.Rank, t.TrueCount(), allowed[ActionSurrender])
	return Coaching{Basic: basic, Deviation: deviation}, true
}

// ValidActions lists the legal actions for the human's current hand.
// Empty outside the human's turn.
func (t *Table) ValidActions() []Action {
	if t.phase != PhasePlayerTurn {
		return nil
	}
	human := t.Human()
	if t.currentPlayer() != human {
		return nil
	}
	hand := human.ActiveHand()
	if hand == nil {
		return nil
	}
	return t.validActions(human, hand)
}
