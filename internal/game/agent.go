package game

import (
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Action is a player move in the round state machine
type Action string

const (
	ActionHit       Action = "hit"
	ActionStand     Action = "stand"
	ActionDouble    Action = "double"
	ActionSplit     Action = "split"
	ActionSurrender Action = "surrender"
)

// String returns the string representation of the action
func (a Action) String() string { return string(a) }

// Decision is an agent's chosen action with its reasoning. Agents only
// decide; the table applies the decision and owns all state mutation.
type Decision struct {
	Action    Action
	Reasoning string
}

// BetDecision is an agent's sized wager for the coming round. A zero
// amount sits the seat out.
type BetDecision struct {
	Amount decimal.Decimal
	Reason string
}

// SeatView is the read-only snapshot of a seat handed to agents
type SeatView struct {
	Name       string
	Seat       int
	Bankroll   decimal.Decimal
	LastBet    decimal.Decimal
	LastWon    bool
	PlayedHand bool
}

// HandView is the read-only snapshot of the hand awaiting a decision
type HandView struct {
	Cards   []deck.Card
	Value   int
	Soft    bool
	Bet     decimal.Decimal
	Doubled bool
	Split   bool
}

// TableView is the read-only table snapshot agents decide from. Only
// publicly visible information is included: the dealer's hole card is
// absent until revealed, and counts reflect face-up cards only.
type TableView struct {
	Phase        Phase
	DealerUpCard *deck.Card
	RunningCount int
	TrueCount    float64
	MinBet       decimal.Decimal
	MaxBet       decimal.Decimal
	Rules        Rules
}

// Agent decides for a seat at each decision point of a round. Implementations
// receive immutable snapshots and must not retain or mutate them.
type Agent interface {
	// PlaceBet sizes the seat's wager before the deal
	PlaceBet(table TableView, seat SeatView) BetDecision

	// TakeInsurance decides the side bet when the dealer shows an ace
	TakeInsurance(table TableView, seat SeatView) bool

	// PlayHand picks one of the offered actions for the current hand
	PlayHand(table TableView, seat SeatView, hand HandView, valid []Action) Decision
}

// StrategyAgent plays the table companions: count-ramped bets, insurance
// on strongly positive counts and basic strategy for hand play.
type StrategyAgent struct{}

// NewStrategyAgent returns the default companion agent
func NewStrategyAgent() *StrategyAgent {
	return &StrategyAgent{}
}

// PlaceBet ramps the wager 1x to 4x of the minimum with the true count
func (a *StrategyAgent) PlaceBet(table TableView, seat SeatView) BetDecision {
	amount := strategy.NPCBet(table.TrueCount, table.MinBet, table.MaxBet, seat.Bankroll)
	return BetDecision{Amount: amount, Reason: "count-ramped table bet"}
}

// TakeInsurance accepts only when the true count is at least +3, the point
// where enough tens remain for insurance to be profitable.
func (a *StrategyAgent) TakeInsurance(table TableView, seat SeatView) bool {
	return table.TrueCount >= 3
}

// PlayHand follows basic strategy, constrained to the actions the table
// offered. Unavailable doubles fall back to the chart's hit/stand line.
func (a *StrategyAgent) PlayHand(table TableView, seat SeatView, hand HandView, valid []Action) Decision {
	if table.DealerUpCard == nil {
		return Decision{Action: ActionStand, Reasoning: "no dealer card visible"}
	}

	allowed := make(map[Action]bool, len(valid))
	for _, v := range valid {
		allowed[v] = true
	}

	advice := strategy.BasicAdvice(hand.Cards, table.DealerUpCard.Rank, allowed[ActionDouble], allowed[ActionSplit])
	action := Action(advice.Action)
	if allowed[action] {
		return Decision{Action: action, Reasoning: advice.Reason}
	}

	// The chart asked for something the table cannot offer (e.g. double on
	// a three-card hand after a rules mismatch). Fall back to hit/stand.
	fallback := strategy.BasicAdvice(hand.Cards, table.DealerUpCard.Rank, false, false)
	action = Action(fallback.Action)
	if allowed[action] {
		return Decision{Action: action, Reasoning: fallback.Reason}
	}
	return Decision{Action: ActionStand, Reasoning: "no chart action available"}
}
