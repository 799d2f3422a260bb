package game

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

func now() time.Time { return time.Now() }

// EventType identifies a game event with type safety
type EventType string

const (
	EventTypePhaseChange   EventType = "phase_change"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypePlayerAction  EventType = "player_action"
	EventTypeInsurance     EventType = "insurance"
	EventTypeHoleReveal    EventType = "hole_reveal"
	EventTypeRoundResult   EventType = "round_result"
	EventTypeShoeShuffled  EventType = "shoe_shuffled"
	EventTypeRoundCanceled EventType = "round_canceled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is any event published during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PhaseChangeEvent is published on every round phase transition
type PhaseChangeEvent struct {
	From      Phase
	To        Phase
	Round     int
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for each card leaving the shoe, in strict
// deal order. Recipient "dealer" marks the dealer's hand; RunningCount is
// the count after this card was folded in (unchanged for face-down cards).
type CardDealtEvent struct {
	Recipient    string
	Seat         int
	HandIndex    int
	Card         deck.Card
	RunningCount int
	timestamp    time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a seat's action is applied
type PlayerActionEvent struct {
	Player    string
	Seat      int
	HandIndex int
	Action    Action
	Reasoning string
	HandValue int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// InsuranceEvent is published per seat once an insurance decision is made
type InsuranceEvent struct {
	Player    string
	Seat      int
	Accepted  bool
	Stake     decimal.Decimal
	timestamp time.Time
}

func (e InsuranceEvent) EventType() EventType { return EventTypeInsurance }
func (e InsuranceEvent) Timestamp() time.Time { return e.timestamp }

// HoleRevealEvent is published when the dealer turns the hole card. The
// card enters the running count at this moment, never earlier.
type HoleRevealEvent struct {
	Card         deck.Card
	RunningCount int
	timestamp    time.Time
}

func (e HoleRevealEvent) EventType() EventType { return EventTypeHoleReveal }
func (e HoleRevealEvent) Timestamp() time.Time { return e.timestamp }

// HandOutcome is a resolved hand's result for one seat
type HandOutcome struct {
	Seat       int
	HandIndex  int
	Player     string
	Result     Result
	Bet        decimal.Decimal
	Returned   decimal.Decimal
	HandValue  int
	DealerHand int
}

// RoundResultEvent is published once per round with every hand's outcome
type RoundResultEvent struct {
	Round     int
	Outcomes  []HandOutcome
	timestamp time.Time
}

func (e RoundResultEvent) EventType() EventType { return EventTypeRoundResult }
func (e RoundResultEvent) Timestamp() time.Time { return e.timestamp }

// ShoeShuffledEvent is published when a fresh shoe replaces a depleted one
type ShoeShuffledEvent struct {
	Decks     int
	Marker    float64
	timestamp time.Time
}

func (e ShoeShuffledEvent) EventType() EventType { return EventTypeShoeShuffled }
func (e ShoeShuffledEvent) Timestamp() time.Time { return e.timestamp }

// RoundCanceledEvent is published when a mid-round reset discards the
// partially played round and refunds staked bets.
type RoundCanceledEvent struct {
	Round     int
	timestamp time.Time
}

func (e RoundCanceledEvent) EventType() EventType { return EventTypeRoundCanceled }
func (e RoundCanceledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a plain function to the EventSubscriber interface
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls the wrapped function
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
