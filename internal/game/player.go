package game

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlayerType distinguishes the human seat from the computer companions
type PlayerType int

const (
	Human PlayerType = iota
	NPC
)

// String returns the string representation of a player type
func (pt PlayerType) String() string {
	if pt == Human {
		return "human"
	}
	return "npc"
}

// Player is one seat at the table. Exactly one player is the human; the
// rest are table companions driven by their agents.
type Player struct {
	ID          uuid.UUID
	Name        string
	Type        PlayerType
	Seat        int
	Hands       []*Hand
	CurrentHand int
	Bankroll    decimal.Decimal
	CurrentBet  decimal.Decimal
	Insurance   decimal.Decimal

	// SatOut marks a seat that wagered nothing this round (wonging)
	SatOut bool

	// Previous-round results feeding martingale and oscar sizing
	LastBet    decimal.Decimal
	LastWon    bool
	PlayedHand bool
}

// NewPlayer seats a player with the given bankroll
func NewPlayer(name string, playerType PlayerType, seat int, bankroll decimal.Decimal) *Player {
	return &Player{
		ID:       uuid.New(),
		Name:     name,
		Type:     playerType,
		Seat:     seat,
		Bankroll: bankroll,
	}
}

// ResetForRound clears the seat's hands and per-round wagers
func (p *Player) ResetForRound() {
	p.Hands = nil
	p.CurrentHand = 0
	p.CurrentBet = decimal.Zero
	p.Insurance = decimal.Zero
	p.SatOut = false
}

// ActiveHand returns the hand currently awaiting action, or nil when the
// seat has finished.
func (p *Player) ActiveHand() *Hand {
	for p.CurrentHand < len(p.Hands) {
		h := p.Hands[p.CurrentHand]
		if h.Active {
			return h
		}
		p.CurrentHand++
	}
	return nil
}

// HasActiveHand reports whether any of the seat's hands still awaits action
func (p *Player) HasActiveHand() bool {
	for _, h := range p.Hands {
		if h.Active {
			return true
		}
	}
	return false
}

// TotalWagered sums the stakes across all of the seat's hands this round,
// insurance excluded.
func (p *Player) TotalWagered() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Hands {
		total = total.Add(h.Bet)
	}
	return total
}

// CanAfford reports whether the bankroll covers an additional stake
func (p *Player) CanAfford(amount decimal.Decimal) bool {
	return p.Bankroll.GreaterThanOrEqual(amount)
}
