package game

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
)

// PlaceBet stakes the human's wager for the coming round. The amount must
// sit inside the table limits and the bankroll; it is deducted at the
// deal, not here.
func (t *Table) PlaceBet(amount decimal.Decimal) error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot bet during %s", ErrIllegalAction, t.phase)
	}
	if amount.LessThan(t.rules.MinBet) || amount.GreaterThan(t.rules.MaxBet) {
		return fmt.Errorf("%w: bet %s outside table limits %s-%s",
			ErrIllegalAction, amount, t.rules.MinBet, t.rules.MaxBet)
	}
	human := t.Human()
	if !human.CanAfford(amount) {
		return fmt.Errorf("%w: bet %s exceeds bankroll %s", ErrIllegalAction, amount, human.Bankroll)
	}
	human.CurrentBet = amount
	return nil
}

// ClearBet withdraws the human's staged wager before the deal
func (t *Table) ClearBet() error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot clear bet during %s", ErrIllegalAction, t.phase)
	}
	t.Human().CurrentBet = decimal.Zero
	return nil
}

// StartRound closes the betting phase and begins the deal. The human must
// have staked a bet; NPC seats size theirs from the live true count, and a
// zero-sized NPC wager sits that seat out for the round. The shoe is
// rebuilt first when the previous round passed the penetration marker.
func (t *Table) StartRound() error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot start a round during %s", ErrIllegalAction, t.phase)
	}
	human := t.Human()
	if !human.CurrentBet.IsPositive() {
		return fmt.Errorf("%w: place a bet first", ErrIllegalAction)
	}

	if t.shoe.NeedsReshuffle() {
		if err := t.newShoe(); err != nil {
			return err
		}
	}

	t.round++
	t.dealer = NewHand(decimal.Zero)
	t.activeSeat = 0

	// Collect NPC bets against the pre-deal count.
	for _, p := range t.players {
		if p.Type != Human {
			decision := t.agents[p.Seat].PlaceBet(t.view(), seatView(p))
			p.CurrentBet = decision.Amount
		}
		p.Hands = nil
		p.CurrentHand = 0
		p.Insurance = decimal.Zero
		p.SatOut = !p.CurrentBet.IsPositive() || !p.CanAfford(p.CurrentBet)
	}

	// Stakes leave the bankroll at the deal. The loss is provisional;
	// resolution pays returns back in.
	for _, p := range t.seated() {
		p.Bankroll = p.Bankroll.Sub(p.CurrentBet)
		p.Hands = []*Hand{NewHand(p.CurrentBet)}
		p.LastBet = p.CurrentBet
		p.PlayedHand = true
	}

	// Strict deal order: one up to each seat, dealer up, a second to each
	// seat, dealer hole down.
	t.dealQueue = t.dealQueue[:0]
	for _, p := range t.seated() {
		t.dealQueue = append(t.dealQueue, pendingDeal{seat: p.Seat, faceUp: true})
	}
	t.dealQueue = append(t.dealQueue, pendingDeal{seat: 0, faceUp: true})
	for _, p := range t.seated() {
		t.dealQueue = append(t.dealQueue, pendingDeal{seat: p.Seat, faceUp: true})
	}
	t.dealQueue = append(t.dealQueue, pendingDeal{seat: 0, faceUp: false})

	t.setPhase(PhaseDealing)
	t.advance()
	return nil
}

// seated returns the players wagering this round, in seat order
func (t *Table) seated() []*Player {
	out := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if !p.SatOut {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) playerAtSeat(seat int) *Player {
	for _, p := range t.players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

// PendingStep reports the next transition of the round in flight.
// StepNone means the machine is idle (betting or round-end);
// StepHumanAction means it is blocked on a human command.
func (t *Table) PendingStep() StepKind {
	switch t.phase {
	case PhaseDealing:
		return StepDealCard
	case PhaseInsurance:
		return StepHumanAction
	case PhasePlayerTurn:
		if p := t.currentPlayer(); p != nil && p.Type == Human {
			return StepHumanAction
		}
		return StepNPCAction
	case PhaseDealerTurn:
		if t.holeCardDown() {
			return StepDealerReveal
		}
		if t.dealerShouldHit() {
			return StepDealerDraw
		}
		return StepResolve
	default:
		return StepNone
	}
}

// Step applies exactly one pending transition. Pacing layers call this
// from timer callbacks; in auto-advance mode the table steps itself until
// it blocks on human input.
func (t *Table) Step() error {
	switch t.PendingStep() {
	case StepDealCard:
		return t.stepDeal()
	case StepNPCAction:
		return t.stepNPC()
	case StepDealerReveal:
		t.revealHoleCard()
		return nil
	case StepDealerDraw:
		return t.stepDealerDraw()
	case StepResolve:
		t.resolveRound()
		return nil
	default:
		return nil
	}
}

// advance steps the machine until it idles or blocks on the human. A
// no-op under manual stepping.
func (t *Table) advance() {
	if !t.autoAdvance {
		return
	}
	for {
		kind := t.PendingStep()
		if kind == StepNone || kind == StepHumanAction {
			return
		}
		if err := t.Step(); err != nil {
			t.logger.Error("step failed", "step", kind, "error", err)
			return
		}
	}
}

// stepDeal deals the next card of the initial deal sequence
func (t *Table) stepDeal() error {
	entry := t.dealQueue[0]
	t.dealQueue = t.dealQueue[1:]

	if entry.seat == 0 {
		if _, err := t.dealTo(t.dealer, "dealer", 0, 0, entry.faceUp); err != nil {
			return err
		}
	} else {
		p := t.playerAtSeat(entry.seat)
		if _, err := t.dealTo(p.Hands[0], p.Name, p.Seat, 0, entry.faceUp); err != nil {
			return err
		}
	}

	if len(t.dealQueue) == 0 {
		t.finishDeal()
	}
	return nil
}

// dealTo moves one card from the shoe into a hand, folding face-up cards
// into the running count in strict deal order.
func (t *Table) dealTo(h *Hand, name string, seat, handIndex int, faceUp bool) (deck.Card, error) {
	card, err := t.shoe.DealNextCard(faceUp)
	if err != nil {
		return deck.Card{}, err
	}
	h.AddCard(card)
	t.counter.Observe(card)

	t.logger.Debug("card dealt", "to", name, "card", card.String(), "running", t.RunningCount())
	// A face-down deal publishes a blank card. Subscribers learn the hole
	// card's identity from the reveal event, not before.
	published := card
	if !faceUp {
		published = deck.Card{}
	}
	t.events.Publish(CardDealtEvent{
		Recipient:    name,
		Seat:         seat,
		HandIndex:    handIndex,
		Card:         published,
		RunningCount: t.RunningCount(),
		timestamp:    now(),
	})
	return card, nil
}

// finishDeal routes the round after the initial deal: an ace up opens
// insurance, otherwise naturals are settled out of the turn order and
// play begins.
func (t *Table) finishDeal() {
	if up := t.DealerUpCard(); up != nil && up.IsAce() {
		t.setPhase(PhaseInsurance)
		// NPC insurance decisions are instant; the phase then waits on
		// the human's DecideInsurance.
		for _, p := range t.seated() {
			if p.Type == Human {
				continue
			}
			t.applyInsurance(p, t.agents[p.Seat].TakeInsurance(t.view(), seatView(p)))
		}
		return
	}
	t.beginPlayerTurn()
}

// beginPlayerTurn settles naturals and opens the action
func (t *Table) beginPlayerTurn() {
	for _, p := range t.seated() {
		for _, h := range p.Hands {
			if h.IsBlackjack() {
				h.Active = false
			}
		}
	}
	t.setPhase(PhasePlayerTurn)
	t.maybeFinishPlayerTurn()
}

// applyInsurance records one seat's insurance decision, deducting the
// half-bet stake immediately on acceptance.
func (t *Table) applyInsurance(p *Player, accept bool) {
	stake := decimal.Zero
	if accept {
		stake = p.CurrentBet.Div(decimal.NewFromInt(2))
		if !p.CanAfford(stake) {
			accept = false
			stake = decimal.Zero
		}
	}
	if accept {
		p.Bankroll = p.Bankroll.Sub(stake)
		p.Insurance = stake
	}
	t.events.Publish(InsuranceEvent{
		Player:    p.Name,
		Seat:      p.Seat,
		Accepted:  accept,
		Stake:     stake,
		timestamp: now(),
	})
}

// DecideInsurance is the human's answer to the dealer's ace. After it,
// the dealer peeks: a dealer blackjack pays insurance 2:1 and ends the
// round immediately; otherwise insurance stakes are lost and play begins.
func (t *Table) DecideInsurance(accept bool) error {
	if t.phase != PhaseInsurance {
		return fmt.Errorf("%w: no insurance offered during %s", ErrIllegalAction, t.phase)
	}
	human := t.Human()
	if accept && !human.CanAfford(human.CurrentBet.Div(decimal.NewFromInt(2))) {
		return fmt.Errorf("%w: bankroll does not cover insurance", ErrIllegalAction)
	}
	t.applyInsurance(human, accept)

	if t.dealer.Value() == 21 {
		// Dealer blackjack. Reveal, pay insurance 2:1 (stake plus two
		// units back) and resolve every hand now.
		t.revealHoleCard()
		for _, p := range t.seated() {
			if p.Insurance.IsPositive() {
				p.Bankroll = p.Bankroll.Add(p.Insurance.Mul(decimal.NewFromInt(3)))
			}
		}
		t.resolveRound()
		t.advance()
		return nil
	}

	t.beginPlayerTurn()
	t.advance()
	return nil
}

// currentPlayer returns the seat whose hand is awaiting action, or nil
func (t *Table) currentPlayer() *Player {
	if t.phase != PhasePlayerTurn {
		return nil
	}
	for ; t.activeSeat < len(t.players); t.activeSeat++ {
		p := t.players[t.activeSeat]
		if !p.SatOut && p.ActiveHand() != nil {
			return p
		}
	}
	return nil
}

// validActions lists the legal actions for a hand given its shape, the
// house rules, the split count and the seat's bankroll.
func (t *Table) validActions(p *Player, h *Hand) []Action {
	actions := []Action{ActionHit, ActionStand}
	if h.CanDouble(t.rules.DoubleAfterSplit) && p.CanAfford(h.Bet) {
		actions = append(actions, ActionDouble)
	}
	if h.IsPair() && len(p.Hands) < t.rules.MaxSplitHands && p.CanAfford(h.Bet) {
		actions = append(actions, ActionSplit)
	}
	if t.rules.LateSurrender && h.CanSurrender() {
		actions = append(actions, ActionSurrender)
	}
	return actions
}

// Hit deals one card to the human's current hand
func (t *Table) Hit() error { return t.humanAction(ActionHit) }

// Stand finishes the human's current hand
func (t *Table) Stand() error { return t.humanAction(ActionStand) }

// Double doubles the stake, takes exactly one card and stands
func (t *Table) Double() error { return t.humanAction(ActionDouble) }

// Split breaks a pair into two hands, staking a second bet
func (t *Table) Split() error { return t.humanAction(ActionSplit) }

// Surrender forfeits the hand for half the bet back
func (t *Table) Surrender() error { return t.humanAction(ActionSurrender) }

func (t *Table) humanAction(action Action) error {
	if t.phase != PhasePlayerTurn {
		return fmt.Errorf("%w: cannot %s during %s", ErrIllegalAction, action, t.phase)
	}
	human := t.Human()
	if t.currentPlayer() != human {
		return fmt.Errorf("%w: not your turn", ErrIllegalAction)
	}
	hand := human.ActiveHand()
	if !contains(t.validActions(human, hand), action) {
		return fmt.Errorf("%w: %s not available on this hand", ErrIllegalAction, action)
	}
	if err := t.applyAction(human, hand, action, ""); err != nil {
		return err
	}
	t.advance()
	return nil
}

func contains(actions []Action, a Action) bool {
	for _, v := range actions {
		if v == a {
			return true
		}
	}
	return false
}

// stepNPC asks the current NPC seat's agent for one decision and applies it
func (t *Table) stepNPC() error {
	p := t.currentPlayer()
	if p == nil {
		t.maybeFinishPlayerTurn()
		return nil
	}
	if p.Type == Human {
		return nil
	}
	hand := p.ActiveHand()
	valid := t.validActions(p, hand)
	decision := t.agents[p.Seat].PlayHand(t.view(), seatView(p), handView(hand), valid)
	if !contains(valid, decision.Action) {
		decision = Decision{Action: ActionStand, Reasoning: "invalid agent decision"}
	}
	return t.applyAction(p, hand, decision.Action, decision.Reasoning)
}

// applyAction mutates a hand per the action's transition rule. Callers
// have already validated legality.
func (t *Table) applyAction(p *Player, h *Hand, action Action, reasoning string) error {
	handIndex := p.CurrentHand

	switch action {
	case ActionHit:
		if _, err := t.dealTo(h, p.Name, p.Seat, handIndex, true); err != nil {
			return err
		}
		if h.IsBust() {
			h.Active = false
		}

	case ActionStand:
		h.Active = false

	case ActionDouble:
		p.Bankroll = p.Bankroll.Sub(h.Bet)
		h.Bet = h.Bet.Mul(decimal.NewFromInt(2))
		h.Doubled = true
		if _, err := t.dealTo(h, p.Name, p.Seat, handIndex, true); err != nil {
			return err
		}
		h.Active = false

	case ActionSplit:
		if err := t.splitHand(p, h); err != nil {
			return err
		}

	case ActionSurrender:
		refund := h.Bet.Div(decimal.NewFromInt(2))
		p.Bankroll = p.Bankroll.Add(refund)
		h.Active = false
		h.Surrendered = true
	}

	t.events.Publish(PlayerActionEvent{
		Player:    p.Name,
		Seat:      p.Seat,
		HandIndex: handIndex,
		Action:    action,
		Reasoning: reasoning,
		HandValue: h.Value(),
		timestamp: now(),
	})
	t.logger.Debug("action", "player", p.Name, "action", action, "hand", h.String())

	t.maybeFinishPlayerTurn()
	return nil
}

// splitHand replaces the pair with two one-card hands, stakes the second
// bet and deals one card to each. Split aces are auto-stood on their
// forced card unless resplitting aces is allowed.
func (t *Table) splitHand(p *Player, h *Hand) error {
	p.Bankroll = p.Bankroll.Sub(h.Bet)

	aces := h.Cards[0].IsAce()

	first := NewHand(h.Bet)
	first.Split = true
	first.AddCard(h.Cards[0])
	second := NewHand(h.Bet)
	second.Split = true
	second.AddCard(h.Cards[1])

	idx := p.CurrentHand
	hands := make([]*Hand, 0, len(p.Hands)+1)
	hands = append(hands, p.Hands[:idx]...)
	hands = append(hands, first, second)
	hands = append(hands, p.Hands[idx+1:]...)
	p.Hands = hands

	if _, err := t.dealTo(first, p.Name, p.Seat, idx, true); err != nil {
		return err
	}
	if _, err := t.dealTo(second, p.Name, p.Seat, idx+1, true); err != nil {
		return err
	}

	if aces && !t.rules.ResplitAces {
		first.Active = false
		second.Active = false
	}
	return nil
}

// maybeFinishPlayerTurn moves to the dealer once no seat has an active hand
func (t *Table) maybeFinishPlayerTurn() {
	if t.phase != PhasePlayerTurn {
		return
	}
	if t.currentPlayer() != nil {
		return
	}
	t.setPhase(PhaseDealerTurn)
}

func (t *Table) holeCardDown() bool {
	for _, c := range t.dealer.Cards {
		if !c.FaceUp {
			return true
		}
	}
	return false
}

// revealHoleCard turns the dealer's hole card face up, folding it into
// the running count at this moment and never earlier.
func (t *Table) revealHoleCard() {
	for i := range t.dealer.Cards {
		if !t.dealer.Cards[i].FaceUp {
			t.dealer.Cards[i].FaceUp = true
			t.counter.Observe(t.dealer.Cards[i])
			t.events.Publish(HoleRevealEvent{
				Card:         t.dealer.Cards[i],
				RunningCount: t.RunningCount(),
				timestamp:    now(),
			})
			return
		}
	}
}

// dealerShouldHit applies the house drawing rule: hit below 17, and hit a
// soft 17 when the H17 rule is on. The dealer never draws when every
// wagered hand is already settled (bust, surrender or natural).
func (t *Table) dealerShouldHit() bool {
	if !t.dealerPlayNeeded() {
		return false
	}
	value, soft := t.dealer.Value(), t.dealer.IsSoft()
	if value < 17 {
		return true
	}
	return value == 17 && soft && t.rules.DealerHitsSoft17
}

// dealerPlayNeeded reports whether any hand still contests the dealer's total
func (t *Table) dealerPlayNeeded() bool {
	for _, p := range t.seated() {
		for _, h := range p.Hands {
			if !h.IsBust() && !h.Surrendered && !h.IsBlackjack() {
				return true
			}
		}
	}
	return false
}

func (t *Table) stepDealerDraw() error {
	_, err := t.dealTo(t.dealer, "dealer", 0, 0, true)
	return err
}

// resolveRound settles every wagered hand against the dealer and updates
// session statistics from the human seat.
func (t *Table) resolveRound() {
	dealerValue := t.dealer.Value()
	dealerBJ := t.dealer.IsBlackjack()
	dealerBust := dealerValue > 21

	outcomes := make([]HandOutcome, 0, len(t.players))
	for _, p := range t.seated() {
		roundReturn := decimal.Zero
		for i, h := range p.Hands {
			result, returned := settleHand(h, dealerValue, dealerBJ, dealerBust)
			if returned.IsPositive() {
				p.Bankroll = p.Bankroll.Add(returned)
			}
			roundReturn = roundReturn.Add(returned)
			if h.Surrendered {
				// The half refund was credited at surrender time.
				roundReturn = roundReturn.Add(h.Bet.Div(decimal.NewFromInt(2)))
			}
			h.Active = false

			outcomes = append(outcomes, HandOutcome{
				Seat:       p.Seat,
				HandIndex:  i,
				Player:     p.Name,
				Result:     result,
				Bet:        h.Bet,
				Returned:   returned,
				HandValue:  h.Value(),
				DealerHand: dealerValue,
			})
		}

		wagered := p.TotalWagered()
		net := roundReturn.Sub(wagered)
		if p.Insurance.IsPositive() {
			if dealerBJ {
				net = net.Add(p.Insurance.Mul(decimal.NewFromInt(2)))
			} else {
				net = net.Sub(p.Insurance)
			}
		}
		p.LastWon = net.IsPositive()

		if p.Type == Human {
			t.stats.recordRound(wagered.Add(p.Insurance), net)
		}
	}

	t.events.Publish(RoundResultEvent{Round: t.round, Outcomes: outcomes, timestamp: now()})
	t.setPhase(PhaseRoundEnd)
}

// settleHand applies the payout precedence for one hand and returns the
// amount credited back to the bankroll (the stake left at deal time).
func settleHand(h *Hand, dealerValue int, dealerBJ, dealerBust bool) (Result, decimal.Decimal) {
	value := h.Value()
	bet := h.Bet

	switch {
	case h.Surrendered:
		return ResultSurrender, decimal.Zero
	case value > 21:
		return ResultLoss, decimal.Zero
	case h.IsBlackjack() && dealerBJ:
		return ResultPush, bet
	case h.IsBlackjack():
		// 3:2 on the natural: stake plus one and a half back.
		return ResultBlackjack, bet.Mul(decimal.NewFromFloat(2.5))
	case dealerBJ:
		return ResultLoss, decimal.Zero
	case dealerBust:
		return ResultWin, bet.Mul(decimal.NewFromInt(2))
	case value > dealerValue:
		return ResultWin, bet.Mul(decimal.NewFromInt(2))
	case value == dealerValue:
		return ResultPush, bet
	default:
		return ResultLoss, decimal.Zero
	}
}

// NewRound returns the table to the betting phase after a resolved round
func (t *Table) NewRound() error {
	if t.phase != PhaseRoundEnd {
		return fmt.Errorf("%w: round still in progress", ErrIllegalAction)
	}
	for _, p := range t.players {
		p.ResetForRound()
	}
	t.dealer = NewHand(decimal.Zero)
	t.activeSeat = 0
	t.setPhase(PhaseBetting)
	return nil
}

// Reset abandons a round in flight: staked bets and insurance return to
// the bankrolls untouched by any resolution, pending transitions are
// dropped and the table goes back to betting. Safe to call in any phase.
func (t *Table) Reset() {
	if t.phase != PhaseBetting && t.phase != PhaseRoundEnd {
		for _, p := range t.seated() {
			refund := p.TotalWagered().Add(p.Insurance)
			// A surrendered hand already took its half back.
			for _, h := range p.Hands {
				if h.Surrendered {
					refund = refund.Sub(h.Bet.Div(decimal.NewFromInt(2)))
				}
			}
			p.Bankroll = p.Bankroll.Add(refund)
		}
		t.events.Publish(RoundCanceledEvent{Round: t.round, timestamp: now()})
	}
	for _, p := range t.players {
		p.ResetForRound()
	}
	t.dealer = NewHand(decimal.Zero)
	t.dealQueue = t.dealQueue[:0]
	t.activeSeat = 0
	t.setPhase(PhaseBetting)
}

// StartNewShoe abandons any round in flight and replaces the shoe
func (t *Table) StartNewShoe() error {
	t.Reset()
	return t.newShoe()
}

// CutShoe applies the player's cut; only meaningful on a fresh shoe
func (t *Table) CutShoe(position float64) error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot cut during %s", ErrIllegalAction, t.phase)
	}
	t.shoe.Cut(position)
	return nil
}

// SetPenetrationMarker moves the indicator card on the current shoe
func (t *Table) SetPenetrationMarker(fraction float64) error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot move the marker during %s", ErrIllegalAction, t.phase)
	}
	t.shoe.SetPenetrationMarker(fraction)
	return nil
}

func (t *Table) setPhase(next Phase) {
	if t.phase == next {
		return
	}
	prev := t.phase
	t.phase = next
	t.logger.Debug("phase", "from", prev, "to", next, "round", t.round)
	t.events.Publish(PhaseChangeEvent{From: prev, To: next, Round: t.round, timestamp: now()})
}
