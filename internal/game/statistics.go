package game

import "github.com/shopspring/decimal"

// Statistics aggregates the human seat's session, updated once per
// resolved round.
type Statistics struct {
	RoundsPlayed int
	RoundsWon    int
	TotalWagered decimal.Decimal
	NetProfit    decimal.Decimal
	BiggestWin   decimal.Decimal
}

func (s *Statistics) recordRound(wagered, net decimal.Decimal) {
	s.RoundsPlayed++
	if net.IsPositive() {
		s.RoundsWon++
	}
	s.TotalWagered = s.TotalWagered.Add(wagered)
	s.NetProfit = s.NetProfit.Add(net)
	if net.GreaterThan(s.BiggestWin) {
		s.BiggestWin = net
	}
}

// WinRate returns the fraction of rounds won
func (s Statistics) WinRate() float64 {
	if s.RoundsPlayed == 0 {
		return 0
	}
	return float64(s.RoundsWon) / float64(s.RoundsPlayed)
}
