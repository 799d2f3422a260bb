// Package display renders table state, coaching and reference tables for
// the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/counting"
	"github.com/joelfrenette/card-counting-coach-com/internal/deck"
	"github.com/joelfrenette/card-counting-coach-com/internal/game"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

// Styles contains styling for game display
type Styles struct {
	Header     lipgloss.Style
	SubHeader  lipgloss.Style
	Action     lipgloss.Style
	Winner     lipgloss.Style
	Loser      lipgloss.Style
	CardRed    lipgloss.Style
	CardBlack  lipgloss.Style
	HiddenCard lipgloss.Style
	Money      lipgloss.Style
	Count      lipgloss.Style
	Coach      lipgloss.Style
	Separator  lipgloss.Style
	You        lipgloss.Style
	Info       lipgloss.Style
	Warning    lipgloss.Style
}

// NewStyles creates a new set of display styles
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#006400")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loser: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		HiddenCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Money: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Coach: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		You: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
	}
}

// Renderer formats engine state for the terminal
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a renderer with the default styles
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// FormatCard renders one card, red suits in red, hidden cards dimmed
func (r *Renderer) FormatCard(c deck.Card) string {
	if !c.FaceUp {
		return r.styles.HiddenCard.Render("[??]")
	}
	s := fmt.Sprintf("[%s]", c)
	if c.IsRed() {
		return r.styles.CardRed.Render(s)
	}
	return r.styles.CardBlack.Render(s)
}

// FormatHand renders a hand's cards and, when fully visible, its total
func (r *Renderer) FormatHand(h *game.Hand) string {
	if len(h.Cards) == 0 {
		return r.styles.Info.Render("(no cards)")
	}
	parts := make([]string, 0, len(h.Cards)+1)
	hidden := false
	for _, c := range h.Cards {
		parts = append(parts, r.FormatCard(c))
		if !c.FaceUp {
			hidden = true
		}
	}
	if !hidden {
		total := fmt.Sprintf("%d", h.Value())
		if h.IsSoft() {
			total = "soft " + total
		}
		if h.IsBlackjack() {
			total = "blackjack"
		}
		parts = append(parts, r.styles.Info.Render("("+total+")"))
	}
	return strings.Join(parts, " ")
}

// Error renders an error message for the prompt loop
func (r *Renderer) Error(err error) string {
	return r.styles.Warning.Render(err.Error())
}

// Money renders a decimal amount as dollars
func (r *Renderer) Money(amount decimal.Decimal) string {
	return r.styles.Money.Render("$" + amount.StringFixed(2))
}

// Table renders the full table: dealer, every seat, and the count panel
func (r *Renderer) Table(t *game.Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.styles.Header.Render(fmt.Sprintf(" Round %d - %s ", t.Round(), t.Rules().VariantName())))
	fmt.Fprintf(&b, "Dealer: %s\n", r.FormatHand(t.Dealer()))

	for _, p := range t.Players() {
		name := p.Name
		if p.Type == game.Human {
			name = r.styles.You.Render(name)
		}
		if p.SatOut {
			fmt.Fprintf(&b, "%s: %s  %s\n", name, r.styles.Info.Render("sitting out"), r.Money(p.Bankroll))
			continue
		}
		for i, h := range p.Hands {
			label := name
			if len(p.Hands) > 1 {
				label = fmt.Sprintf("%s (hand %d)", name, i+1)
			}
			fmt.Fprintf(&b, "%s: %s  bet %s\n", label, r.FormatHand(h), r.Money(h.Bet))
		}
		fmt.Fprintf(&b, "  bankroll %s\n", r.Money(p.Bankroll))
	}

	b.WriteString(r.CountPanel(t))
	return b.String()
}

// CountPanel renders the live counting information
func (r *Renderer) CountPanel(t *game.Table) string {
	sys := t.CountingSystem()
	count := fmt.Sprintf("Count [%s]: running %+d, true %+.1f", sys.Name, t.RunningCount(), t.TrueCount())
	if !sys.NeedsTrueCount {
		count = fmt.Sprintf("Count [%s]: running %+d (used directly, no conversion)", sys.Name, t.RunningCount())
	}
	return r.styles.Count.Render(count) +
		r.styles.Info.Render(fmt.Sprintf("  (%d cards left, %.0f%% dealt, edge %+.2f%%)",
			t.CardsRemaining(), t.Penetration()*100, t.PlayerEdge()))
}

// Coaching renders the advisor's output for the current hand
func (r *Renderer) Coaching(c game.Coaching) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.styles.SubHeader.Render("Book says:"),
		r.styles.Coach.Render(fmt.Sprintf("%s - %s", strings.ToUpper(string(c.Basic.Action)), c.Basic.Reason)))
	if c.Deviation != nil {
		fmt.Fprintf(&b, "%s %s\n", r.styles.Warning.Render("Count says:"),
			r.styles.Coach.Render(fmt.Sprintf("%s (%s at index %+d) - %s",
				strings.ToUpper(string(c.Deviation.IndexAction)), c.Deviation.Situation, c.Deviation.Index, c.Deviation.Description)))
	}
	return b.String()
}

// BetAdvice renders the betting style's sizing recommendation
func (r *Renderer) BetAdvice(advice strategy.BetAdvice) string {
	if advice.Amount.IsZero() {
		return r.styles.Warning.Render("Sit out: ") + r.styles.Coach.Render(advice.Reason)
	}
	return r.styles.SubHeader.Render("Suggested bet: ") + r.Money(advice.Amount) +
		"  " + r.styles.Coach.Render(advice.Reason)
}

// Outcomes renders a resolved round's results
func (r *Renderer) Outcomes(event game.RoundResultEvent) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(" Round result ") + "\n")
	for _, o := range event.Outcomes {
		line := fmt.Sprintf("%s: %s (hand %d vs dealer %d), returned %s",
			o.Player, o.Result, o.HandValue, o.DealerHand, "$"+o.Returned.StringFixed(2))
		switch o.Result {
		case game.ResultWin, game.ResultBlackjack:
			b.WriteString(r.styles.Winner.Render(line))
		case game.ResultLoss:
			b.WriteString(r.styles.Loser.Render(line))
		default:
			b.WriteString(r.styles.Info.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Systems renders the counting system reference table
func (r *Renderer) Systems() string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(" Counting systems ") + "\n")
	for _, sys := range counting.All() {
		balance := "balanced"
		if !sys.Balanced() {
			balance = "unbalanced"
		}
		fmt.Fprintf(&b, "%s %s\n", r.styles.SubHeader.Render(sys.Name),
			r.styles.Info.Render(fmt.Sprintf("(%s, level %d, %s)", sys.ID, sys.Level, balance)))
		fmt.Fprintf(&b, "  %s\n", sys.Description)
		fmt.Fprintf(&b, "  %s\n", r.tagLine(sys))
		if sys.NeedsAceSideCount {
			fmt.Fprintf(&b, "  %s\n", r.styles.Info.Render("Pairs with a separate ace side count."))
		}
	}
	return b.String()
}

func (r *Renderer) tagLine(sys counting.System) string {
	parts := make([]string, 0, len(deck.Ranks))
	for _, rank := range deck.Ranks {
		parts = append(parts, fmt.Sprintf("%s:%+d", rank, sys.Value(rank)))
	}
	return r.styles.Info.Render(strings.Join(parts, " "))
}

// Styles renders the betting style reference table
func (r *Renderer) Styles() string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(" Betting styles ") + "\n")
	for _, info := range strategy.Styles() {
		fmt.Fprintf(&b, "%s %s\n", r.styles.SubHeader.Render(info.Name), r.styles.Info.Render("("+string(info.ID)+", "+info.RiskLevel+" risk)"))
		fmt.Fprintf(&b, "  %s\n", info.Description)
		if info.MinCountToPlay > -999 {
			fmt.Fprintf(&b, "  %s\n", r.styles.Warning.Render(fmt.Sprintf("Sits out below true count %+.0f", info.MinCountToPlay)))
		}
	}
	return b.String()
}
