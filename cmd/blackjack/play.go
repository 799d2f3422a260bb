package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/coder/quartz"
	"github.com/shopspring/decimal"

	"github.com/joelfrenette/card-counting-coach-com/internal/config"
	"github.com/joelfrenette/card-counting-coach-com/internal/display"
	"github.com/joelfrenette/card-counting-coach-com/internal/game"
)

// PlayCmd runs an interactive coached session at the terminal
type PlayCmd struct {
	Config string `kong:"default='blackjack.hcl',help='Session config file (defaults used when missing)'"`
	Speed  string `kong:"help='Play speed override: slow, normal, fast, immediate'"`
}

// session wires the engine, pacer and renderer behind the prompt loop
type session struct {
	pacer    *game.Pacer
	renderer *display.Renderer
	settings *config.Settings
	rl       *readline.Instance
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	settings, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Speed != "" {
		settings.Table.PlaySpeed = c.Speed
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	table, err := game.NewTable(settings.ToRules(),
		game.WithLogger(logger),
		game.WithManualStepping(),
	)
	if err != nil {
		return err
	}

	renderer := display.NewRenderer()
	table.Events().Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
		printEvent(renderer, settings, e)
	}))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blackjack> ",
		HistoryFile:     "/tmp/blackjack_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("bet"),
			readline.PcItem("deal"),
			readline.PcItem("hit"),
			readline.PcItem("stand"),
			readline.PcItem("double"),
			readline.PcItem("split"),
			readline.PcItem("surrender"),
			readline.PcItem("yes"),
			readline.PcItem("no"),
			readline.PcItem("advice"),
			readline.PcItem("count"),
			readline.PcItem("table"),
			readline.PcItem("stats"),
			readline.PcItem("shoe"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{
		pacer:    game.NewPacer(table, settings.Pace(), quartz.NewReal(), logger),
		renderer: renderer,
		settings: settings,
		rl:       rl,
	}

	fmt.Println(renderer.Table(table))
	fmt.Println("Type 'bet <amount>' then 'deal' to start. 'help' lists commands.")
	return s.loop()
}

func (s *session) loop() error {
	for {
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			s.pacer.Cancel()
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
		if len(fields) == 0 {
			continue
		}

		quit, err := s.handle(fields[0], fields[1:])
		if err != nil {
			fmt.Println(s.renderer.Error(err))
		}
		if quit {
			s.pacer.Cancel()
			return nil
		}
	}
}

func (s *session) handle(cmd string, args []string) (bool, error) {
	switch cmd {
	case "quit", "q", "exit":
		return true, nil

	case "help", "?":
		s.printHelp()
		return false, nil

	case "bet", "b":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: bet <amount>")
		}
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return false, fmt.Errorf("bad amount %q", args[0])
		}
		return false, s.pacer.Do(func(t *game.Table) error {
			return t.PlaceBet(amount)
		})

	case "deal", "d":
		return false, s.pacer.Do(func(t *game.Table) error {
			if t.Phase() == game.PhaseRoundEnd {
				if err := t.NewRound(); err != nil {
					return err
				}
			}
			if t.Phase() == game.PhaseBetting && !t.Human().CurrentBet.IsPositive() {
				advice := t.RecommendedBet()
				if s.settings.Counting.ShowBetHints {
					fmt.Println(s.renderer.BetAdvice(advice))
				}
				return fmt.Errorf("place a bet first")
			}
			return t.StartRound()
		})

	case "hit", "h":
		return false, s.pacer.Do(func(t *game.Table) error { return t.Hit() })
	case "stand", "s":
		return false, s.pacer.Do(func(t *game.Table) error { return t.Stand() })
	case "double":
		return false, s.pacer.Do(func(t *game.Table) error { return t.Double() })
	case "split":
		return false, s.pacer.Do(func(t *game.Table) error { return t.Split() })
	case "surrender":
		return false, s.pacer.Do(func(t *game.Table) error { return t.Surrender() })

	case "yes", "y":
		return false, s.pacer.Do(func(t *game.Table) error { return t.DecideInsurance(true) })
	case "no", "n":
		return false, s.pacer.Do(func(t *game.Table) error { return t.DecideInsurance(false) })

	case "advice", "a":
		if !s.settings.Counting.ShowAdvice {
			fmt.Println("Advice is turned off in your config (counting.show_advice).")
			return false, nil
		}
		s.pacer.View(func(t *game.Table) {
			if coaching, ok := t.RecommendedAction(); ok {
				fmt.Print(s.renderer.Coaching(coaching))
				return
			}
			if t.Phase() == game.PhaseBetting || t.Phase() == game.PhaseRoundEnd {
				fmt.Println(s.renderer.BetAdvice(t.RecommendedBet()))
				return
			}
			fmt.Println("No advice right now.")
		})
		return false, nil

	case "count", "c":
		s.pacer.View(func(t *game.Table) {
			fmt.Println(s.renderer.CountPanel(t))
		})
		return false, nil

	case "table", "t":
		s.pacer.View(func(t *game.Table) {
			fmt.Println(s.renderer.Table(t))
		})
		return false, nil

	case "stats":
		s.pacer.View(func(t *game.Table) {
			stats := t.Statistics()
			fmt.Printf("Rounds: %d, won %d (%.1f%%)\n", stats.RoundsPlayed, stats.RoundsWon, stats.WinRate()*100)
			fmt.Printf("Wagered %s, net %s, biggest win %s\n",
				stats.TotalWagered, stats.NetProfit, stats.BiggestWin)
		})
		return false, nil

	case "shoe":
		return false, s.pacer.Do(func(t *game.Table) error { return t.StartNewShoe() })

	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (s *session) printHelp() {
	fmt.Println(`Commands:
  bet <amount>   stake the next round's wager
  deal           deal the round (starts a new round after a result)
  hit, stand, double, split, surrender
  yes / no       answer the insurance offer
  advice         what the book and the count say right now
  count          running and true count
  table          redraw the table
  stats          session statistics
  shoe           abandon the round and shuffle a fresh shoe
  quit`)
}

// printEvent renders engine events as they happen, respecting the
// configured show toggles.
func printEvent(r *display.Renderer, settings *config.Settings, e game.GameEvent) {
	switch ev := e.(type) {
	case game.CardDealtEvent:
		line := fmt.Sprintf("%s draws %s", ev.Recipient, r.FormatCard(ev.Card))
		if settings.Counting.ShowCount && ev.Card.FaceUp {
			line += fmt.Sprintf("  (running %+d)", ev.RunningCount)
		}
		fmt.Println(line)
	case game.HoleRevealEvent:
		line := fmt.Sprintf("dealer reveals %s", r.FormatCard(ev.Card))
		if settings.Counting.ShowCount {
			line += fmt.Sprintf("  (running %+d)", ev.RunningCount)
		}
		fmt.Println(line)
	case game.PlayerActionEvent:
		if ev.Reasoning != "" {
			fmt.Printf("%s: %s (%s)\n", ev.Player, ev.Action, ev.Reasoning)
		} else {
			fmt.Printf("%s: %s\n", ev.Player, ev.Action)
		}
	case game.InsuranceEvent:
		if ev.Accepted {
			fmt.Printf("%s takes insurance for $%s\n", ev.Player, ev.Stake.StringFixed(2))
		} else {
			fmt.Printf("%s waves insurance off\n", ev.Player)
		}
	case game.PhaseChangeEvent:
		if ev.To == game.PhaseInsurance {
			fmt.Println("Dealer shows an ace. Insurance? (yes/no)")
		}
	case game.ShoeShuffledEvent:
		fmt.Printf("Fresh %d-deck shoe, marker at %.0f%%\n", ev.Decks, ev.Marker*100)
	case game.RoundResultEvent:
		fmt.Print(r.Outcomes(ev))
	}
}
