package simulator

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func runSession(t *testing.T, config Config) *Report {
	t.Helper()
	if config.Logger == nil {
		config.Logger = testLogger()
	}
	report, err := New(config).Run()
	require.NoError(t, err)
	return report
}

func TestRunPlaysRequestedRounds(t *testing.T) {
	t.Parallel()
	report := runSession(t, Config{Rounds: 50, Seed: 7})

	assert.Equal(t, 50, report.Rounds)
	assert.False(t, report.Busted)
	assert.Zero(t, report.CountMismatches)
	assert.GreaterOrEqual(t, report.WinRate(), 0.0)
	assert.LessOrEqual(t, report.WinRate(), 1.0)
}

func TestRunBookkeepingBalances(t *testing.T) {
	t.Parallel()
	report := runSession(t, Config{Rounds: 100, Seed: 11})

	// Net profit is exactly the bankroll delta against the default 1000.
	want := report.FinalBankroll.Sub(decimal.NewFromInt(1000))
	assert.True(t, report.NetProfit.Equal(want),
		"net %s, bankroll delta %s", report.NetProfit, want)
	assert.True(t, report.MaxDrawdown.GreaterThanOrEqual(decimal.Zero))
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := runSession(t, Config{Rounds: 40, Seed: 3})
	b := runSession(t, Config{Rounds: 40, Seed: 3})

	assert.Equal(t, a.Wins, b.Wins)
	assert.True(t, a.NetProfit.Equal(b.NetProfit))
	assert.Equal(t, a.Reshuffles, b.Reshuffles)
}

func TestRunLongSessionReshuffles(t *testing.T) {
	t.Parallel()
	report := runSession(t, Config{Rounds: 300, Seed: 5, Decks: 1, Seats: 1})

	// A single-deck shoe passes the marker every few rounds.
	if !report.Busted {
		assert.Positive(t, report.Reshuffles)
	}
	assert.Zero(t, report.CountMismatches)
}

func TestRunWithEachStyle(t *testing.T) {
	t.Parallel()
	for _, style := range strategy.Styles() {
		style := style
		t.Run(string(style.ID), func(t *testing.T) {
			t.Parallel()
			report := runSession(t, Config{Rounds: 30, Seed: 13, Style: style.ID})
			assert.Equal(t, style.ID, report.Style)
			if !report.Busted {
				assert.Equal(t, 30, report.Rounds)
			}
		})
	}
}

func TestRunRejectsUnknownSystem(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Rounds: 1, System: "psychic", Logger: testLogger()}).Run()
	require.Error(t, err)
}

func TestSummaryMentionsTheHeadlines(t *testing.T) {
	t.Parallel()
	report := runSession(t, Config{Rounds: 20, Seed: 2})

	summary := report.Summary()
	assert.Contains(t, summary, "Rounds played: 20")
	assert.Contains(t, summary, "Net profit:")
	assert.Contains(t, summary, "Hi-Lo")
}
