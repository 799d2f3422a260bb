package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelfrenette/card-counting-coach-com/internal/game"
	"github.com/joelfrenette/card-counting-coach-com/internal/strategy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	settings, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	require.NoError(t, settings.Validate())
}

func TestLoadParsesBlocks(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table {
  decks       = 2
  penetration = 0.7
  min_bet     = 10
  max_bet     = 200
  bankroll    = 500
  seats       = 1
  play_speed  = "fast"
}

rules {
  h17 = true
  das = true
}

counting {
  system        = "zen"
  betting_style = "kelly"
}
`)

	settings, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, settings.Validate())

	assert.Equal(t, 2, settings.Table.Decks)
	assert.Equal(t, game.PaceFast, settings.Pace())
	assert.Equal(t, "zen", settings.Counting.System)

	rules := settings.ToRules()
	assert.True(t, rules.DealerHitsSoft17)
	assert.True(t, rules.DoubleAfterSplit)
	assert.False(t, rules.LateSurrender)
	assert.Equal(t, strategy.StyleKelly, rules.BettingStyle)
	assert.Equal(t, "2 Decks, H17, DAS", rules.VariantName())
}

func TestLoadFillsOmittedFields(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table {
  decks = 8
}
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, settings.Table.Decks)
	assert.EqualValues(t, 25, settings.Table.MinBet)
	assert.Equal(t, "hi-lo", settings.Counting.System)
	assert.Equal(t, 4, settings.Rules.MaxSplitHands)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `table { decks = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"too many decks", func(s *Settings) { s.Table.Decks = 9 }},
		{"unknown speed", func(s *Settings) { s.Table.PlaySpeed = "ludicrous" }},
		{"unknown system", func(s *Settings) { s.Counting.System = "mentor" }},
		{"human seat beyond seats", func(s *Settings) { s.Table.HumanSeat = 7 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			settings := DefaultSettings()
			tc.mutate(settings)
			require.ErrorIs(t, settings.Validate(), game.ErrInvalidConfiguration)
		})
	}
}
