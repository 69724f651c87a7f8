package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KillerxG/RPG-YGO-Delta/internal/config"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "booster-15", cfg.Policies.Default)
	assert.Equal(t, 7, cfg.Policies.SuperCount)
	assert.InDelta(t, 0.2, cfg.Policies.BonusSecretChance, 1e-9)
	assert.Equal(t, 40, cfg.Policies.DeckSuperCount)
	assert.Equal(t, "super raras", cfg.Layout.BoosterSuperDir)
	assert.Equal(t, []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif"}, cfg.Layout.Extensions)
	assert.Len(t, cfg.Layout.PlayerRarities, 6)
	assert.Equal(t, 15, cfg.Catalog.BoosterCount)
	assert.False(t, cfg.Share.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BOOSTER15_BONUS_SECRET_CHANCE", "0")
	t.Setenv("BOOSTER_SUPER_DIR", "Super Raras")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Zero(t, cfg.Policies.BonusSecretChance)
	assert.Equal(t, "Super Raras", cfg.Layout.BoosterSuperDir)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct{ key, value string }{
		{"LOG_LEVEL", "loud"},
		{"BOOSTER15_BONUS_SECRET_CHANCE", "1.5"},
		{"DECK_SUPER_COUNT", "-1"},
		{"SHUTDOWN_TIMEOUT", "soon"},
		{"BOOSTER_POLICY", "booster-99"},
		{"BOOSTER_POLICY", "deck-preview"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestAppLayout(t *testing.T) {
	t.Setenv("BOOSTER_COUNT", "3")
	t.Setenv("DECK_PREFIX", "Deck_")

	cfg, err := config.Load()
	require.NoError(t, err)

	l := cfg.AppLayout()
	assert.Equal(t, []string{"RPG_Series_1", "RPG_Series_2", "RPG_Series_3"}, l.BoosterNames)
	assert.Len(t, l.DeckNames, 15)
	assert.Equal(t, "Deck_15", l.DeckNames[14])
	assert.Equal(t, "secretas raras", l.BoosterSecretDir)
	assert.Equal(t, "backgrounds/marca2.jpg", l.AlternateMarker)
}

func TestPolicySet(t *testing.T) {
	t.Setenv("BOOSTER_POLICY", "booster-4+1")

	cfg, err := config.Load()
	require.NoError(t, err)

	ps, err := cfg.Policies.PolicySet()
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyBoosterPreview, ps.Default)
	assert.Equal(t, 7, ps.Booster15.SuperCount)
	assert.Equal(t, domain.BoosterPreview{SuperCount: 4, SecretCount: 1}, ps.Preview)
	assert.Equal(t, domain.DeckPreview{SuperCount: 40, SecretCount: 10}, ps.Deck)
}
