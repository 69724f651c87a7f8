package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

type (
	Layout struct {
		Root             string   `env:"CATALOG_ROOT" envDefault:"."`
		Extensions       []string `env:"CATALOG_EXTENSIONS" envDefault:".png,.jpg,.jpeg,.webp,.bmp,.gif"`
		CoversDir        string   `env:"COVERS_DIR" envDefault:"capa"`
		BoostersDir      string   `env:"BOOSTERS_DIR" envDefault:"cards"`
		BoosterSuperDir  string   `env:"BOOSTER_SUPER_DIR" envDefault:"super raras"`
		BoosterSecretDir string   `env:"BOOSTER_SECRET_DIR" envDefault:"secretas raras"`
		DecksDir         string   `env:"DECKS_DIR" envDefault:"decks"`
		DeckSuperDir     string   `env:"DECK_SUPER_DIR" envDefault:"super_raras"`
		DeckSecretDir    string   `env:"DECK_SECRET_DIR" envDefault:"secretas_raras"`
		Marker           string   `env:"MARKER_PATH" envDefault:"backgrounds/marca.jpg"`
		AlternateMarker  string   `env:"ALTERNATE_MARKER_PATH" envDefault:"backgrounds/marca2.jpg"`
		PlayersDir       string   `env:"PLAYERS_DIR" envDefault:"imagens"`
		PlayerRarities   []string `env:"PLAYER_RARITIES" envDefault:"Comum,Raro,Super Raro,Ultra Raro,Secreta Rara,Espirito"`
	}

	Catalog struct {
		BoosterPrefix string `env:"BOOSTER_PREFIX" envDefault:"RPG_Series_"`
		BoosterCount  int    `env:"BOOSTER_COUNT" envDefault:"15"`
		DeckPrefix    string `env:"DECK_PREFIX" envDefault:"RPG_Deck_"`
		DeckCount     int    `env:"DECK_COUNT" envDefault:"15"`
	}

	Policies struct {
		Default            string  `env:"BOOSTER_POLICY" envDefault:"booster-15"`
		SuperCount         int     `env:"BOOSTER15_SUPER_COUNT" envDefault:"7"`
		BonusSecretChance  float64 `env:"BOOSTER15_BONUS_SECRET_CHANCE" envDefault:"0.2"`
		PreviewSuperCount  int     `env:"PREVIEW_SUPER_COUNT" envDefault:"4"`
		PreviewSecretCount int     `env:"PREVIEW_SECRET_COUNT" envDefault:"1"`
		DeckSuperCount     int     `env:"DECK_SUPER_COUNT" envDefault:"40"`
		DeckSecretCount    int     `env:"DECK_SECRET_COUNT" envDefault:"10"`
	}

	Share struct {
		Enabled      bool   `env:"SHARE_ENABLED" envDefault:"false"`
		UseReserved  bool   `env:"ZROK_USE_RESERVED" envDefault:"false"`
		ReservedName string `env:"ZROK_RESERVED_NAME"`
	}

	Config struct {
		HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
		LogLevelRaw     string        `env:"LOG_LEVEL" envDefault:"info"`
		DatabasePath    string        `env:"DATABASE_PATH" envDefault:"card_manager.db"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
		LogLevel        slog.Level    `env:"-"`
		Layout          Layout
		Catalog         Catalog
		Policies        Policies
		Share           Share
	}
)

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := parseLogLevel(c.LogLevelRaw)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if err := c.validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) validate() error {
	p := c.Policies
	def, err := domain.ParsePolicyName(p.Default)
	if err != nil {
		return fmt.Errorf("invalid BOOSTER_POLICY: %w", err)
	}
	if def == domain.PolicyDeckPreview {
		return fmt.Errorf("invalid BOOSTER_POLICY %q: not a booster policy", def)
	}
	if p.BonusSecretChance < 0 || p.BonusSecretChance > 1 {
		return fmt.Errorf("invalid BOOSTER15_BONUS_SECRET_CHANCE %v: must be within [0, 1]", p.BonusSecretChance)
	}
	for name, v := range map[string]int{
		"BOOSTER15_SUPER_COUNT": p.SuperCount,
		"PREVIEW_SUPER_COUNT":   p.PreviewSuperCount,
		"PREVIEW_SECRET_COUNT":  p.PreviewSecretCount,
		"DECK_SUPER_COUNT":      p.DeckSuperCount,
		"DECK_SECRET_COUNT":     p.DeckSecretCount,
		"BOOSTER_COUNT":         c.Catalog.BoosterCount,
		"DECK_COUNT":            c.Catalog.DeckCount,
	} {
		if v < 0 {
			return fmt.Errorf("invalid %s %d: must not be negative", name, v)
		}
	}
	if c.Share.Enabled && c.Share.UseReserved && c.Share.ReservedName == "" {
		return fmt.Errorf("ZROK_RESERVED_NAME is required when ZROK_USE_RESERVED=true")
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
