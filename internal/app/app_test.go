package app_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

type mockCatalog struct {
	pools  map[string][]domain.Card
	covers map[string]bool
	dirs   []string
	err    error
}

func (m *mockCatalog) ListPool(_ context.Context, base, tierDir string) ([]domain.Card, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pools[path.Join(base, tierDir)], nil
}

func (m *mockCatalog) FindCover(_ context.Context, dir, name string) (domain.Card, bool, error) {
	if !m.covers[name] {
		return domain.Card{}, false, nil
	}
	return domain.Card{ID: name, Name: name + ".jpg", Path: path.Join(dir, name+".jpg")}, true, nil
}

func (m *mockCatalog) Open(_ context.Context, p string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(p)), nil
}

func (m *mockCatalog) EnsureDir(_ context.Context, p string) error {
	m.dirs = append(m.dirs, p)
	return m.err
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }
func (r fixedRNG) Float64() float64 { return 0.99 }

func cards(dir string, n int) []domain.Card {
	out := make([]domain.Card, n)
	for i := range n {
		name := fmt.Sprintf("%d.jpg", i+1)
		out[i] = domain.Card{ID: fmt.Sprint(i + 1), Name: name, Path: path.Join(dir, name)}
	}
	return out
}

func testLayout() app.Layout {
	return app.Layout{
		CoversDir:        "capa",
		BoostersDir:      "cards",
		BoosterSuperDir:  "super raras",
		BoosterSecretDir: "secretas raras",
		DecksDir:         "decks",
		DeckSuperDir:     "super_raras",
		DeckSecretDir:    "secretas_raras",
		Marker:           "backgrounds/marca.jpg",
		AlternateMarker:  "backgrounds/marca2.jpg",
		BoosterNames:     app.SeriesNames("RPG_Series_", 15),
		DeckNames:        app.SeriesNames("RPG_Deck_", 15),
	}
}

func testPolicies() app.PolicySet {
	return app.PolicySet{
		Default:   domain.PolicyBooster15,
		Booster15: domain.Booster15{SuperCount: 7, BonusSecretChance: 0.2},
		Preview:   domain.BoosterPreview{SuperCount: 4, SecretCount: 1},
		Deck:      domain.DeckPreview{SuperCount: 40, SecretCount: 10},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
