package config

import (
	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// AppLayout resolves the configured folders and series names.
func (c Config) AppLayout() app.Layout {
	l := c.Layout
	return app.Layout{
		CoversDir:        l.CoversDir,
		BoostersDir:      l.BoostersDir,
		BoosterSuperDir:  l.BoosterSuperDir,
		BoosterSecretDir: l.BoosterSecretDir,
		DecksDir:         l.DecksDir,
		DeckSuperDir:     l.DeckSuperDir,
		DeckSecretDir:    l.DeckSecretDir,
		Marker:           l.Marker,
		AlternateMarker:  l.AlternateMarker,
		BoosterNames:     app.SeriesNames(c.Catalog.BoosterPrefix, c.Catalog.BoosterCount),
		DeckNames:        app.SeriesNames(c.Catalog.DeckPrefix, c.Catalog.DeckCount),
	}
}

func (p Policies) PolicySet() (app.PolicySet, error) {
	def, err := domain.ParsePolicyName(p.Default)
	if err != nil {
		return app.PolicySet{}, err
	}
	return app.PolicySet{
		Default:   def,
		Booster15: domain.Booster15{SuperCount: p.SuperCount, BonusSecretChance: p.BonusSecretChance},
		Preview:   domain.BoosterPreview{SuperCount: p.PreviewSuperCount, SecretCount: p.PreviewSecretCount},
		Deck:      domain.DeckPreview{SuperCount: p.DeckSuperCount, SecretCount: p.DeckSecretCount},
	}, nil
}
